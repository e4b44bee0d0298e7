package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/handler/middleware"
	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/internal/tenancy"
	"github.com/andressep95/leadcapture/pkg/validator"
)

// SessionCookie configures the cookie carrying the session token
type SessionCookie struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
	cookie      SessionCookie
	logger      *logrus.Logger
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator, cookie SessionCookie, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		cookie:      cookie,
		logger:      logger,
	}
}

// Login handles rep and admin login
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Context(), tenancy.FromFiber(c), req)
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(result)
}

// Logout revokes the current session token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context(), middleware.SessionFromContext(c)); err != nil {
		return respondError(c, h.logger, err, "")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Session returns the identity behind the current token
// GET /api/auth/session
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	return c.JSON(fiber.Map{
		"user":     session,
		"redirect": service.DashboardPath(session),
	})
}
