package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/handler/middleware"
	"github.com/andressep95/leadcapture/internal/service"
)

const msgTradeshowNotFound = "Tradeshow not found"

type TradeshowHandler struct {
	tradeshowService *service.TradeshowService
	logger           *logrus.Logger
}

func NewTradeshowHandler(tradeshowService *service.TradeshowService, logger *logrus.Logger) *TradeshowHandler {
	return &TradeshowHandler{
		tradeshowService: tradeshowService,
		logger:           logger,
	}
}

// GetBySlug is the public lookup used by capture forms
// GET /api/tradeshows/slug/:slug
func (h *TradeshowHandler) GetBySlug(c *fiber.Ctx) error {
	show, err := h.tradeshowService.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, h.logger, err, msgTradeshowNotFound)
	}

	return c.JSON(fiber.Map{
		"id":              show.ID,
		"name":            show.Name,
		"slug":            show.Slug,
		"description":     show.Description,
		"location":        show.Location,
		"start_date":      show.StartDate,
		"end_date":        show.EndDate,
		"default_country": show.DefaultCountry,
		"is_active":       show.IsActive,
	})
}

// List returns the session tenant's tradeshows
// GET /api/tradeshows
func (h *TradeshowHandler) List(c *fiber.Ctx) error {
	shows, err := h.tradeshowService.List(c.Context(), middleware.SessionFromContext(c))
	if err != nil {
		return respondError(c, h.logger, err, msgTradeshowNotFound)
	}

	return c.JSON(fiber.Map{
		"tradeshows": shows,
	})
}

// Get returns a tradeshow with its tags and submissions
// GET /api/tradeshows/:id
func (h *TradeshowHandler) Get(c *fiber.Ctx) error {
	id, ok := positiveIDParam(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid tradeshow id")
	}

	detail, err := h.tradeshowService.GetDetail(c.Context(), middleware.SessionFromContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, msgTradeshowNotFound)
	}

	return c.JSON(detail)
}

// ToggleActive flips a tradeshow between active and archived (admin only).
// An id that cannot name a tradeshow is reported as not found.
// POST /api/tradeshows/:id/toggle-active
func (h *TradeshowHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := positiveIDParam(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, msgTradeshowNotFound)
	}

	active, err := h.tradeshowService.ToggleActive(c.Context(), middleware.SessionFromContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, msgTradeshowNotFound)
	}

	message := "Tradeshow archived"
	if active {
		message = "Tradeshow activated"
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   message,
		"is_active": active,
	})
}
