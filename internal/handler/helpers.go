package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/handler/middleware"
)

const msgInternal = "Internal server error"

// respondError maps a service error onto a status and the flat error body.
// Unexpected errors are logged and never echoed to the client.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		return errorJSON(c, fiber.StatusBadRequest, badRequestMessage(err))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrTenantNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFound)
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"request_id": middleware.RequestIDFromContext(c),
	}).Error("Request failed")
	return errorJSON(c, fiber.StatusInternalServerError, msgInternal)
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// badRequestMessage strips the sentinel prefix from a wrapped ErrBadRequest
func badRequestMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrBadRequest.Error()+": ")
	if msg == "" || msg == domain.ErrBadRequest.Error() {
		return "Bad request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// positiveIDParam reads a numeric path parameter; ok is false for anything
// that is not a positive integer.
func positiveIDParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}

// ErrorHandler answers errors that escape handlers with the same flat body
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code >= fiber.StatusInternalServerError {
				logger.WithError(err).WithField("path", c.Path()).Error("Request failed")
				return errorJSON(c, fe.Code, msgInternal)
			}
			return errorJSON(c, fe.Code, fe.Message)
		}
		return respondError(c, logger, err, "Not found")
	}
}
