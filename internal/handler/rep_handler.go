package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/service"
)

type RepHandler struct {
	repService *service.RepService
	logger     *logrus.Logger
}

func NewRepHandler(repService *service.RepService, logger *logrus.Logger) *RepHandler {
	return &RepHandler{
		repService: repService,
		logger:     logger,
	}
}

// GetByCode returns the rep a capture form is attributed to
// GET /api/reps/:code
func (h *RepHandler) GetByCode(c *fiber.Ctx) error {
	rep, err := h.repService.FindByCode(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, h.logger, err, "Rep not found")
	}

	return c.JSON(fiber.Map{
		"id":       rep.ID,
		"name":     rep.Name,
		"rep_code": rep.RepCode,
		"email":    rep.Email,
		"role":     rep.Role,
	})
}
