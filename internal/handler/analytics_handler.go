package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/pkg/validator"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	validator        *validator.Validator
	logger           *logrus.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, validator *validator.Validator, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		validator:        validator,
		logger:           logger,
	}
}

// TrackViewRequest accepts the form source in either spelling
type TrackViewRequest struct {
	FormSource      string `json:"formSource" validate:"omitempty,formsource"`
	FormSourceSnake string `json:"form_source" validate:"omitempty,formsource"`
}

func (r TrackViewRequest) source() string {
	if r.FormSource != "" {
		return r.FormSource
	}
	return r.FormSourceSnake
}

// TrackView records a page view for a capture form
// POST /api/track-view
func (h *AnalyticsHandler) TrackView(c *fiber.Ctx) error {
	var req TrackViewRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.source() == "" {
		return errorJSON(c, fiber.StatusBadRequest, "formSource is required")
	}

	if err := h.validator.Validate(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.analyticsService.TrackPageView(c.Context(), req.source(), c.Get(fiber.HeaderUserAgent), c.IP()); err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// Summary reports submissions and page views per form source
// GET /api/analytics/submissions
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.analyticsService.SubmissionSummary(c.Context())
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	return c.JSON(summary)
}
