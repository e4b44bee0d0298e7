package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/service"
)

// Photo bytes never change once stored
const photoCacheControl = "public, max-age=31536000, immutable"

type PhotoHandler struct {
	submissionService *service.SubmissionService
	logger            *logrus.Logger
}

func NewPhotoHandler(submissionService *service.SubmissionService, logger *logrus.Logger) *PhotoHandler {
	return &PhotoHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// Get serves a badge photo's raw bytes
// GET /api/photos/:id
func (h *PhotoHandler) Get(c *fiber.Ctx) error {
	id, ok := positiveIDParam(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid photo id")
	}

	photo, err := h.submissionService.GetPhoto(c.Context(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Photo not found")
	}

	c.Set(fiber.HeaderContentType, photo.MimeType)
	c.Set(fiber.HeaderCacheControl, photoCacheControl)
	return c.Send(photo.ImageData)
}
