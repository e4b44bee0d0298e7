package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/internal/tenancy"
	"github.com/andressep95/leadcapture/pkg/validator"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	validator         *validator.Validator
	logger            *logrus.Logger
}

func NewSubmissionHandler(submissionService *service.SubmissionService, validator *validator.Validator, logger *logrus.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		validator:         validator,
		logger:            logger,
	}
}

// CreateSubmissionRequest holds the text fields of the capture form
type CreateSubmissionRequest struct {
	TradeshowSlug string `json:"tradeshow_slug" form:"tradeshow_slug" validate:"required,max=255"`
	FormSource    string `json:"form_source" form:"form_source" validate:"required,formsource"`
	ContactName   string `json:"contact_name" form:"contact_name" validate:"required,max=255"`
	ContactEmail  string `json:"contact_email" form:"contact_email" validate:"required,email,max=255"`
	RepCode       string `json:"rep_code" form:"rep_code" validate:"omitempty,max=50"`
}

// Create stores a badge photo captured by a public form
// POST /api/submissions (multipart/form-data, file field "photo")
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	tc := tenancy.FromFiber(c)
	if tc.Subdomain() != "" && tc.Tenant() == nil {
		return errorJSON(c, fiber.StatusNotFound, msgAccountNotFound)
	}

	var req CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validator.Validate(req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Photo is required")
	}
	if file.Size > service.MaxPhotoBytes {
		return errorJSON(c, fiber.StatusBadRequest, "Photo exceeds 10MB")
	}

	f, err := file.Open()
	if err != nil {
		return respondError(c, h.logger, err, "")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxPhotoBytes+1))
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	mimeType := strings.TrimSpace(file.Header.Get(fiber.HeaderContentType))
	photo, err := h.submissionService.Create(c.Context(), tc, service.CreateSubmissionInput{
		TradeshowSlug: req.TradeshowSlug,
		FormSource:    req.FormSource,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		RepCode:       req.RepCode,
		Filename:      file.Filename,
		MimeType:      mimeType,
		ImageData:     data,
	})
	if err != nil {
		return respondError(c, h.logger, err, msgTradeshowNotFound)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":          true,
		"id":               photo.ID,
		"submitted_by_rep": photo.SubmittedByRep,
	})
}
