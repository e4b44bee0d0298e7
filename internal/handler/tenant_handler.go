package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/internal/tenancy"
)

const msgAccountNotFound = "Account not found"

type TenantHandler struct {
	tenantService *service.TenantService
	logger        *logrus.Logger
}

func NewTenantHandler(tenantService *service.TenantService, logger *logrus.Logger) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		logger:        logger,
	}
}

// Lookup resolves a subdomain to its tenant record
// GET /api/tenant?subdomain=acme
func (h *TenantHandler) Lookup(c *fiber.Ctx) error {
	subdomain := strings.TrimSpace(c.Query("subdomain"))
	if subdomain == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Subdomain is required")
	}

	tenant, err := h.tenantService.Resolve(c.Context(), subdomain)
	if err != nil {
		return respondError(c, h.logger, err, msgAccountNotFound)
	}

	return c.JSON(tenant)
}

// Context returns the tenant resolved for this request's host, with branding
// GET /api/tenant/context
func (h *TenantHandler) Context(c *fiber.Ctx) error {
	tc := tenancy.FromFiber(c)

	var tenantID *int64
	if id, ok := tc.TenantID(); ok {
		tenantID = &id
	}

	return c.JSON(fiber.Map{
		"tenant_id": tenantID,
		"subdomain": tc.Subdomain(),
		"branding":  tc.Branding(),
		"resolved":  tc.IsResolved(),
	})
}
