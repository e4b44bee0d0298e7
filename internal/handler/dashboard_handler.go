package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/leadcapture/internal/handler/middleware"
	"github.com/andressep95/leadcapture/internal/service"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Redirect sends the caller to the dashboard for their role, or to login
// GET /dashboard
func (h *DashboardHandler) Redirect(c *fiber.Ctx) error {
	return c.Redirect(service.DashboardPath(middleware.SessionFromContext(c)), fiber.StatusFound)
}
