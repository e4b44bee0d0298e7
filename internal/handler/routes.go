package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andressep95/leadcapture/internal/handler/middleware"
)

// Handlers groups every HTTP handler served by the application
type Handlers struct {
	Tenant     *TenantHandler
	Auth       *AuthHandler
	Tradeshow  *TradeshowHandler
	Rep        *RepHandler
	Photo      *PhotoHandler
	Submission *SubmissionHandler
	Analytics  *AnalyticsHandler
	Dashboard  *DashboardHandler
	Health     *HealthHandler
	JWKS       *JWKSHandler
}

// SetupRoutes registers routes. sessionMiddleware attaches the optional
// session; role checks are applied per route.
func SetupRoutes(app *fiber.App, h Handlers, sessionMiddleware fiber.Handler) {
	// Health checks (public)
	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/.well-known/jwks.json", h.JWKS.Get)

	app.Get("/dashboard", sessionMiddleware, h.Dashboard.Redirect)

	api := app.Group("/api", sessionMiddleware)

	// Tenant resolution (public)
	api.Get("/tenant", h.Tenant.Lookup)
	api.Get("/tenant/context", h.Tenant.Context)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", middleware.RequireSession(), h.Auth.Logout)
	auth.Get("/session", middleware.RequireSession(), h.Auth.Session)

	// Tradeshows
	tradeshows := api.Group("/tradeshows")
	tradeshows.Get("/slug/:slug", h.Tradeshow.GetBySlug)
	tradeshows.Get("/", middleware.RequireSession(), h.Tradeshow.List)
	tradeshows.Get("/:id", middleware.RequireSession(), h.Tradeshow.Get)
	tradeshows.Post("/:id/toggle-active", middleware.RequireAdmin(), h.Tradeshow.ToggleActive)

	// Public capture flow
	api.Get("/reps/:code", h.Rep.GetByCode)
	api.Get("/photos/:id", h.Photo.Get)
	api.Post("/submissions", h.Submission.Create)
	api.Post("/track-view", h.Analytics.TrackView)
	api.Get("/analytics/submissions", h.Analytics.Summary)
}
