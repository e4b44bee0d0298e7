package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/internal/tenancy"
)

const HeaderTenantSubdomain = "X-Tenant-Subdomain"

// TenantMiddleware resolves the tenant for the request host once and stores
// the result for handlers. It never fails the request: an unknown or missing
// subdomain leaves a resolved context with default branding.
func TenantMiddleware(tenantService *service.TenantService, baseDomain string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subdomain := c.Get(HeaderTenantSubdomain)
		if subdomain == "" {
			subdomain = tenancy.SubdomainFromHost(c.Hostname(), baseDomain)
		}

		tenancy.Store(c, tenantService.ResolveContext(c.Context(), subdomain))
		return c.Next()
	}
}
