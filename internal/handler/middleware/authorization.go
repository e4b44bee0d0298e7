package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/leadcapture/internal/service"
)

// RequireRole rejects the request with 401 unless the session satisfies the
// requirement. A missing session and an insufficient role look the same.
func RequireRole(required service.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := service.Authorize(SessionFromContext(c), required); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// RequireSession is a convenience middleware for any rep or admin
func RequireSession() fiber.Handler {
	return RequireRole(service.RequireAuthenticated)
}

// RequireAdmin is a convenience middleware for requiring the admin role
func RequireAdmin() fiber.Handler {
	return RequireRole(service.RequireAdmin)
}
