package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware recovers from panics and returns 500 error
func RecoveryMiddleware(logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"panic":      r,
					"path":       c.Path(),
					"request_id": RequestIDFromContext(c),
					"stack":      string(debug.Stack()),
				}).Error("Recovered from panic")

				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
		}()

		return c.Next()
	}
}
