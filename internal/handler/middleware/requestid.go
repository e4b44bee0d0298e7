package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	requestIDLocalsKey  = "request_id"
	maxInboundRequestID = 128
)

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" || len(id) > maxInboundRequestID {
			id = uuid.NewString()
		}
		c.Locals(requestIDLocalsKey, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

func RequestIDFromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocalsKey).(string)
	return id
}
