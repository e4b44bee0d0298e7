package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/service"
)

const sessionLocalsKey = "session"

// SessionMiddleware attaches the caller's session when the request carries a
// valid token in the Authorization header or the session cookie. Requests
// without one continue anonymously; RequireRole decides whether that is enough.
func SessionMiddleware(authService *service.AuthService, cookieName string, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(cookieName)
		}
		if token == "" {
			return c.Next()
		}

		session, err := authService.Authenticate(c.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				logger.WithError(err).WithField("path", c.Path()).Error("Session lookup failed")
			}
			return c.Next()
		}

		c.Locals(sessionLocalsKey, session)
		return c.Next()
	}
}

// SessionFromContext returns the request's session, or nil when anonymous
func SessionFromContext(c *fiber.Ctx) *domain.Session {
	session, _ := c.Locals(sessionLocalsKey).(*domain.Session)
	return session
}

// SetSession attaches a session to the request
func SetSession(c *fiber.Ctx, session *domain.Session) {
	c.Locals(sessionLocalsKey, session)
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
