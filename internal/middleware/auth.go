package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/auth"
	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/service"
)

const callerKey = "caller"

// TokenValidator verifies session tokens.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Auth requires a valid Bearer session token and stores the caller in the
// request locals.
func Auth(tokens TokenValidator) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return deny(c, fiber.StatusUnauthorized, "missing Authorization header")
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return deny(c, fiber.StatusUnauthorized, "invalid Authorization header format, expected 'Bearer <token>'")
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return deny(c, fiber.StatusUnauthorized, "empty bearer token")
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(callerKey, service.Caller{UserID: claims.UserID, Admin: claims.Admin})
		return c.Next()
	}
}

// AdminOnly rejects callers without the admin flag. It must run after Auth.
func AdminOnly() fiber.Handler {
	return func(c fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return deny(c, fiber.StatusUnauthorized, "authentication required")
		}
		if !caller.Admin {
			return deny(c, fiber.StatusForbidden, "admin privileges required")
		}
		return c.Next()
	}
}

// CallerFrom returns the caller stored by Auth.
func CallerFrom(c fiber.Ctx) (service.Caller, bool) {
	caller, ok := c.Locals(callerKey).(service.Caller)
	return caller, ok
}

func deny(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.Response{Code: status, Message: msg})
}
