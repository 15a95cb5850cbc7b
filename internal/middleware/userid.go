package middleware

import (
	"strings"

	"github.com/Nickzanarak/Edu/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the fiber.Ctx locals key holding the validated user id.
const UserIDKey = "userID"

// UserIDHeader is the header every per-user route must carry.
const UserIDHeader = "X-User-Id"

const maxUserIDLength = 128

// RequireUserID validates the X-User-Id header and stores the value in
// the request locals for handlers.
func RequireUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(UserIDHeader))
		if userID == "" {
			return domain.NewUnauthorizedError("X-User-Id header is required")
		}
		if len(userID) > maxUserIDLength {
			return domain.NewInvalidInputError("X-User-Id header is too long")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// GetUserID returns the user id stored by RequireUserID, or empty when
// the middleware did not run on this route.
func GetUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDKey).(string); ok {
		return v
	}
	return ""
}
