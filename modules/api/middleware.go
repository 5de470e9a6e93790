package api

import (
	"strings"

	"github.com/example/gtd-tracker/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the Fiber locals key under which the authenticated user's
// claims are stored.
const UserContextKey = "user"

// AuthMiddleware validates the Bearer token on every request and stores the
// resulting claims in the request context.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, errMsg := bearerToken(c.Get("Authorization"))
		if errMsg != "" {
			return unauthorized(c, errMsg)
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value. A
// non-empty second return value describes why extraction failed.
func bearerToken(header string) (string, string) {
	switch {
	case header == "":
		return "", "Authorization header is required"
	case !strings.HasPrefix(header, "Bearer "):
		return "", "Invalid authorization header format. Use: Bearer <token>"
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", "Token is required"
	}
	return token, ""
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
