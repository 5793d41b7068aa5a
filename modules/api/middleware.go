package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenContextKey is the key used to store the bearer token in the Fiber context.
const TokenContextKey = "token"

// BearerToken extracts the identity token. Validation happens in the game
// save services, which reject unknown or expired tokens.
func BearerToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		c.Locals(TokenContextKey, token)
		return c.Next()
	}
}

func tokenFrom(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenContextKey).(string)
	return token
}
