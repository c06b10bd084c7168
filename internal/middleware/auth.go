package middleware

import (
	"context"
	"strings"

	"scriptum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenResolver resolves an opaque bearer token to its user. It returns a
// NOT_FOUND AppError for unknown tokens.
type TokenResolver func(ctx context.Context, token string) (*models.User, error)

// AuthRequired enforces authentication for protected routes. The token is an
// opaque credential issued once at registration and resolved by store lookup;
// the acting user is exposed to handlers via c.Locals("user").
func AuthRequired(resolve TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		user, err := resolve(c.UserContext(), parts[1])
		if err != nil || user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token"))
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)

		// Refresh the request context so loggers see the user
		ctx := context.WithValue(c.UserContext(), UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// ActingUser returns the authenticated user stored by AuthRequired, or nil.
func ActingUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("user").(*models.User); ok {
		return u
	}
	return nil
}
