package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"scriptum/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(resolve TokenResolver) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthRequired(resolve), func(c *fiber.Ctx) error {
		user := ActingUser(c)
		return c.JSON(fiber.Map{"pseudo": user.Pseudo})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	known := &models.User{ID: 7, Pseudo: "amelia1", Token: "11111111-2222-3333-4444-555555555555"}
	resolve := func(_ context.Context, token string) (*models.User, error) {
		if token == known.Token {
			return known, nil
		}
		return nil, models.NewNotFoundError("User", token)
	}

	t.Run("valid token reaches the handler", func(t *testing.T) {
		app := newAuthTestApp(resolve)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+known.Token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing header is a 401", func(t *testing.T) {
		app := newAuthTestApp(resolve)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header is a 401", func(t *testing.T) {
		app := newAuthTestApp(resolve)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", known.Token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown token is a 401", func(t *testing.T) {
		app := newAuthTestApp(resolve)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
