package server

import (
	"errors"

	"scriptum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 400 JSON response and returns errResponseWritten; callers
// should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// actingUser returns the authenticated user placed in locals by the access
// gate. The protected route groups guarantee it is set; the nil check guards
// direct handler invocation in tests.
func (s *Server) actingUser(c *fiber.Ctx) (*models.User, error) {
	if u, ok := c.Locals("user").(*models.User); ok && u != nil {
		return u, nil
	}
	_ = models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthorizedError("Authentication required"))
	return nil, errResponseWritten
}
