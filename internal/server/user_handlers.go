package server

import (
	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		AuthorName string `json:"author_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.userService.UpdateProfile(c.Context(), user.ID, service.UpdateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		AuthorName: req.AuthorName,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(updated)
}

// DeleteMyAccount handles DELETE /api/users/me
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	if err := s.userService.DeleteAccount(c.Context(), user.ID); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetAuthorProfile handles GET /api/users/:pseudo
func (s *Server) GetAuthorProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetByPseudo(c.Context(), c.Params("pseudo"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(user)
}

// GetMyFavorites handles GET /api/users/me/favorites
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	page, err := s.libraryService.ListFavorites(c.Context(), user, pagination.FromRequest(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetMyFollowing handles GET /api/users/me/following
func (s *Server) GetMyFollowing(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	page, err := s.libraryService.ListFollowed(c.Context(), user, pagination.FromRequest(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
