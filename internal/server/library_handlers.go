package server

import (
	"scriptum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/books/:slug/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	favorite, err := s.libraryService.AddFavorite(c.Context(), user, c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// RemoveFavorite handles DELETE /api/books/:slug/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	if err := s.libraryService.RemoveFavorite(c.Context(), user, c.Params("slug")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FollowAuthor handles POST /api/authors/:pseudo/follow
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	follow, err := s.libraryService.FollowAuthor(c.Context(), user, c.Params("pseudo"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(follow)
}

// UnfollowAuthor handles DELETE /api/authors/:pseudo/follow
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	if err := s.libraryService.UnfollowAuthor(c.Context(), user, c.Params("pseudo")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
