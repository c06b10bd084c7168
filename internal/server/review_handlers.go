package server

import (
	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/books/:slug/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), user, c.Params("slug"), service.ReviewInput{
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews handles GET /api/books/:slug/reviews
func (s *Server) GetReviews(c *fiber.Ctx) error {
	page, err := s.reviewService.ListReviews(c.Context(), c.Params("slug"), pagination.FromRequest(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// UpdateReview handles PUT /api/books/:slug/reviews/:id
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.Context(), user, c.Params("slug"), id, service.ReviewInput{
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/books/:slug/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reviewService.DeleteReview(c.Context(), user, c.Params("slug"), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
