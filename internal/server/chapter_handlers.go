package server

import (
	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateChapter handles POST /api/books/:slug/chapters
func (s *Server) CreateChapter(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title         string `json:"title"`
		Content       string `json:"content"`
		Type          string `json:"type"`
		ChapterNumber *int   `json:"chapter_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	chapter, err := s.chapterService.CreateChapter(c.Context(), user, c.Params("slug"), service.CreateChapterInput{
		Title:         req.Title,
		Content:       req.Content,
		Type:          req.Type,
		ChapterNumber: req.ChapterNumber,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(chapter)
}

// GetChapters handles GET /api/books/:slug/chapters
func (s *Server) GetChapters(c *fiber.Ctx) error {
	chapters, err := s.chapterService.ListChapters(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(chapters)
}

// GetChapter handles GET /api/books/:slug/chapters/:chapterSlug
func (s *Server) GetChapter(c *fiber.Ctx) error {
	chapter, err := s.chapterService.GetChapter(c.Context(), c.Params("slug"), c.Params("chapterSlug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(chapter)
}

// UpdateChapter handles PUT /api/books/:slug/chapters/:chapterSlug
func (s *Server) UpdateChapter(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	chapter, err := s.chapterService.UpdateChapter(c.Context(), user, c.Params("slug"), c.Params("chapterSlug"), service.UpdateChapterInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(chapter)
}

// DeleteChapter handles DELETE /api/books/:slug/chapters/:chapterSlug
func (s *Server) DeleteChapter(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	if err := s.chapterService.DeleteChapter(c.Context(), user, c.Params("slug"), c.Params("chapterSlug")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateChapterComment handles POST /api/books/:slug/chapters/:chapterSlug/comments
func (s *Server) CreateChapterComment(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.chapterService.AddComment(c.Context(), user, c.Params("slug"), c.Params("chapterSlug"), req.Content)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetChapterComments handles GET /api/books/:slug/chapters/:chapterSlug/comments
func (s *Server) GetChapterComments(c *fiber.Ctx) error {
	page, err := s.chapterService.ListComments(c.Context(), c.Params("slug"), c.Params("chapterSlug"), pagination.FromRequest(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}
