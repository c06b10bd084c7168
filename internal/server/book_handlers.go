package server

import (
	"strconv"

	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/repository"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type bookPayload struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	PublicType  *string  `json:"public_type"`
	State       *string  `json:"state"`
	IsSaga      *bool    `json:"is_saga"`
	TomeName    *string  `json:"tome_name"`
	TomeNumber  *int     `json:"tome_number"`
	Genres      []string `json:"genres"`
	Themes      []string `json:"themes"`
	ImageURL    *string  `json:"image_url"`
}

// CreateBook handles POST /api/books
func (s *Server) CreateBook(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req bookPayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateBookInput{
		Genres:     req.Genres,
		Themes:     req.Themes,
		TomeName:   req.TomeName,
		TomeNumber: req.TomeNumber,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.PublicType != nil {
		in.PublicType = *req.PublicType
	}
	if req.State != nil {
		in.State = *req.State
	}
	if req.IsSaga != nil {
		in.IsSaga = *req.IsSaga
	}
	if req.ImageURL != nil {
		in.ImageURL = *req.ImageURL
	}

	book, err := s.bookService.CreateBook(c.Context(), user, in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// GetBooks handles GET /api/books with filter query parameters.
func (s *Server) GetBooks(c *fiber.Ctx) error {
	filter := repository.BookFilter{
		PublicType: c.Query("public_type"),
		State:      c.Query("state"),
		Genre:      c.Query("genre"),
		Author:     c.Query("author"),
	}
	if v := c.Query("is_saga"); v != "" {
		saga, err := strconv.ParseBool(v)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("is_saga must be a boolean"))
		}
		filter.IsSaga = &saga
	}
	if v := c.Query("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("min_rating must be a number"))
		}
		filter.MinRating = &r
	}
	if v := c.Query("max_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("max_rating must be a number"))
		}
		filter.MaxRating = &r
	}

	page, err := s.bookService.ListBooks(c.Context(), filter, pagination.FromRequest(c))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(page)
}

// GetBook handles GET /api/books/:slug
func (s *Server) GetBook(c *fiber.Ctx) error {
	book, err := s.bookService.GetBook(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(book)
}

// UpdateBook handles PUT /api/books/:slug
func (s *Server) UpdateBook(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req bookPayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	book, err := s.bookService.UpdateBook(c.Context(), user, c.Params("slug"), service.UpdateBookInput{
		Title:       req.Title,
		Description: req.Description,
		PublicType:  req.PublicType,
		State:       req.State,
		IsSaga:      req.IsSaga,
		TomeName:    req.TomeName,
		TomeNumber:  req.TomeNumber,
		Genres:      req.Genres,
		Themes:      req.Themes,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(book)
}

// DeleteBook handles DELETE /api/books/:slug
func (s *Server) DeleteBook(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	if err := s.bookService.DeleteBook(c.Context(), user, c.Params("slug")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
