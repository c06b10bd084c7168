package server

import (
	"io"

	"scriptum/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images (multipart field "image").
func (s *Server) UploadImage(c *fiber.Ctx) error {
	if _, err := s.actingUser(c); err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An image file is required (field \"image\")"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	key, err := s.imageService.Upload(c.Context(), data)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"key": key,
		"url": "/api/images/" + key,
	})
}

// GetImage handles GET /api/images/:key
func (s *Server) GetImage(c *fiber.Ctx) error {
	data, contentType, err := s.imageService.Download(c.Context(), c.Params("key"))
	if err != nil {
		return models.RespondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// DeleteImage handles DELETE /api/images/:key
func (s *Server) DeleteImage(c *fiber.Ctx) error {
	if _, err := s.actingUser(c); err != nil {
		return nil
	}
	if err := s.imageService.Delete(c.Context(), c.Params("key")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
