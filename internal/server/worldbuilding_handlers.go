package server

import (
	"scriptum/internal/models"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) parseWorldbuildingBody(c *fiber.Ctx) (service.WorldbuildingInput, error) {
	var req struct {
		Name     string `json:"name"`
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return service.WorldbuildingInput{}, errResponseWritten
	}
	return service.WorldbuildingInput{
		Name:     req.Name,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}, nil
}

// CreatePlace handles POST /api/books/:slug/places
func (s *Server) CreatePlace(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	in, err := s.parseWorldbuildingBody(c)
	if err != nil {
		return nil
	}
	place, err := s.worldbuildingService.CreatePlace(c.Context(), user, c.Params("slug"), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(place)
}

// GetPlaces handles GET /api/books/:slug/places
func (s *Server) GetPlaces(c *fiber.Ctx) error {
	places, err := s.worldbuildingService.ListPlaces(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(places)
}

// GetPlace handles GET /api/books/:slug/places/:id
func (s *Server) GetPlace(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	place, err := s.worldbuildingService.GetPlace(c.Context(), c.Params("slug"), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(place)
}

// UpdatePlace handles PUT /api/books/:slug/places/:id
func (s *Server) UpdatePlace(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	in, err := s.parseWorldbuildingBody(c)
	if err != nil {
		return nil
	}
	place, err := s.worldbuildingService.UpdatePlace(c.Context(), user, c.Params("slug"), id, in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(place)
}

// DeletePlace handles DELETE /api/books/:slug/places/:id
func (s *Server) DeletePlace(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.worldbuildingService.DeletePlace(c.Context(), user, c.Params("slug"), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCreature handles POST /api/books/:slug/creatures
func (s *Server) CreateCreature(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	in, err := s.parseWorldbuildingBody(c)
	if err != nil {
		return nil
	}
	creature, err := s.worldbuildingService.CreateCreature(c.Context(), user, c.Params("slug"), in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(creature)
}

// GetCreatures handles GET /api/books/:slug/creatures
func (s *Server) GetCreatures(c *fiber.Ctx) error {
	creatures, err := s.worldbuildingService.ListCreatures(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(creatures)
}

// GetCreature handles GET /api/books/:slug/creatures/:id
func (s *Server) GetCreature(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	creature, err := s.worldbuildingService.GetCreature(c.Context(), c.Params("slug"), id)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(creature)
}

// UpdateCreature handles PUT /api/books/:slug/creatures/:id
func (s *Server) UpdateCreature(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	in, err := s.parseWorldbuildingBody(c)
	if err != nil {
		return nil
	}
	creature, err := s.worldbuildingService.UpdateCreature(c.Context(), user, c.Params("slug"), id, in)
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(creature)
}

// DeleteCreature handles DELETE /api/books/:slug/creatures/:id
func (s *Server) DeleteCreature(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.worldbuildingService.DeleteCreature(c.Context(), user, c.Params("slug"), id); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
