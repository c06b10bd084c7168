package server

import (
	"scriptum/internal/models"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

type characterPayload struct {
	Name       string                 `json:"name"`
	Surname    *string                `json:"surname"`
	Role       *string                `json:"role"`
	Age        *int                   `json:"age"`
	Sex        *string                `json:"sex"`
	Height     *string                `json:"height"`
	Background *string                `json:"background"`
	Species    *string                `json:"species"`
	HasRace    *bool                  `json:"has_race"`
	Race       *string                `json:"race"`
	ImageURL   *string                `json:"image_url"`
	Traits     []string               `json:"traits"`
	Study      map[string]interface{} `json:"study"`
	Job        map[string]interface{} `json:"job"`
	Family     map[string]interface{} `json:"family"`
	Addiction  map[string]interface{} `json:"addiction"`
	DayBirth   *int                   `json:"day_birth"`
	MonthBirth *int                   `json:"month_birth"`
	Hometown   *string                `json:"hometown"`
	Language   *string                `json:"language"`
	Relation   *string                `json:"relation"`
	Religion   *string                `json:"religion"`
	Fear       *string                `json:"fear"`
	Talent     *string                `json:"talent"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// CreateCharacter handles POST /api/books/:slug/characters
func (s *Server) CreateCharacter(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req characterPayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	character, err := s.characterService.CreateCharacter(c.Context(), user, c.Params("slug"), service.CharacterInput{
		Name:       req.Name,
		Surname:    deref(req.Surname),
		Role:       deref(req.Role),
		Age:        deref(req.Age),
		Sex:        deref(req.Sex),
		Height:     deref(req.Height),
		Background: deref(req.Background),
		Species:    deref(req.Species),
		HasRace:    deref(req.HasRace),
		Race:       deref(req.Race),
		ImageURL:   deref(req.ImageURL),
		Traits:     req.Traits,
		Study:      req.Study,
		Job:        req.Job,
		Family:     req.Family,
		Addiction:  req.Addiction,
		DayBirth:   req.DayBirth,
		MonthBirth: req.MonthBirth,
		Hometown:   deref(req.Hometown),
		Language:   deref(req.Language),
		Relation:   deref(req.Relation),
		Religion:   deref(req.Religion),
		Fear:       deref(req.Fear),
		Talent:     deref(req.Talent),
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(character)
}

// GetCharacters handles GET /api/books/:slug/characters
func (s *Server) GetCharacters(c *fiber.Ctx) error {
	characters, err := s.characterService.ListCharacters(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(characters)
}

// GetCharacter handles GET /api/books/:slug/characters/:characterSlug
func (s *Server) GetCharacter(c *fiber.Ctx) error {
	character, err := s.characterService.GetCharacter(c.Context(), c.Params("slug"), c.Params("characterSlug"))
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(character)
}

// UpdateCharacter handles PUT /api/books/:slug/characters/:characterSlug
func (s *Server) UpdateCharacter(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}

	var req characterPayload
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	character, err := s.characterService.UpdateCharacter(c.Context(), user, c.Params("slug"), c.Params("characterSlug"), service.UpdateCharacterInput{
		Surname:    req.Surname,
		Role:       req.Role,
		Age:        req.Age,
		Sex:        req.Sex,
		Height:     req.Height,
		Background: req.Background,
		Species:    req.Species,
		HasRace:    req.HasRace,
		Race:       req.Race,
		ImageURL:   req.ImageURL,
		Traits:     req.Traits,
		Study:      req.Study,
		Job:        req.Job,
		Family:     req.Family,
		Addiction:  req.Addiction,
		DayBirth:   req.DayBirth,
		MonthBirth: req.MonthBirth,
		Hometown:   req.Hometown,
		Language:   req.Language,
		Relation:   req.Relation,
		Religion:   req.Religion,
		Fear:       req.Fear,
		Talent:     req.Talent,
	})
	if err != nil {
		return models.RespondError(c, err)
	}
	return c.JSON(character)
}

// DeleteCharacter handles DELETE /api/books/:slug/characters/:characterSlug
func (s *Server) DeleteCharacter(c *fiber.Ctx) error {
	user, err := s.actingUser(c)
	if err != nil {
		return nil
	}
	if err := s.characterService.DeleteCharacter(c.Context(), user, c.Params("slug"), c.Params("characterSlug")); err != nil {
		return models.RespondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
