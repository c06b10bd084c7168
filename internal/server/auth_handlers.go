package server

import (
	"scriptum/internal/models"
	"scriptum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Pseudo     string `json:"pseudo"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
		AuthorName string `json:"author_name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		BirthDate  string `json:"birth_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Pseudo:     req.Pseudo,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		AuthorName: req.AuthorName,
		Email:      req.Email,
		Password:   req.Password,
		BirthDate:  req.BirthDate,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": user.Token,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Pseudo   string `json:"pseudo"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.Context(), req.Pseudo, req.Password)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": user.Token,
	})
}
