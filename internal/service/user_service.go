// Package service implements the business rules of the platform: identity,
// slug assignment, rating aggregation, chapter ordering and the write-time
// invariants.
package service

import (
	"context"

	"scriptum/internal/models"
	"scriptum/internal/repository"
	"scriptum/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, login and profile management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Pseudo     string
	FirstName  string
	LastName   string
	AuthorName string
	Email      string
	Password   string
	BirthDate  string
}

// Register creates a new account. The opaque access token is generated here,
// exactly once; it never rotates afterwards.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Pseudo == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Pseudo, email and password are required")
	}
	if err := validation.ValidatePseudo(in.Pseudo); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	birthDate, err := parseDate(in.BirthDate)
	if err != nil {
		return nil, models.NewValidationError("Birth date must be formatted as YYYY-MM-DD")
	}

	existing, err := s.userRepo.GetByPseudo(ctx, in.Pseudo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Pseudo already taken")
	}
	existing, err = s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Pseudo:     in.Pseudo,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		AuthorName: in.AuthorName,
		Email:      in.Email,
		Password:   string(hashed),
		BirthDate:  birthDate,
		Token:      uuid.NewString(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by pseudo and password and returns the user's
// immutable access token along with the user.
func (s *UserService) Login(ctx context.Context, pseudo, password string) (*models.User, error) {
	if pseudo == "" || password == "" {
		return nil, models.NewValidationError("Pseudo and password are required")
	}

	user, err := s.userRepo.GetByPseudo(ctx, pseudo)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", pseudo)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError("Incorrect password")
	}
	return user, nil
}

// ResolveToken maps an opaque bearer token to its user. Used by the access
// gate middleware.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewUnauthorizedError("Token required")
	}
	return s.userRepo.GetByToken(ctx, token)
}

// GetByPseudo returns a public profile.
func (s *UserService) GetByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	user, err := s.userRepo.GetByPseudo(ctx, pseudo)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", pseudo)
	}
	return user, nil
}

// UpdateProfileInput carries the optional fields of a profile update.
type UpdateProfileInput struct {
	FirstName  string
	LastName   string
	AuthorName string
}

// UpdateProfile applies non-empty fields to the acting user's profile.
// Pseudo, email and token are immutable here.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.AuthorName != "" {
		if len(in.AuthorName) > 50 {
			return nil, models.NewValidationError("Author name too long (max 50 characters)")
		}
		user.AuthorName = in.AuthorName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the acting user and, by cascade, everything the
// account owns.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.userRepo.Delete(ctx, userID)
}
