package service

import (
	"context"

	"scriptum/internal/models"
	"scriptum/internal/repository"
)

const maxWorldbuildingContent = 1000

// WorldbuildingService handles the places and creatures attached to a book.
type WorldbuildingService struct {
	placeRepo    repository.PlaceRepository
	creatureRepo repository.CreatureRepository
	bookRepo     repository.BookRepository
}

// NewWorldbuildingService returns a new WorldbuildingService.
func NewWorldbuildingService(placeRepo repository.PlaceRepository, creatureRepo repository.CreatureRepository, bookRepo repository.BookRepository) *WorldbuildingService {
	return &WorldbuildingService{placeRepo: placeRepo, creatureRepo: creatureRepo, bookRepo: bookRepo}
}

// WorldbuildingInput carries the fields shared by places and creatures.
type WorldbuildingInput struct {
	Name     string
	Content  string
	ImageURL string
}

func (in WorldbuildingInput) validate() error {
	if in.Name == "" {
		return models.NewValidationError("Name is required")
	}
	if len(in.Name) > 30 {
		return models.NewValidationError("Name too long (max 30 characters)")
	}
	if len(in.Content) > maxWorldbuildingContent {
		return models.NewValidationError("Content too long (max 1000 characters)")
	}
	return nil
}

// CreatePlace adds a place to a book.
func (s *WorldbuildingService) CreatePlace(ctx context.Context, actor *models.User, bookSlug string, in WorldbuildingInput) (*models.Place, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	place := &models.Place{
		BookID:   book.ID,
		Name:     in.Name,
		Content:  in.Content,
		ImageURL: in.ImageURL,
	}
	if err := s.placeRepo.Create(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// ListPlaces returns a book's places.
func (s *WorldbuildingService) ListPlaces(ctx context.Context, bookSlug string) ([]models.Place, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.placeRepo.ListByBook(ctx, book.ID)
}

// GetPlace returns one place of a book by id.
func (s *WorldbuildingService) GetPlace(ctx context.Context, bookSlug string, id uint) (*models.Place, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.placeRepo.GetByID(ctx, book.ID, id)
}

// UpdatePlace edits a place's fields.
func (s *WorldbuildingService) UpdatePlace(ctx context.Context, actor *models.User, bookSlug string, id uint, in WorldbuildingInput) (*models.Place, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	place, err := s.placeRepo.GetByID(ctx, book.ID, id)
	if err != nil {
		return nil, err
	}
	place.Name = in.Name
	place.Content = in.Content
	place.ImageURL = in.ImageURL
	if err := s.placeRepo.Update(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// DeletePlace removes a place.
func (s *WorldbuildingService) DeletePlace(ctx context.Context, actor *models.User, bookSlug string, id uint) error {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return err
	}
	place, err := s.placeRepo.GetByID(ctx, book.ID, id)
	if err != nil {
		return err
	}
	return s.placeRepo.Delete(ctx, place)
}

// CreateCreature adds a creature to a book.
func (s *WorldbuildingService) CreateCreature(ctx context.Context, actor *models.User, bookSlug string, in WorldbuildingInput) (*models.Creature, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	creature := &models.Creature{
		BookID:   book.ID,
		Name:     in.Name,
		Content:  in.Content,
		ImageURL: in.ImageURL,
	}
	if err := s.creatureRepo.Create(ctx, creature); err != nil {
		return nil, err
	}
	return creature, nil
}

// ListCreatures returns a book's creatures.
func (s *WorldbuildingService) ListCreatures(ctx context.Context, bookSlug string) ([]models.Creature, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.creatureRepo.ListByBook(ctx, book.ID)
}

// GetCreature returns one creature of a book by id.
func (s *WorldbuildingService) GetCreature(ctx context.Context, bookSlug string, id uint) (*models.Creature, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.creatureRepo.GetByID(ctx, book.ID, id)
}

// UpdateCreature edits a creature's fields.
func (s *WorldbuildingService) UpdateCreature(ctx context.Context, actor *models.User, bookSlug string, id uint, in WorldbuildingInput) (*models.Creature, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	creature, err := s.creatureRepo.GetByID(ctx, book.ID, id)
	if err != nil {
		return nil, err
	}
	creature.Name = in.Name
	creature.Content = in.Content
	creature.ImageURL = in.ImageURL
	if err := s.creatureRepo.Update(ctx, creature); err != nil {
		return nil, err
	}
	return creature, nil
}

// DeleteCreature removes a creature.
func (s *WorldbuildingService) DeleteCreature(ctx context.Context, actor *models.User, bookSlug string, id uint) error {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return err
	}
	creature, err := s.creatureRepo.GetByID(ctx, book.ID, id)
	if err != nil {
		return err
	}
	return s.creatureRepo.Delete(ctx, creature)
}

func (s *WorldbuildingService) ownedBook(ctx context.Context, actor *models.User, slug string) (*models.Book, error) {
	book, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if book.AuthorID != actor.ID {
		return nil, models.NewForbiddenError("Only the author can modify this book's worldbuilding")
	}
	return book, nil
}
