package service

import (
	"context"

	"scriptum/internal/models"
	"scriptum/internal/repository"

	"gorm.io/datatypes"
)

// CharacterService handles character sheet CRUD for a book.
type CharacterService struct {
	characterRepo repository.CharacterRepository
	bookRepo      repository.BookRepository
}

// NewCharacterService returns a new CharacterService.
func NewCharacterService(characterRepo repository.CharacterRepository, bookRepo repository.BookRepository) *CharacterService {
	return &CharacterService{characterRepo: characterRepo, bookRepo: bookRepo}
}

// CharacterInput carries the attributes of a character sheet. The same shape
// serves creation and full update; partial edits use pointer fields.
type CharacterInput struct {
	Name       string
	Surname    string
	Role       string
	Age        int
	Sex        string
	Height     string
	Background string
	Species    string
	HasRace    bool
	Race       string
	ImageURL   string
	Traits     []string
	Study      map[string]interface{}
	Job        map[string]interface{}
	Family     map[string]interface{}
	Addiction  map[string]interface{}
	DayBirth   *int
	MonthBirth *int
	Hometown   string
	Language   string
	Relation   string
	Religion   string
	Fear       string
	Talent     string
}

// CreateCharacter validates the sheet, rejects a duplicate name within the
// book and inserts. The character's slug comes from its name; the zodiac
// sign is derived, never stored.
func (s *CharacterService) CreateCharacter(ctx context.Context, actor *models.User, bookSlug string, in CharacterInput) (*models.Character, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Character name is required")
	}

	character := &models.Character{
		BookID:     book.ID,
		Name:       in.Name,
		Surname:    in.Surname,
		Role:       models.CharacterRole(in.Role),
		Age:        in.Age,
		Sex:        models.CharacterSex(in.Sex),
		Height:     in.Height,
		Background: in.Background,
		Species:    in.Species,
		HasRace:    in.HasRace,
		Race:       in.Race,
		ImageURL:   in.ImageURL,
		Traits:     datatypes.NewJSONSlice(in.Traits),
		Study:      in.Study,
		Job:        in.Job,
		Family:     in.Family,
		Addiction:  in.Addiction,
		DayBirth:   in.DayBirth,
		MonthBirth: in.MonthBirth,
		Hometown:   in.Hometown,
		Language:   in.Language,
		Relation:   models.CharacterRelation(in.Relation),
		Religion:   in.Religion,
		Fear:       in.Fear,
		Talent:     in.Talent,
	}
	if character.Species == "" {
		character.Species = "Human"
	}
	if err := character.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.characterRepo.NameExists(ctx, book.ID, character.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("The book already has a character with this name")
	}

	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, err
	}
	character.DeriveZodiac()
	return character, nil
}

// ListCharacters returns a book's characters ordered by name.
func (s *CharacterService) ListCharacters(ctx context.Context, bookSlug string) ([]models.Character, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.characterRepo.ListByBook(ctx, book.ID)
}

// GetCharacter returns one character of a book by slug.
func (s *CharacterService) GetCharacter(ctx context.Context, bookSlug, characterSlug string) (*models.Character, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.characterRepo.GetBySlug(ctx, book.ID, characterSlug)
}

// UpdateCharacterInput carries the optional fields of a character edit.
// Name and slug are immutable after creation.
type UpdateCharacterInput struct {
	Surname    *string
	Role       *string
	Age        *int
	Sex        *string
	Height     *string
	Background *string
	Species    *string
	HasRace    *bool
	Race       *string
	ImageURL   *string
	Traits     []string
	Study      map[string]interface{}
	Job        map[string]interface{}
	Family     map[string]interface{}
	Addiction  map[string]interface{}
	DayBirth   *int
	MonthBirth *int
	Hometown   *string
	Language   *string
	Relation   *string
	Religion   *string
	Fear       *string
	Talent     *string
}

// UpdateCharacter merges the provided fields into the stored sheet and
// re-validates the whole character before saving.
func (s *CharacterService) UpdateCharacter(ctx context.Context, actor *models.User, bookSlug, characterSlug string, in UpdateCharacterInput) (*models.Character, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	character, err := s.characterRepo.GetBySlug(ctx, book.ID, characterSlug)
	if err != nil {
		return nil, err
	}

	if in.Surname != nil {
		character.Surname = *in.Surname
	}
	if in.Role != nil {
		character.Role = models.CharacterRole(*in.Role)
	}
	if in.Age != nil {
		character.Age = *in.Age
	}
	if in.Sex != nil {
		character.Sex = models.CharacterSex(*in.Sex)
	}
	if in.Height != nil {
		character.Height = *in.Height
	}
	if in.Background != nil {
		character.Background = *in.Background
	}
	if in.Species != nil {
		character.Species = *in.Species
	}
	if in.HasRace != nil {
		character.HasRace = *in.HasRace
		if !character.HasRace {
			character.Race = ""
		}
	}
	if in.Race != nil {
		character.Race = *in.Race
	}
	if in.ImageURL != nil {
		character.ImageURL = *in.ImageURL
	}
	if in.Traits != nil {
		character.Traits = datatypes.NewJSONSlice(in.Traits)
	}
	if in.Study != nil {
		character.Study = in.Study
	}
	if in.Job != nil {
		character.Job = in.Job
	}
	if in.Family != nil {
		character.Family = in.Family
	}
	if in.Addiction != nil {
		character.Addiction = in.Addiction
	}
	if in.DayBirth != nil {
		character.DayBirth = in.DayBirth
	}
	if in.MonthBirth != nil {
		character.MonthBirth = in.MonthBirth
	}
	if in.Hometown != nil {
		character.Hometown = *in.Hometown
	}
	if in.Language != nil {
		character.Language = *in.Language
	}
	if in.Relation != nil {
		character.Relation = models.CharacterRelation(*in.Relation)
	}
	if in.Religion != nil {
		character.Religion = *in.Religion
	}
	if in.Fear != nil {
		character.Fear = *in.Fear
	}
	if in.Talent != nil {
		character.Talent = *in.Talent
	}

	if err := character.Validate(); err != nil {
		return nil, err
	}
	if err := s.characterRepo.Update(ctx, character); err != nil {
		return nil, err
	}
	character.DeriveZodiac()
	return character, nil
}

// DeleteCharacter removes a character sheet.
func (s *CharacterService) DeleteCharacter(ctx context.Context, actor *models.User, bookSlug, characterSlug string) error {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return err
	}
	character, err := s.characterRepo.GetBySlug(ctx, book.ID, characterSlug)
	if err != nil {
		return err
	}
	return s.characterRepo.Delete(ctx, character)
}

func (s *CharacterService) ownedBook(ctx context.Context, actor *models.User, slug string) (*models.Book, error) {
	book, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if book.AuthorID != actor.ID {
		return nil, models.NewForbiddenError("Only the author can modify this book's characters")
	}
	return book, nil
}
