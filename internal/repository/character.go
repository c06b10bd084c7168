package repository

import (
	"context"
	"errors"

	"scriptum/internal/models"
	"scriptum/internal/slug"

	"gorm.io/gorm"
)

// CharacterRepository defines persistence operations for characters.
type CharacterRepository interface {
	// Create derives a per-book unique slug from the character name and
	// inserts within one transaction.
	Create(ctx context.Context, character *models.Character) error
	GetBySlug(ctx context.Context, bookID uint, slug string) (*models.Character, error)
	ListByBook(ctx context.Context, bookID uint) ([]models.Character, error)
	NameExists(ctx context.Context, bookID uint, name string) (bool, error)
	Update(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, character *models.Character) error
}

type characterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository returns a new CharacterRepository implementation.
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(ctx context.Context, character *models.Character) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := slug.Unique(character.Name, func(candidate string) (bool, error) {
			var n int64
			err := tx.Model(&models.Character{}).
				Where("book_id = ? AND slug = ?", character.BookID, candidate).
				Count(&n).Error
			if err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}
		character.Slug = s
		return tx.Create(character).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Character name already used in this book")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *characterRepository) GetBySlug(ctx context.Context, bookID uint, s string) (*models.Character, error) {
	var character models.Character
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND slug = ?", bookID, s).
		First(&character).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Character", s)
		}
		return nil, models.NewInternalError(err)
	}
	return &character, nil
}

func (r *characterRepository) ListByBook(ctx context.Context, bookID uint) ([]models.Character, error) {
	var characters []models.Character
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("name ASC").
		Find(&characters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return characters, nil
}

func (r *characterRepository) NameExists(ctx context.Context, bookID uint, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Character{}).
		Where("book_id = ? AND name = ?", bookID, name).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *characterRepository) Update(ctx context.Context, character *models.Character) error {
	if err := r.db.WithContext(ctx).Save(character).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Character name already used in this book")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *characterRepository) Delete(ctx context.Context, character *models.Character) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(character).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
