package repository

import (
	"context"
	"errors"

	"scriptum/internal/models"

	"gorm.io/gorm"
)

// CreatureRepository defines persistence operations for creatures.
type CreatureRepository interface {
	Create(ctx context.Context, creature *models.Creature) error
	GetByID(ctx context.Context, bookID, id uint) (*models.Creature, error)
	ListByBook(ctx context.Context, bookID uint) ([]models.Creature, error)
	Update(ctx context.Context, creature *models.Creature) error
	Delete(ctx context.Context, creature *models.Creature) error
}

type creatureRepository struct {
	db *gorm.DB
}

// NewCreatureRepository returns a new CreatureRepository implementation.
func NewCreatureRepository(db *gorm.DB) CreatureRepository {
	return &creatureRepository{db: db}
}

func (r *creatureRepository) Create(ctx context.Context, creature *models.Creature) error {
	if err := r.db.WithContext(ctx).Create(creature).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Creature name already used in this book")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *creatureRepository) GetByID(ctx context.Context, bookID, id uint) (*models.Creature, error) {
	var creature models.Creature
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		First(&creature, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Creature", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &creature, nil
}

func (r *creatureRepository) ListByBook(ctx context.Context, bookID uint) ([]models.Creature, error) {
	var creatures []models.Creature
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("name ASC").
		Find(&creatures).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return creatures, nil
}

func (r *creatureRepository) Update(ctx context.Context, creature *models.Creature) error {
	if err := r.db.WithContext(ctx).Save(creature).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Creature name already used in this book")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *creatureRepository) Delete(ctx context.Context, creature *models.Creature) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(creature).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
