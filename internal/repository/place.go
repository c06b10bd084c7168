package repository

import (
	"context"
	"errors"

	"scriptum/internal/models"

	"gorm.io/gorm"
)

// PlaceRepository defines persistence operations for places.
type PlaceRepository interface {
	Create(ctx context.Context, place *models.Place) error
	GetByID(ctx context.Context, bookID, id uint) (*models.Place, error)
	ListByBook(ctx context.Context, bookID uint) ([]models.Place, error)
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, place *models.Place) error
}

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository returns a new PlaceRepository implementation.
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *models.Place) error {
	if err := r.db.WithContext(ctx).Create(place).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Place name already used in this book")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *placeRepository) GetByID(ctx context.Context, bookID, id uint) (*models.Place, error) {
	var place models.Place
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		First(&place, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Place", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &place, nil
}

func (r *placeRepository) ListByBook(ctx context.Context, bookID uint) ([]models.Place, error) {
	var places []models.Place
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("name ASC").
		Find(&places).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return places, nil
}

func (r *placeRepository) Update(ctx context.Context, place *models.Place) error {
	if err := r.db.WithContext(ctx).Save(place).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Place name already used in this book")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *placeRepository) Delete(ctx context.Context, place *models.Place) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(place).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
