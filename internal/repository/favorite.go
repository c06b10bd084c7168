package repository

import (
	"context"

	"scriptum/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID, bookID uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Book is already in your favorites")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, bookID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Favorite", bookID)
	}
	return nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("user_id = ?", userID)
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var favorites []models.Favorite
	err := q.Session(&gorm.Session{}).
		Preload("Book").
		Preload("Book.Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return favorites, total, nil
}
