package repository

import (
	"context"

	"scriptum/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for followed authors.
type FollowRepository interface {
	Create(ctx context.Context, follow *models.FollowedAuthor) error
	Delete(ctx context.Context, userID, authorID uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.FollowedAuthor, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.FollowedAuthor) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You already follow this author")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.FollowedAuthor{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", authorID)
	}
	return nil
}

func (r *followRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.FollowedAuthor, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.FollowedAuthor{}).Where("user_id = ?", userID)
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var follows []models.FollowedAuthor
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&follows).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return follows, total, nil
}
