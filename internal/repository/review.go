package repository

import (
	"context"
	"errors"

	"scriptum/internal/cache"
	"scriptum/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewRepository defines persistence operations for reviews. Every write
// recomputes the owning book's rating inside the same transaction, with a
// row-level lock on the book serializing concurrent recomputes.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	// GetByBookAndUser returns (nil, nil) when the user has not reviewed the book.
	GetByBookAndUser(ctx context.Context, bookID, userID uint) (*models.Review, error)
	ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]models.Review, int64, error)
	CreateAndRecompute(ctx context.Context, review *models.Review) error
	UpdateAndRecompute(ctx context.Context, review *models.Review) error
	DeleteAndRecompute(ctx context.Context, review *models.Review) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) GetByBookAndUser(ctx context.Context, bookID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]models.Review, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.Review{}).Where("book_id = ?", bookID)
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var reviews []models.Review
	err := q.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return reviews, total, nil
}

func (r *reviewRepository) CreateAndRecompute(ctx context.Context, review *models.Review) error {
	return r.writeAndRecompute(ctx, review.BookID, func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("You have already reviewed this book")
			}
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *reviewRepository) UpdateAndRecompute(ctx context.Context, review *models.Review) error {
	return r.writeAndRecompute(ctx, review.BookID, func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *reviewRepository) DeleteAndRecompute(ctx context.Context, review *models.Review) error {
	return r.writeAndRecompute(ctx, review.BookID, func(tx *gorm.DB) error {
		if err := tx.Delete(review).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// writeAndRecompute locks the book row, applies the review write and derives
// the new rating, all inside one transaction. Callers never observe a book
// whose rating is stale relative to its review set.
func (r *reviewRepository) writeAndRecompute(ctx context.Context, bookID uint, write func(tx *gorm.DB) error) error {
	var bookSlug string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var book models.Book
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&book, bookID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Book", bookID)
			}
			return models.NewInternalError(err)
		}
		bookSlug = book.Slug

		if err := write(tx); err != nil {
			return err
		}

		var scores []int
		if err := tx.Model(&models.Review{}).Where("book_id = ?", bookID).Pluck("score", &scores).Error; err != nil {
			return models.NewInternalError(err)
		}

		rating := models.AggregateRating(scores)
		if err := tx.Model(&models.Book{}).Where("id = ?", bookID).Update("rating", rating).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBook(ctx, bookSlug)
	return nil
}
