package repository

import (
	"context"
	"errors"

	"scriptum/internal/models"
	"scriptum/internal/slug"

	"gorm.io/gorm"
)

// ChapterRepository defines persistence operations for chapters and their
// comments.
type ChapterRepository interface {
	// Create derives a per-book unique slug from slugBase and inserts the
	// chapter within one transaction.
	Create(ctx context.Context, chapter *models.Chapter, slugBase string) error
	GetBySlug(ctx context.Context, bookID uint, slug string) (*models.Chapter, error)
	// ListByBook returns chapters sorted by sort_order, then chapter number.
	ListByBook(ctx context.Context, bookID uint) ([]models.Chapter, error)
	// TypeNumberExists reports whether the book already holds a chapter with
	// the given type and number.
	TypeNumberExists(ctx context.Context, bookID uint, chapterType models.ChapterType, number *int) (bool, error)
	Update(ctx context.Context, chapter *models.Chapter) error
	Delete(ctx context.Context, chapter *models.Chapter) error

	CreateComment(ctx context.Context, comment *models.ChapterComment) error
	ListComments(ctx context.Context, chapterID uint, limit, offset int) ([]models.ChapterComment, int64, error)
}

type chapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository returns a new ChapterRepository implementation.
func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(ctx context.Context, chapter *models.Chapter, slugBase string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := slug.Unique(slugBase, func(candidate string) (bool, error) {
			var n int64
			err := tx.Model(&models.Chapter{}).
				Where("book_id = ? AND slug = ?", chapter.BookID, candidate).
				Count(&n).Error
			if err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}
		chapter.Slug = s
		return tx.Create(chapter).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return chapterConflict(err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// chapterConflict maps a unique violation to the invariant it broke. The
// partial indexes on (book_id, type, chapter_number) backstop the
// service-level pre-check against concurrent creates.
func chapterConflict(err error) error {
	if violatesConstraint(err, "idx_chapters_book_type_number") ||
		violatesConstraint(err, "idx_chapters_book_singleton_type") {
		return models.NewConflictError("The book already has a chapter with this type and number")
	}
	return models.NewConflictError("Chapter slug already taken in this book")
}

func (r *chapterRepository) GetBySlug(ctx context.Context, bookID uint, s string) (*models.Chapter, error) {
	var chapter models.Chapter
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND slug = ?", bookID, s).
		First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Chapter", s)
		}
		return nil, models.NewInternalError(err)
	}
	return &chapter, nil
}

func (r *chapterRepository) ListByBook(ctx context.Context, bookID uint) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("sort_order ASC, chapter_number ASC NULLS FIRST").
		Find(&chapters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return chapters, nil
}

func (r *chapterRepository) TypeNumberExists(ctx context.Context, bookID uint, chapterType models.ChapterType, number *int) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Chapter{}).
		Where("book_id = ? AND type = ?", bookID, chapterType)
	if number != nil {
		q = q.Where("chapter_number = ?", *number)
	} else {
		q = q.Where("chapter_number IS NULL")
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *chapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	if err := r.db.WithContext(ctx).Save(chapter).Error; err != nil {
		if isUniqueConstraintError(err) {
			return chapterConflict(err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chapterRepository) Delete(ctx context.Context, chapter *models.Chapter) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(chapter).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chapterRepository) CreateComment(ctx context.Context, comment *models.ChapterComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chapterRepository) ListComments(ctx context.Context, chapterID uint, limit, offset int) ([]models.ChapterComment, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.ChapterComment{}).Where("chapter_id = ?", chapterID)
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []models.ChapterComment
	err := q.Session(&gorm.Session{}).Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}
