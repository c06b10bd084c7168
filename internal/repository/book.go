package repository

import (
	"context"
	"errors"

	"scriptum/internal/cache"
	"scriptum/internal/models"
	"scriptum/internal/slug"

	"gorm.io/gorm"
)

// BookFilter narrows book listings. Zero values mean "no constraint".
type BookFilter struct {
	PublicType string
	State      string
	Genre      string
	Author     string
	IsSaga     *bool
	MinRating  *float64
	MaxRating  *float64
}

// BookRepository defines persistence operations for books.
type BookRepository interface {
	// Create derives a globally unique slug from slugBase and inserts the
	// book within one transaction.
	Create(ctx context.Context, book *models.Book, slugBase string) error
	GetBySlug(ctx context.Context, slug string) (*models.Book, error)
	List(ctx context.Context, filter BookFilter, limit, offset int) ([]models.Book, int64, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, book *models.Book) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository returns a new BookRepository implementation.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book, slugBase string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := slug.Unique(slugBase, func(candidate string) (bool, error) {
			var n int64
			if err := tx.Model(&models.Book{}).Where("slug = ?", candidate).Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}
		book.Slug = s
		return tx.Create(book).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			// Lost the race against a concurrent create; the unique index is
			// the backstop for the in-transaction check.
			return models.NewConflictError("Book slug already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookRepository) GetBySlug(ctx context.Context, s string) (*models.Book, error) {
	var book models.Book
	key := cache.BookKey(s)

	err := cache.Aside(ctx, key, &book, cache.BookTTL, func() error {
		err := r.db.WithContext(ctx).
			Preload("Author").
			Preload("Genres").
			Preload("Themes").
			Where("slug = ?", s).
			First(&book).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Book", s)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, filter BookFilter, limit, offset int) ([]models.Book, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Book{}).
		Joins("JOIN users ON users.id = books.author_id")

	if filter.PublicType != "" {
		q = q.Where("LOWER(books.public_type) = LOWER(?)", filter.PublicType)
	}
	if filter.State != "" {
		q = q.Where("LOWER(books.state) = LOWER(?)", filter.State)
	}
	if filter.Author != "" {
		q = q.Where("users.author_name ILIKE ? OR users.pseudo ILIKE ?",
			"%"+filter.Author+"%", "%"+filter.Author+"%")
	}
	if filter.Genre != "" {
		q = q.Where("books.id IN (?)",
			r.db.Table("book_genres").
				Select("book_genres.book_id").
				Joins("JOIN genres ON genres.id = book_genres.genre_id").
				Where("genres.name ILIKE ?", "%"+filter.Genre+"%"))
	}
	if filter.IsSaga != nil {
		q = q.Where("books.is_saga = ?", *filter.IsSaga)
	}
	if filter.MinRating != nil {
		q = q.Where("books.rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		q = q.Where("books.rating <= ?", *filter.MaxRating)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var books []models.Book
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Genres").
		Preload("Themes").
		Order("books.release_date ASC, books.rating DESC, books.title ASC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return books, total, nil
}

// bookUpdateOmitColumns keeps Save from touching columns that Update does
// not own. Rating belongs to the review recompute path; writing the loaded
// value back here would clobber a concurrent recompute.
var bookUpdateOmitColumns = []string{"Genres", "Themes", "Rating", "CreatedAt"}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(bookUpdateOmitColumns...).Save(book).Error; err != nil {
			return err
		}
		if book.Genres != nil {
			if err := tx.Model(book).Association("Genres").Replace(book.Genres); err != nil {
				return err
			}
		}
		if book.Themes != nil {
			if err := tx.Model(book).Association("Themes").Replace(book.Themes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBook(ctx, book.Slug)
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, book *models.Book) error {
	// Hard delete so cascades remove chapters, characters, places, creatures,
	// reviews and favorites.
	if err := r.db.WithContext(ctx).Unscoped().Delete(book).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBook(ctx, book.Slug)
	return nil
}
