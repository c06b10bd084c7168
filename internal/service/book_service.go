package service

import (
	"context"

	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/repository"
)

// BookService handles book CRUD, slug assignment and the saga invariant.
type BookService struct {
	bookRepo repository.BookRepository
	tagRepo  repository.TagRepository
}

// NewBookService returns a new BookService.
func NewBookService(bookRepo repository.BookRepository, tagRepo repository.TagRepository) *BookService {
	return &BookService{bookRepo: bookRepo, tagRepo: tagRepo}
}

// CreateBookInput carries the fields of a book creation request.
type CreateBookInput struct {
	Title       string
	Description string
	PublicType  string
	State       string
	IsSaga      bool
	TomeName    *string
	TomeNumber  *int
	Genres      []string
	Themes      []string
	ImageURL    string
}

// CreateBook validates the input, resolves tags with get-or-create semantics
// and inserts the book. The slug derives from title plus author pseudo and is
// generated exactly once, here.
func (s *BookService) CreateBook(ctx context.Context, author *models.User, in CreateBookInput) (*models.Book, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > 50 {
		return nil, models.NewValidationError("Title too long (max 50 characters)")
	}
	if !models.PublicType(in.PublicType).Valid() {
		return nil, models.NewValidationError("Public type must be general, young-adult or adult")
	}
	if len(in.Genres) > models.MaxGenresPerBook {
		return nil, models.NewValidationError("A book cannot have more than 5 genres")
	}
	if len(in.Themes) > models.MaxThemesPerBook {
		return nil, models.NewValidationError("A book cannot have more than 10 themes")
	}

	state := in.State
	if state == "" {
		state = models.DefaultBookState
	}

	book := &models.Book{
		Title:       in.Title,
		Description: in.Description,
		AuthorID:    author.ID,
		PublicType:  models.PublicType(in.PublicType),
		State:       state,
		IsSaga:      in.IsSaga,
		TomeName:    in.TomeName,
		TomeNumber:  in.TomeNumber,
		ImageURL:    in.ImageURL,
	}
	if err := book.ValidateSaga(); err != nil {
		return nil, err
	}

	genres, err := s.tagRepo.GetOrCreateGenres(ctx, in.Genres)
	if err != nil {
		return nil, err
	}
	themes, err := s.tagRepo.GetOrCreateThemes(ctx, in.Themes)
	if err != nil {
		return nil, err
	}
	book.Genres = genres
	book.Themes = themes

	// The slug derives from the title alone; a same-titled book by any
	// author resolves its collision through the -N suffix.
	if err := s.bookRepo.Create(ctx, book, in.Title); err != nil {
		return nil, err
	}
	book.Author = *author
	return book, nil
}

// GetBook returns a book by its slug.
func (s *BookService) GetBook(ctx context.Context, slug string) (*models.Book, error) {
	return s.bookRepo.GetBySlug(ctx, slug)
}

// ListBooks returns a filtered, paginated page of books ordered by release
// date, then rating descending, then title.
func (s *BookService) ListBooks(ctx context.Context, filter repository.BookFilter, p pagination.Params) (pagination.Page[models.Book], error) {
	books, total, err := s.bookRepo.List(ctx, filter, p.Limit(), p.Offset())
	if err != nil {
		return pagination.Page[models.Book]{}, err
	}
	return pagination.NewPage(books, p, total), nil
}

// UpdateBookInput carries the optional fields of a book update. Nil pointers
// leave the stored value unchanged.
type UpdateBookInput struct {
	Title       *string
	Description *string
	PublicType  *string
	State       *string
	IsSaga      *bool
	TomeName    *string
	TomeNumber  *int
	Genres      []string
	Themes      []string
	ImageURL    *string
}

// UpdateBook applies a partial update after re-checking ownership and the
// saga invariant. The slug is never regenerated, even when the title changes.
func (s *BookService) UpdateBook(ctx context.Context, actor *models.User, slug string, in UpdateBookInput) (*models.Book, error) {
	book, err := s.ownedBook(ctx, actor, slug)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*in.Title) > 50 {
			return nil, models.NewValidationError("Title too long (max 50 characters)")
		}
		book.Title = *in.Title
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.PublicType != nil {
		if !models.PublicType(*in.PublicType).Valid() {
			return nil, models.NewValidationError("Public type must be general, young-adult or adult")
		}
		book.PublicType = models.PublicType(*in.PublicType)
	}
	if in.State != nil && *in.State != "" {
		book.State = *in.State
	}
	if in.IsSaga != nil {
		book.IsSaga = *in.IsSaga
	}
	if in.TomeName != nil {
		if *in.TomeName == "" {
			book.TomeName = nil
		} else {
			book.TomeName = in.TomeName
		}
	}
	if in.TomeNumber != nil {
		book.TomeNumber = in.TomeNumber
	}
	if !book.IsSaga {
		// Dropping the saga flag clears the tome fields unless the caller
		// explicitly sent inconsistent values, which fails below.
		if in.TomeName == nil && in.TomeNumber == nil {
			book.TomeName = nil
			book.TomeNumber = nil
		}
	}
	if in.ImageURL != nil {
		book.ImageURL = *in.ImageURL
	}

	// The invariant holds on the merged state, not just on full writes.
	if err := book.ValidateSaga(); err != nil {
		return nil, err
	}

	if in.Genres != nil {
		if len(in.Genres) > models.MaxGenresPerBook {
			return nil, models.NewValidationError("A book cannot have more than 5 genres")
		}
		genres, err := s.tagRepo.GetOrCreateGenres(ctx, in.Genres)
		if err != nil {
			return nil, err
		}
		book.Genres = genres
	}
	if in.Themes != nil {
		if len(in.Themes) > models.MaxThemesPerBook {
			return nil, models.NewValidationError("A book cannot have more than 10 themes")
		}
		themes, err := s.tagRepo.GetOrCreateThemes(ctx, in.Themes)
		if err != nil {
			return nil, err
		}
		book.Themes = themes
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook removes an owned book and all its dependents.
func (s *BookService) DeleteBook(ctx context.Context, actor *models.User, slug string) error {
	book, err := s.ownedBook(ctx, actor, slug)
	if err != nil {
		return err
	}
	return s.bookRepo.Delete(ctx, book)
}

// ownedBook loads a book and verifies the actor is its author.
func (s *BookService) ownedBook(ctx context.Context, actor *models.User, slug string) (*models.Book, error) {
	book, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if book.AuthorID != actor.ID {
		return nil, models.NewForbiddenError("Only the author can modify this book")
	}
	return book, nil
}
