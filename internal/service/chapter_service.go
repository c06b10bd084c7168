package service

import (
	"context"
	"fmt"

	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/repository"
)

// ChapterService handles chapter CRUD, the ordering policy and chapter
// comments.
type ChapterService struct {
	chapterRepo repository.ChapterRepository
	bookRepo    repository.BookRepository
}

// NewChapterService returns a new ChapterService.
func NewChapterService(chapterRepo repository.ChapterRepository, bookRepo repository.BookRepository) *ChapterService {
	return &ChapterService{chapterRepo: chapterRepo, bookRepo: bookRepo}
}

// chapterSlugBase derives the slug base from the ordering identity:
// "prologue"/"epilogue" for unnumbered types, "chapter-N" for body chapters.
func chapterSlugBase(t models.ChapterType, number *int) string {
	if t.RequiresNumber() && number != nil {
		return fmt.Sprintf("%s-%d", t, *number)
	}
	return string(t)
}

// CreateChapterInput carries the fields of a chapter creation request.
type CreateChapterInput struct {
	Title         string
	Content       string
	Type          string
	ChapterNumber *int
}

// CreateChapter validates the type/number invariant, rejects a duplicate
// (type, number) identity within the book, derives sort order and slug, and
// inserts. The structural uniqueness check is the primary mechanism; the
// slug suffix loop in the repository is a defensive fallback.
func (s *ChapterService) CreateChapter(ctx context.Context, actor *models.User, bookSlug string, in CreateChapterInput) (*models.Chapter, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Chapter content is required")
	}

	chapter := &models.Chapter{
		BookID:        book.ID,
		Title:         in.Title,
		Content:       in.Content,
		Type:          models.ChapterType(in.Type),
		ChapterNumber: in.ChapterNumber,
	}
	if err := chapter.ValidateNumbering(); err != nil {
		return nil, err
	}
	chapter.SortOrder = chapter.Type.SortOrder()

	taken, err := s.chapterRepo.TypeNumberExists(ctx, book.ID, chapter.Type, chapter.ChapterNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("The book already has a chapter with this type and number")
	}

	base := chapterSlugBase(chapter.Type, chapter.ChapterNumber)
	if err := s.chapterRepo.Create(ctx, chapter, base); err != nil {
		return nil, err
	}
	return chapter, nil
}

// ListChapters returns a book's chapters in reading order: sort_order first,
// chapter number second.
func (s *ChapterService) ListChapters(ctx context.Context, bookSlug string) ([]models.Chapter, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.chapterRepo.ListByBook(ctx, book.ID)
}

// GetChapter returns one chapter of a book by slug.
func (s *ChapterService) GetChapter(ctx context.Context, bookSlug, chapterSlug string) (*models.Chapter, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	return s.chapterRepo.GetBySlug(ctx, book.ID, chapterSlug)
}

// UpdateChapterInput carries the optional fields of a chapter update.
type UpdateChapterInput struct {
	Title   *string
	Content *string
}

// UpdateChapter edits a chapter's title or content. The ordering identity
// (type, number) and the slug are immutable after creation; reshaping a book
// is a delete-and-recreate operation.
func (s *ChapterService) UpdateChapter(ctx context.Context, actor *models.User, bookSlug, chapterSlug string, in UpdateChapterInput) (*models.Chapter, error) {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return nil, err
	}
	chapter, err := s.chapterRepo.GetBySlug(ctx, book.ID, chapterSlug)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		chapter.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Chapter content cannot be empty")
		}
		chapter.Content = *in.Content
	}

	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// DeleteChapter removes a chapter and its comments.
func (s *ChapterService) DeleteChapter(ctx context.Context, actor *models.User, bookSlug, chapterSlug string) error {
	book, err := s.ownedBook(ctx, actor, bookSlug)
	if err != nil {
		return err
	}
	chapter, err := s.chapterRepo.GetBySlug(ctx, book.ID, chapterSlug)
	if err != nil {
		return err
	}
	return s.chapterRepo.Delete(ctx, chapter)
}

// AddComment attaches a reader comment to a chapter. Any authenticated user
// may comment; ownership is not required.
func (s *ChapterService) AddComment(ctx context.Context, actor *models.User, bookSlug, chapterSlug, content string) (*models.ChapterComment, error) {
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > 500 {
		return nil, models.NewValidationError("Comment too long (max 500 characters)")
	}

	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	chapter, err := s.chapterRepo.GetBySlug(ctx, book.ID, chapterSlug)
	if err != nil {
		return nil, err
	}

	comment := &models.ChapterComment{
		ChapterID: chapter.ID,
		UserID:    actor.ID,
		Content:   content,
	}
	if err := s.chapterRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns a page of a chapter's comments, newest first.
func (s *ChapterService) ListComments(ctx context.Context, bookSlug, chapterSlug string, p pagination.Params) (pagination.Page[models.ChapterComment], error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return pagination.Page[models.ChapterComment]{}, err
	}
	chapter, err := s.chapterRepo.GetBySlug(ctx, book.ID, chapterSlug)
	if err != nil {
		return pagination.Page[models.ChapterComment]{}, err
	}
	comments, total, err := s.chapterRepo.ListComments(ctx, chapter.ID, p.Limit(), p.Offset())
	if err != nil {
		return pagination.Page[models.ChapterComment]{}, err
	}
	return pagination.NewPage(comments, p, total), nil
}

func (s *ChapterService) ownedBook(ctx context.Context, actor *models.User, slug string) (*models.Book, error) {
	book, err := s.bookRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if book.AuthorID != actor.ID {
		return nil, models.NewForbiddenError("Only the author can modify this book's chapters")
	}
	return book, nil
}
