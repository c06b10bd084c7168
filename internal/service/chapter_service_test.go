package service

import (
	"context"
	"strings"
	"testing"

	"scriptum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownedBookRepo(authorID uint) *bookRepoStub {
	repo := noopBookRepo()
	repo.getBySlugFn = func(_ context.Context, slug string) (*models.Book, error) {
		return &models.Book{ID: 3, Slug: slug, AuthorID: authorID}, nil
	}
	return repo
}

func TestChapterService_CreateChapter(t *testing.T) {
	t.Parallel()

	owner := &models.User{ID: 7}

	t.Run("body chapter derives number slug and sort order", func(t *testing.T) {
		t.Parallel()
		chapters := noopChapterRepo()
		var gotBase string
		chapters.createFn = func(_ context.Context, ch *models.Chapter, base string) error {
			gotBase = base
			ch.Slug = base
			return nil
		}
		svc := NewChapterService(chapters, ownedBookRepo(7))
		ch, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content:       "It begins.",
			Type:          "chapter",
			ChapterNumber: intptr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, "chapter-3", gotBase)
		assert.Equal(t, 1, ch.SortOrder)
	})

	t.Run("prologue carries no number and sorts first", func(t *testing.T) {
		t.Parallel()
		chapters := noopChapterRepo()
		var gotBase string
		chapters.createFn = func(_ context.Context, ch *models.Chapter, base string) error {
			gotBase = base
			return nil
		}
		svc := NewChapterService(chapters, ownedBookRepo(7))
		ch, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content: "Before it all.",
			Type:    "prologue",
		})
		require.NoError(t, err)
		assert.Equal(t, "prologue", gotBase)
		assert.Equal(t, 0, ch.SortOrder)
	})

	t.Run("epilogue sorts last", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		ch, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content: "After it all.",
			Type:    "epilogue",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, ch.SortOrder)
	})

	t.Run("body chapter without number", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		_, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content: "text",
			Type:    "chapter",
		})
		assertValidationError(t, err)
	})

	t.Run("prologue with number", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		_, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content:       "text",
			Type:          "prologue",
			ChapterNumber: intptr(1),
		})
		assertValidationError(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		_, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content: "text",
			Type:    "interlude",
		})
		assertValidationError(t, err)
	})

	t.Run("duplicate type and number is a conflict", func(t *testing.T) {
		t.Parallel()
		chapters := noopChapterRepo()
		chapters.typeNumberExistsFn = func(context.Context, uint, models.ChapterType, *int) (bool, error) {
			return true, nil
		}
		svc := NewChapterService(chapters, ownedBookRepo(7))
		_, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content:       "text",
			Type:          "chapter",
			ChapterNumber: intptr(1),
		})
		assertConflictError(t, err)
	})

	t.Run("concurrent duplicate surfaces the storage conflict", func(t *testing.T) {
		t.Parallel()
		// The pre-check sees no duplicate, but a concurrent create commits
		// first and the unique index rejects the insert.
		chapters := noopChapterRepo()
		chapters.typeNumberExistsFn = func(context.Context, uint, models.ChapterType, *int) (bool, error) {
			return false, nil
		}
		chapters.createFn = func(context.Context, *models.Chapter, string) error {
			return models.NewConflictError("The book already has a chapter with this type and number")
		}
		svc := NewChapterService(chapters, ownedBookRepo(7))
		_, err := svc.CreateChapter(context.Background(), owner, "dawn-amelia", CreateChapterInput{
			Content:       "text",
			Type:          "chapter",
			ChapterNumber: intptr(1),
		})
		assertConflictError(t, err)
	})

	t.Run("stranger cannot add chapters", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		_, err := svc.CreateChapter(context.Background(), &models.User{ID: 8}, "dawn-amelia", CreateChapterInput{
			Content: "text",
			Type:    "prologue",
		})
		assertForbiddenError(t, err)
	})
}

func TestChapterService_UpdateChapter(t *testing.T) {
	t.Parallel()

	owner := &models.User{ID: 7}

	t.Run("slug and ordering identity survive edits", func(t *testing.T) {
		t.Parallel()
		chapters := noopChapterRepo()
		chapters.getBySlugFn = func(_ context.Context, _ uint, slug string) (*models.Chapter, error) {
			return &models.Chapter{
				ID:            5,
				Slug:          slug,
				Type:          models.ChapterTypeChapter,
				ChapterNumber: intptr(2),
				SortOrder:     1,
				Content:       "old",
			}, nil
		}
		var saved *models.Chapter
		chapters.updateFn = func(_ context.Context, ch *models.Chapter) error {
			saved = ch
			return nil
		}
		svc := NewChapterService(chapters, ownedBookRepo(7))
		ch, err := svc.UpdateChapter(context.Background(), owner, "dawn-amelia", "chapter-2", UpdateChapterInput{
			Content: strptr("rewritten"),
		})
		require.NoError(t, err)
		assert.Equal(t, "rewritten", ch.Content)
		assert.Equal(t, "chapter-2", saved.Slug)
		assert.Equal(t, intptr(2), saved.ChapterNumber)
	})
}

func TestChapterService_Comments(t *testing.T) {
	t.Parallel()

	reader := &models.User{ID: 9}

	t.Run("any authenticated user may comment", func(t *testing.T) {
		t.Parallel()
		chapters := noopChapterRepo()
		chapters.getBySlugFn = func(context.Context, uint, string) (*models.Chapter, error) {
			return &models.Chapter{ID: 5}, nil
		}
		var saved *models.ChapterComment
		chapters.createCommentFn = func(_ context.Context, c *models.ChapterComment) error {
			saved = c
			return nil
		}
		svc := NewChapterService(chapters, ownedBookRepo(7))
		_, err := svc.AddComment(context.Background(), reader, "dawn-amelia", "chapter-1", "Loved it")
		require.NoError(t, err)
		assert.Equal(t, uint(9), saved.UserID)
		assert.Equal(t, uint(5), saved.ChapterID)
	})

	t.Run("comment too long", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		_, err := svc.AddComment(context.Background(), reader, "dawn-amelia", "chapter-1", strings.Repeat("x", 501))
		assertValidationError(t, err)
	})

	t.Run("empty comment", func(t *testing.T) {
		t.Parallel()
		svc := NewChapterService(noopChapterRepo(), ownedBookRepo(7))
		_, err := svc.AddComment(context.Background(), reader, "dawn-amelia", "chapter-1", "")
		assertValidationError(t, err)
	})
}
