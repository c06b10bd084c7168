package service

import (
	"context"
	"errors"
	"testing"

	"scriptum/internal/models"
	"scriptum/internal/repository"
)

// Function-field stubs for every repository the services depend on. The
// noop constructors return permissive defaults; tests override only the
// calls they care about.

type userRepoStub struct {
	getByIDFn     func(context.Context, uint) (*models.User, error)
	getByPseudoFn func(context.Context, string) (*models.User, error)
	getByEmailFn  func(context.Context, string) (*models.User, error)
	getByTokenFn  func(context.Context, string) (*models.User, error)
	createFn      func(context.Context, *models.User) error
	updateFn      func(context.Context, *models.User) error
	deleteFn      func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	return s.getByPseudoFn(ctx, pseudo)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return s.getByTokenFn(ctx, token)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:     func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByPseudoFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByEmailFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		getByTokenFn:  func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		createFn:      func(context.Context, *models.User) error { return nil },
		updateFn:      func(context.Context, *models.User) error { return nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

type bookRepoStub struct {
	createFn    func(context.Context, *models.Book, string) error
	getBySlugFn func(context.Context, string) (*models.Book, error)
	listFn      func(context.Context, repository.BookFilter, int, int) ([]models.Book, int64, error)
	updateFn    func(context.Context, *models.Book) error
	deleteFn    func(context.Context, *models.Book) error
}

func (s *bookRepoStub) Create(ctx context.Context, book *models.Book, slugBase string) error {
	return s.createFn(ctx, book, slugBase)
}
func (s *bookRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Book, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *bookRepoStub) List(ctx context.Context, filter repository.BookFilter, limit, offset int) ([]models.Book, int64, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *bookRepoStub) Update(ctx context.Context, book *models.Book) error {
	return s.updateFn(ctx, book)
}
func (s *bookRepoStub) Delete(ctx context.Context, book *models.Book) error {
	return s.deleteFn(ctx, book)
}

func noopBookRepo() *bookRepoStub {
	return &bookRepoStub{
		createFn:    func(context.Context, *models.Book, string) error { return nil },
		getBySlugFn: func(context.Context, string) (*models.Book, error) { return &models.Book{}, nil },
		listFn: func(context.Context, repository.BookFilter, int, int) ([]models.Book, int64, error) {
			return nil, 0, nil
		},
		updateFn: func(context.Context, *models.Book) error { return nil },
		deleteFn: func(context.Context, *models.Book) error { return nil },
	}
}

type tagRepoStub struct {
	getOrCreateGenresFn func(context.Context, []string) ([]*models.Genre, error)
	getOrCreateThemesFn func(context.Context, []string) ([]*models.Theme, error)
}

func (s *tagRepoStub) GetOrCreateGenres(ctx context.Context, names []string) ([]*models.Genre, error) {
	return s.getOrCreateGenresFn(ctx, names)
}
func (s *tagRepoStub) GetOrCreateThemes(ctx context.Context, names []string) ([]*models.Theme, error) {
	return s.getOrCreateThemesFn(ctx, names)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		getOrCreateGenresFn: func(_ context.Context, names []string) ([]*models.Genre, error) {
			genres := make([]*models.Genre, 0, len(names))
			for i, name := range names {
				genres = append(genres, &models.Genre{ID: uint(i + 1), Name: name})
			}
			return genres, nil
		},
		getOrCreateThemesFn: func(_ context.Context, names []string) ([]*models.Theme, error) {
			themes := make([]*models.Theme, 0, len(names))
			for i, name := range names {
				themes = append(themes, &models.Theme{ID: uint(i + 1), Name: name})
			}
			return themes, nil
		},
	}
}

type chapterRepoStub struct {
	createFn           func(context.Context, *models.Chapter, string) error
	getBySlugFn        func(context.Context, uint, string) (*models.Chapter, error)
	listByBookFn       func(context.Context, uint) ([]models.Chapter, error)
	typeNumberExistsFn func(context.Context, uint, models.ChapterType, *int) (bool, error)
	updateFn           func(context.Context, *models.Chapter) error
	deleteFn           func(context.Context, *models.Chapter) error
	createCommentFn    func(context.Context, *models.ChapterComment) error
	listCommentsFn     func(context.Context, uint, int, int) ([]models.ChapterComment, int64, error)
}

func (s *chapterRepoStub) Create(ctx context.Context, chapter *models.Chapter, slugBase string) error {
	return s.createFn(ctx, chapter, slugBase)
}
func (s *chapterRepoStub) GetBySlug(ctx context.Context, bookID uint, slug string) (*models.Chapter, error) {
	return s.getBySlugFn(ctx, bookID, slug)
}
func (s *chapterRepoStub) ListByBook(ctx context.Context, bookID uint) ([]models.Chapter, error) {
	return s.listByBookFn(ctx, bookID)
}
func (s *chapterRepoStub) TypeNumberExists(ctx context.Context, bookID uint, chapterType models.ChapterType, number *int) (bool, error) {
	return s.typeNumberExistsFn(ctx, bookID, chapterType, number)
}
func (s *chapterRepoStub) Update(ctx context.Context, chapter *models.Chapter) error {
	return s.updateFn(ctx, chapter)
}
func (s *chapterRepoStub) Delete(ctx context.Context, chapter *models.Chapter) error {
	return s.deleteFn(ctx, chapter)
}
func (s *chapterRepoStub) CreateComment(ctx context.Context, comment *models.ChapterComment) error {
	return s.createCommentFn(ctx, comment)
}
func (s *chapterRepoStub) ListComments(ctx context.Context, chapterID uint, limit, offset int) ([]models.ChapterComment, int64, error) {
	return s.listCommentsFn(ctx, chapterID, limit, offset)
}

func noopChapterRepo() *chapterRepoStub {
	return &chapterRepoStub{
		createFn:    func(context.Context, *models.Chapter, string) error { return nil },
		getBySlugFn: func(context.Context, uint, string) (*models.Chapter, error) { return &models.Chapter{}, nil },
		listByBookFn: func(context.Context, uint) ([]models.Chapter, error) {
			return nil, nil
		},
		typeNumberExistsFn: func(context.Context, uint, models.ChapterType, *int) (bool, error) {
			return false, nil
		},
		updateFn:        func(context.Context, *models.Chapter) error { return nil },
		deleteFn:        func(context.Context, *models.Chapter) error { return nil },
		createCommentFn: func(context.Context, *models.ChapterComment) error { return nil },
		listCommentsFn: func(context.Context, uint, int, int) ([]models.ChapterComment, int64, error) {
			return nil, 0, nil
		},
	}
}

type characterRepoStub struct {
	createFn     func(context.Context, *models.Character) error
	getBySlugFn  func(context.Context, uint, string) (*models.Character, error)
	listByBookFn func(context.Context, uint) ([]models.Character, error)
	nameExistsFn func(context.Context, uint, string) (bool, error)
	updateFn     func(context.Context, *models.Character) error
	deleteFn     func(context.Context, *models.Character) error
}

func (s *characterRepoStub) Create(ctx context.Context, character *models.Character) error {
	return s.createFn(ctx, character)
}
func (s *characterRepoStub) GetBySlug(ctx context.Context, bookID uint, slug string) (*models.Character, error) {
	return s.getBySlugFn(ctx, bookID, slug)
}
func (s *characterRepoStub) ListByBook(ctx context.Context, bookID uint) ([]models.Character, error) {
	return s.listByBookFn(ctx, bookID)
}
func (s *characterRepoStub) NameExists(ctx context.Context, bookID uint, name string) (bool, error) {
	return s.nameExistsFn(ctx, bookID, name)
}
func (s *characterRepoStub) Update(ctx context.Context, character *models.Character) error {
	return s.updateFn(ctx, character)
}
func (s *characterRepoStub) Delete(ctx context.Context, character *models.Character) error {
	return s.deleteFn(ctx, character)
}

func noopCharacterRepo() *characterRepoStub {
	return &characterRepoStub{
		createFn:     func(context.Context, *models.Character) error { return nil },
		getBySlugFn:  func(context.Context, uint, string) (*models.Character, error) { return &models.Character{}, nil },
		listByBookFn: func(context.Context, uint) ([]models.Character, error) { return nil, nil },
		nameExistsFn: func(context.Context, uint, string) (bool, error) { return false, nil },
		updateFn:     func(context.Context, *models.Character) error { return nil },
		deleteFn:     func(context.Context, *models.Character) error { return nil },
	}
}

type placeRepoStub struct {
	createFn     func(context.Context, *models.Place) error
	getByIDFn    func(context.Context, uint, uint) (*models.Place, error)
	listByBookFn func(context.Context, uint) ([]models.Place, error)
	updateFn     func(context.Context, *models.Place) error
	deleteFn     func(context.Context, *models.Place) error
}

func (s *placeRepoStub) Create(ctx context.Context, place *models.Place) error {
	return s.createFn(ctx, place)
}
func (s *placeRepoStub) GetByID(ctx context.Context, bookID, id uint) (*models.Place, error) {
	return s.getByIDFn(ctx, bookID, id)
}
func (s *placeRepoStub) ListByBook(ctx context.Context, bookID uint) ([]models.Place, error) {
	return s.listByBookFn(ctx, bookID)
}
func (s *placeRepoStub) Update(ctx context.Context, place *models.Place) error {
	return s.updateFn(ctx, place)
}
func (s *placeRepoStub) Delete(ctx context.Context, place *models.Place) error {
	return s.deleteFn(ctx, place)
}

func noopPlaceRepo() *placeRepoStub {
	return &placeRepoStub{
		createFn:     func(context.Context, *models.Place) error { return nil },
		getByIDFn:    func(context.Context, uint, uint) (*models.Place, error) { return &models.Place{}, nil },
		listByBookFn: func(context.Context, uint) ([]models.Place, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Place) error { return nil },
		deleteFn:     func(context.Context, *models.Place) error { return nil },
	}
}

type creatureRepoStub struct {
	createFn     func(context.Context, *models.Creature) error
	getByIDFn    func(context.Context, uint, uint) (*models.Creature, error)
	listByBookFn func(context.Context, uint) ([]models.Creature, error)
	updateFn     func(context.Context, *models.Creature) error
	deleteFn     func(context.Context, *models.Creature) error
}

func (s *creatureRepoStub) Create(ctx context.Context, creature *models.Creature) error {
	return s.createFn(ctx, creature)
}
func (s *creatureRepoStub) GetByID(ctx context.Context, bookID, id uint) (*models.Creature, error) {
	return s.getByIDFn(ctx, bookID, id)
}
func (s *creatureRepoStub) ListByBook(ctx context.Context, bookID uint) ([]models.Creature, error) {
	return s.listByBookFn(ctx, bookID)
}
func (s *creatureRepoStub) Update(ctx context.Context, creature *models.Creature) error {
	return s.updateFn(ctx, creature)
}
func (s *creatureRepoStub) Delete(ctx context.Context, creature *models.Creature) error {
	return s.deleteFn(ctx, creature)
}

func noopCreatureRepo() *creatureRepoStub {
	return &creatureRepoStub{
		createFn:     func(context.Context, *models.Creature) error { return nil },
		getByIDFn:    func(context.Context, uint, uint) (*models.Creature, error) { return &models.Creature{}, nil },
		listByBookFn: func(context.Context, uint) ([]models.Creature, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Creature) error { return nil },
		deleteFn:     func(context.Context, *models.Creature) error { return nil },
	}
}

type reviewRepoStub struct {
	getByIDFn            func(context.Context, uint) (*models.Review, error)
	getByBookAndUserFn   func(context.Context, uint, uint) (*models.Review, error)
	listByBookFn         func(context.Context, uint, int, int) ([]models.Review, int64, error)
	createAndRecomputeFn func(context.Context, *models.Review) error
	updateAndRecomputeFn func(context.Context, *models.Review) error
	deleteAndRecomputeFn func(context.Context, *models.Review) error
}

func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) GetByBookAndUser(ctx context.Context, bookID, userID uint) (*models.Review, error) {
	return s.getByBookAndUserFn(ctx, bookID, userID)
}
func (s *reviewRepoStub) ListByBook(ctx context.Context, bookID uint, limit, offset int) ([]models.Review, int64, error) {
	return s.listByBookFn(ctx, bookID, limit, offset)
}
func (s *reviewRepoStub) CreateAndRecompute(ctx context.Context, review *models.Review) error {
	return s.createAndRecomputeFn(ctx, review)
}
func (s *reviewRepoStub) UpdateAndRecompute(ctx context.Context, review *models.Review) error {
	return s.updateAndRecomputeFn(ctx, review)
}
func (s *reviewRepoStub) DeleteAndRecompute(ctx context.Context, review *models.Review) error {
	return s.deleteAndRecomputeFn(ctx, review)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.Review, error) { return &models.Review{}, nil },
		getByBookAndUserFn: func(context.Context, uint, uint) (*models.Review, error) { return nil, nil },
		listByBookFn: func(context.Context, uint, int, int) ([]models.Review, int64, error) {
			return nil, 0, nil
		},
		createAndRecomputeFn: func(context.Context, *models.Review) error { return nil },
		updateAndRecomputeFn: func(context.Context, *models.Review) error { return nil },
		deleteAndRecomputeFn: func(context.Context, *models.Review) error { return nil },
	}
}

type favoriteRepoStub struct {
	createFn     func(context.Context, *models.Favorite) error
	deleteFn     func(context.Context, uint, uint) error
	listByUserFn func(context.Context, uint, int, int) ([]models.Favorite, int64, error)
}

func (s *favoriteRepoStub) Create(ctx context.Context, favorite *models.Favorite) error {
	return s.createFn(ctx, favorite)
}
func (s *favoriteRepoStub) Delete(ctx context.Context, userID, bookID uint) error {
	return s.deleteFn(ctx, userID, bookID)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Favorite, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		createFn: func(context.Context, *models.Favorite) error { return nil },
		deleteFn: func(context.Context, uint, uint) error { return nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.Favorite, int64, error) {
			return nil, 0, nil
		},
	}
}

type followRepoStub struct {
	createFn     func(context.Context, *models.FollowedAuthor) error
	deleteFn     func(context.Context, uint, uint) error
	listByUserFn func(context.Context, uint, int, int) ([]models.FollowedAuthor, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.FollowedAuthor) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, userID, authorID uint) error {
	return s.deleteFn(ctx, userID, authorID)
}
func (s *followRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.FollowedAuthor, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn: func(context.Context, *models.FollowedAuthor) error { return nil },
		deleteFn: func(context.Context, uint, uint) error { return nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.FollowedAuthor, int64, error) {
			return nil, 0, nil
		},
	}
}

// assertAppError asserts that err carries the given application error code.
func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != code {
		t.Fatalf("expected %s app error, got %#v", code, err)
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "VALIDATION_ERROR")
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "CONFLICT")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "FORBIDDEN")
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, "NOT_FOUND")
}
