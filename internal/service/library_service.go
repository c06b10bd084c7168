package service

import (
	"context"

	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/repository"
)

// LibraryService handles a reader's personal library: favorited books and
// followed authors.
type LibraryService struct {
	favoriteRepo repository.FavoriteRepository
	followRepo   repository.FollowRepository
	bookRepo     repository.BookRepository
	userRepo     repository.UserRepository
}

// NewLibraryService returns a new LibraryService.
func NewLibraryService(favoriteRepo repository.FavoriteRepository, followRepo repository.FollowRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository) *LibraryService {
	return &LibraryService{
		favoriteRepo: favoriteRepo,
		followRepo:   followRepo,
		bookRepo:     bookRepo,
		userRepo:     userRepo,
	}
}

// AddFavorite marks a book as a favorite of the caller. Favoriting the same
// book twice is a conflict.
func (s *LibraryService) AddFavorite(ctx context.Context, actor *models.User, bookSlug string) (*models.Favorite, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	favorite := &models.Favorite{
		UserID: actor.ID,
		BookID: book.ID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

// RemoveFavorite drops a book from the caller's favorites.
func (s *LibraryService) RemoveFavorite(ctx context.Context, actor *models.User, bookSlug string) error {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return err
	}
	return s.favoriteRepo.Delete(ctx, actor.ID, book.ID)
}

// ListFavorites returns a page of the caller's favorited books.
func (s *LibraryService) ListFavorites(ctx context.Context, actor *models.User, p pagination.Params) (pagination.Page[models.Favorite], error) {
	favorites, total, err := s.favoriteRepo.ListByUser(ctx, actor.ID, p.Limit(), p.Offset())
	if err != nil {
		return pagination.Page[models.Favorite]{}, err
	}
	return pagination.NewPage(favorites, p, total), nil
}

// FollowAuthor subscribes the caller to another author. Following yourself
// is rejected; following the same author twice is a conflict.
func (s *LibraryService) FollowAuthor(ctx context.Context, actor *models.User, pseudo string) (*models.FollowedAuthor, error) {
	author, err := s.userRepo.GetByPseudo(ctx, pseudo)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("Author", pseudo)
	}
	follow := &models.FollowedAuthor{
		UserID:   actor.ID,
		AuthorID: author.ID,
	}
	if err := follow.ValidateSelfFollow(); err != nil {
		return nil, err
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// UnfollowAuthor drops the caller's subscription to an author.
func (s *LibraryService) UnfollowAuthor(ctx context.Context, actor *models.User, pseudo string) error {
	author, err := s.userRepo.GetByPseudo(ctx, pseudo)
	if err != nil {
		return err
	}
	if author == nil {
		return models.NewNotFoundError("Author", pseudo)
	}
	return s.followRepo.Delete(ctx, actor.ID, author.ID)
}

// ListFollowed returns a page of the authors the caller follows.
func (s *LibraryService) ListFollowed(ctx context.Context, actor *models.User, p pagination.Params) (pagination.Page[models.FollowedAuthor], error) {
	follows, total, err := s.followRepo.ListByUser(ctx, actor.ID, p.Limit(), p.Offset())
	if err != nil {
		return pagination.Page[models.FollowedAuthor]{}, err
	}
	return pagination.NewPage(follows, p, total), nil
}
