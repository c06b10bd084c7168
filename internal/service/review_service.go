package service

import (
	"context"

	"scriptum/internal/models"
	"scriptum/internal/pagination"
	"scriptum/internal/repository"
)

// ReviewService handles reviews and keeps the book rating derived from
// them. Every write goes through a repository method that recomputes the
// rating in the same transaction.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, bookRepo: bookRepo}
}

// ReviewInput carries the fields of a review write.
type ReviewInput struct {
	Score   int
	Comment string
}

// CreateReview adds a review to a book. One review per user per book; a
// second attempt is a conflict. Authors may review their own books.
func (s *ReviewService) CreateReview(ctx context.Context, actor *models.User, bookSlug string, in ReviewInput) (*models.Review, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.GetByBookAndUser(ctx, book.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You have already reviewed this book")
	}

	review := &models.Review{
		BookID:  book.ID,
		UserID:  actor.ID,
		Score:   in.Score,
		Comment: in.Comment,
	}
	if err := review.ValidateScore(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.CreateAndRecompute(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews returns a page of a book's reviews.
func (s *ReviewService) ListReviews(ctx context.Context, bookSlug string, p pagination.Params) (pagination.Page[models.Review], error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return pagination.Page[models.Review]{}, err
	}
	reviews, total, err := s.reviewRepo.ListByBook(ctx, book.ID, p.Limit(), p.Offset())
	if err != nil {
		return pagination.Page[models.Review]{}, err
	}
	return pagination.NewPage(reviews, p, total), nil
}

// UpdateReview changes the score or comment of the caller's own review.
// The reviewed book is immutable; changing it means delete and re-review.
func (s *ReviewService) UpdateReview(ctx context.Context, actor *models.User, bookSlug string, reviewID uint, in ReviewInput) (*models.Review, error) {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return nil, err
	}
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.BookID != book.ID {
		return nil, models.NewNotFoundError("Review", reviewID)
	}
	if review.UserID != actor.ID {
		return nil, models.NewForbiddenError("You can only edit your own review")
	}

	review.Score = in.Score
	review.Comment = in.Comment
	if err := review.ValidateScore(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.UpdateAndRecompute(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes the caller's own review and pulls the book rating
// back down in the same transaction.
func (s *ReviewService) DeleteReview(ctx context.Context, actor *models.User, bookSlug string, reviewID uint) error {
	book, err := s.bookRepo.GetBySlug(ctx, bookSlug)
	if err != nil {
		return err
	}
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.BookID != book.ID {
		return models.NewNotFoundError("Review", reviewID)
	}
	if review.UserID != actor.ID {
		return models.NewForbiddenError("You can only delete your own review")
	}
	return s.reviewRepo.DeleteAndRecompute(ctx, review)
}
