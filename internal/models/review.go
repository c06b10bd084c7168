package models

import (
	"math"
	"time"
)

// Review is one user's score for one book. At most one review exists per
// (book, user) pair; every write triggers a rating recomputation on the book.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_reviews_book_user" json:"book_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_book_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score     int       `gorm:"not null" json:"score"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Review) TableName() string {
	return "reviews"
}

// AggregateRating derives a book's rating from its review scores:
// round(sum/count, 1), or 0.0 when no reviews exist. Exact ties at the
// hundredth round half away from zero, so a mean of 4.25 becomes 4.3.
// The value is fully recomputed on every review write rather than
// adjusted incrementally.
func AggregateRating(scores []int) float64 {
	if len(scores) == 0 {
		return 0.0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	avg := float64(sum) / float64(len(scores))
	return math.Round(avg*10) / 10
}

// ValidateScore checks the score range invariant.
func (r *Review) ValidateScore() error {
	if r.Score < 0 || r.Score > 5 {
		return NewValidationError("Review score must be between 0 and 5")
	}
	return nil
}
