package models

import "time"

// Favorite marks a book as saved by a user. The (user, book) pair is
// unique; a duplicate attempt is a conflict, never a silent no-op.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_book" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_book" json:"book_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Favorite) TableName() string {
	return "favorites"
}

// FollowedAuthor records that a user follows an author (also a user).
// Self-follows are rejected at validation time.
type FollowedAuthor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follows_user_author" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follows_user_author" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (FollowedAuthor) TableName() string {
	return "followed_authors"
}

// ValidateSelfFollow rejects a follow where the user and author coincide.
func (f *FollowedAuthor) ValidateSelfFollow() error {
	if f.UserID == f.AuthorID {
		return NewValidationError("A user cannot follow themselves")
	}
	return nil
}
