// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a reader or author account.
// Token is an opaque bearer credential generated once at registration;
// it never rotates and is the only way the API resolves an acting user.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Pseudo     string         `gorm:"size:30;uniqueIndex;not null" json:"pseudo"`
	FirstName  string         `gorm:"size:30;not null" json:"first_name"`
	LastName   string         `gorm:"size:30;not null" json:"last_name"`
	AuthorName string         `gorm:"size:50" json:"author_name,omitempty"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	BirthDate  time.Time      `json:"birth_date"`
	Token      string         `gorm:"size:36;uniqueIndex;not null" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Books []Book `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"books,omitempty"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// DisplayName returns the public author name, falling back to the pseudo.
func (u *User) DisplayName() string {
	if u.AuthorName != "" {
		return u.AuthorName
	}
	return u.Pseudo
}
