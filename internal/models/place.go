package models

import (
	"time"

	"gorm.io/gorm"
)

// Place is a worldbuilding location owned by one book. Name is unique
// within the book.
type Place struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BookID    uint           `gorm:"not null;index;uniqueIndex:idx_places_book_name" json:"book_id"`
	Book      Book           `gorm:"foreignKey:BookID" json:"-"`
	Name      string         `gorm:"size:30;not null;uniqueIndex:idx_places_book_name" json:"name"`
	Content   string         `gorm:"size:1000" json:"content"`
	ImageURL  string         `json:"image_url,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Place) TableName() string {
	return "places"
}
