package models

import (
	"time"

	"gorm.io/gorm"
)

// ChapterType defines the kind of chapter within a book.
type ChapterType string

const (
	// ChapterTypePrologue sorts before every numbered chapter.
	ChapterTypePrologue ChapterType = "prologue"
	// ChapterTypeChapter is a numbered body chapter.
	ChapterTypeChapter ChapterType = "chapter"
	// ChapterTypeEpilogue sorts after every numbered chapter.
	ChapterTypeEpilogue ChapterType = "epilogue"
)

// Valid reports whether the chapter type is one of the declared choices.
func (t ChapterType) Valid() bool {
	switch t {
	case ChapterTypePrologue, ChapterTypeChapter, ChapterTypeEpilogue:
		return true
	}
	return false
}

// SortOrder returns the coarse ordering bucket for the chapter type:
// prologue=0, chapter=1, epilogue=2.
func (t ChapterType) SortOrder() int {
	switch t {
	case ChapterTypePrologue:
		return 0
	case ChapterTypeEpilogue:
		return 2
	default:
		return 1
	}
}

// RequiresNumber reports whether the type must carry a chapter number.
func (t ChapterType) RequiresNumber() bool {
	return t == ChapterTypeChapter
}

// Chapter belongs to one book. Listing sorts by SortOrder, then
// ChapterNumber. Slug is unique within the book and derived from the type
// (plus number for body chapters).
type Chapter struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	BookID        uint        `gorm:"not null;index;uniqueIndex:idx_chapters_book_slug" json:"book_id"`
	Book          Book        `gorm:"foreignKey:BookID" json:"-"`
	Title         string      `gorm:"size:50" json:"title,omitempty"`
	Content       string      `gorm:"type:text;not null" json:"content"`
	Type          ChapterType `gorm:"type:varchar(10);not null" json:"type"`
	ChapterNumber *int        `json:"chapter_number,omitempty"`
	SortOrder     int         `gorm:"not null" json:"sort_order"`
	Slug          string      `gorm:"size:40;not null;uniqueIndex:idx_chapters_book_slug" json:"slug"`

	Comments []ChapterComment `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Chapter) TableName() string {
	return "chapters"
}

// ValidateNumbering checks the type/number invariant: body chapters require
// a chapter number, prologue and epilogue must not carry one.
func (c *Chapter) ValidateNumbering() error {
	if !c.Type.Valid() {
		return NewValidationError("Chapter type must be prologue, chapter or epilogue")
	}
	if c.Type.RequiresNumber() && c.ChapterNumber == nil {
		return NewValidationError("A chapter number is required for a body chapter")
	}
	if !c.Type.RequiresNumber() && c.ChapterNumber != nil {
		return NewValidationError("A prologue or epilogue must not have a chapter number")
	}
	return nil
}

// ChapterComment is a reader comment attached to one chapter.
type ChapterComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChapterID uint      `gorm:"not null;index" json:"chapter_id"`
	Chapter   Chapter   `gorm:"foreignKey:ChapterID" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (ChapterComment) TableName() string {
	return "chapter_comments"
}
