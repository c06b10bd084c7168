package models

import (
	"time"

	"gorm.io/gorm"
)

// PublicType defines the intended audience of a book.
type PublicType string

const (
	// PublicTypeGeneral indicates a book suitable for a general audience.
	PublicTypeGeneral PublicType = "general"
	// PublicTypeYoungAdult indicates a book aimed at young-adult readers.
	PublicTypeYoungAdult PublicType = "young-adult"
	// PublicTypeAdult indicates a book aimed at adult readers.
	PublicTypeAdult PublicType = "adult"
)

// Valid reports whether the public type is one of the declared choices.
func (p PublicType) Valid() bool {
	switch p {
	case PublicTypeGeneral, PublicTypeYoungAdult, PublicTypeAdult:
		return true
	}
	return false
}

// DefaultBookState is the lifecycle state assigned to new books.
const DefaultBookState = "in progress"

const (
	// MaxGenresPerBook caps the number of genres attached to one book.
	MaxGenresPerBook = 5
	// MaxThemesPerBook caps the number of themes attached to one book.
	MaxThemesPerBook = 10
)

// Book represents a published work owned by exactly one author.
// Slug is derived once from the title at creation and never regenerated;
// collisions take a -N suffix.
// Rating is derived from the book's reviews and must not be set by clients.
type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:50;not null" json:"title"`
	Slug        string     `gorm:"size:80;uniqueIndex;not null" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	ReleaseDate time.Time  `gorm:"autoCreateTime" json:"release_date"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PublicType  PublicType `gorm:"type:varchar(20);not null" json:"public_type"`
	State       string     `gorm:"size:20;not null;default:'in progress'" json:"state"`
	IsSaga      bool       `gorm:"not null;default:false" json:"is_saga"`
	TomeName    *string    `gorm:"size:30" json:"tome_name,omitempty"`
	TomeNumber  *int       `json:"tome_number,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	// Rating is recomputed from reviews on every review write; see review service.
	Rating float64 `gorm:"not null;default:0" json:"rating"`

	Genres []*Genre `gorm:"many2many:book_genres" json:"genres,omitempty"`
	Themes []*Theme `gorm:"many2many:book_themes" json:"themes,omitempty"`

	Chapters   []Chapter   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	Characters []Character `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"characters,omitempty"`
	Places     []Place     `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"places,omitempty"`
	Creatures  []Creature  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"creatures,omitempty"`
	Reviews    []Review    `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Book) TableName() string {
	return "books"
}

// ValidateSaga checks the saga invariant: tome name and number are both
// present for a saga and both absent otherwise.
func (b *Book) ValidateSaga() error {
	hasName := b.TomeName != nil && *b.TomeName != ""
	hasNumber := b.TomeNumber != nil
	if b.IsSaga && (!hasName || !hasNumber) {
		return NewValidationError("Tome name and tome number are required for a saga")
	}
	if !b.IsSaga && (hasName || hasNumber) {
		return NewValidationError("Tome name and tome number must be empty for a non-saga book")
	}
	return nil
}
