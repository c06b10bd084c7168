package models

// Genre is a global, name-unique tag attached to books.
// Attachment uses get-or-create semantics so concurrent attaches of the
// same name converge on one row.
type Genre struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:30;uniqueIndex;not null" json:"name"`
	Books []*Book `gorm:"many2many:book_genres" json:"-"`
}

// TableName specifies the table name for GORM.
func (Genre) TableName() string {
	return "genres"
}

// Theme is a global, name-unique tag attached to books.
type Theme struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:30;uniqueIndex;not null" json:"name"`
	Books []*Book `gorm:"many2many:book_themes" json:"-"`
}

// TableName specifies the table name for GORM.
func (Theme) TableName() string {
	return "themes"
}
