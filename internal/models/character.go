package models

import (
	"time"

	"scriptum/internal/zodiac"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CharacterRole defines a character's narrative role.
type CharacterRole string

const (
	CharacterRoleProtagonist CharacterRole = "protagonist"
	CharacterRoleAntagonist  CharacterRole = "antagonist"
	CharacterRoleAlly        CharacterRole = "ally"
	CharacterRoleAdversary   CharacterRole = "adversary"
	CharacterRoleNeutral     CharacterRole = "neutral"
)

// Valid reports whether the role is one of the declared choices.
func (r CharacterRole) Valid() bool {
	switch r {
	case CharacterRoleProtagonist, CharacterRoleAntagonist, CharacterRoleAlly,
		CharacterRoleAdversary, CharacterRoleNeutral:
		return true
	}
	return false
}

// CharacterSex defines a character's declared sex.
type CharacterSex string

const (
	CharacterSexMale   CharacterSex = "male"
	CharacterSexFemale CharacterSex = "female"
	CharacterSexOther  CharacterSex = "other"
)

// Valid reports whether the sex is one of the declared choices.
func (s CharacterSex) Valid() bool {
	switch s {
	case CharacterSexMale, CharacterSexFemale, CharacterSexOther:
		return true
	}
	return false
}

// CharacterRelation defines a character's relationship status.
type CharacterRelation string

const (
	CharacterRelationSingle   CharacterRelation = "single"
	CharacterRelationCouple   CharacterRelation = "in a couple"
	CharacterRelationEngaged  CharacterRelation = "engaged"
	CharacterRelationMarried  CharacterRelation = "married"
	CharacterRelationDivorced CharacterRelation = "divorced"
	CharacterRelationWidowed  CharacterRelation = "widowed"
)

// Valid reports whether the relation is one of the declared choices.
func (r CharacterRelation) Valid() bool {
	switch r {
	case CharacterRelationSingle, CharacterRelationCouple, CharacterRelationEngaged,
		CharacterRelationMarried, CharacterRelationDivorced, CharacterRelationWidowed:
		return true
	}
	return false
}

// MaxCharacterTraits caps the trait list length. Application-level soft
// limit, not a storage constraint.
const MaxCharacterTraits = 10

// Character is a worldbuilding entity owned by one book. Name and slug are
// unique within the book. Zodiac is derived from the day/month of birth and
// never persisted.
type Character struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	BookID     uint          `gorm:"not null;index;uniqueIndex:idx_characters_book_name;uniqueIndex:idx_characters_book_slug" json:"book_id"`
	Book       Book          `gorm:"foreignKey:BookID" json:"-"`
	Name       string        `gorm:"size:50;not null;uniqueIndex:idx_characters_book_name" json:"name"`
	Slug       string        `gorm:"size:80;not null;uniqueIndex:idx_characters_book_slug" json:"slug"`
	Surname    string        `gorm:"size:50" json:"surname,omitempty"`
	Role       CharacterRole `gorm:"type:varchar(20);not null" json:"role"`
	Age        int           `gorm:"not null" json:"age"`
	Sex        CharacterSex  `gorm:"type:varchar(10);not null" json:"sex"`
	Height     string        `gorm:"size:10" json:"height,omitempty"`
	Background string        `gorm:"size:1000" json:"background,omitempty"`
	Species    string        `gorm:"size:30;not null;default:'Human'" json:"species"`
	HasRace    bool          `gorm:"not null;default:false" json:"has_race"`
	Race       string        `gorm:"size:30" json:"race,omitempty"`
	ImageURL   string        `json:"image_url,omitempty"`

	// Schema-less attribute bags; no compile-time shape guarantee.
	Traits    datatypes.JSONSlice[string] `json:"traits,omitempty"`
	Study     datatypes.JSONMap           `json:"study,omitempty"`
	Job       datatypes.JSONMap           `json:"job,omitempty"`
	Family    datatypes.JSONMap           `json:"family,omitempty"`
	Addiction datatypes.JSONMap           `json:"addiction,omitempty"`

	DayBirth   *int              `json:"day_birth,omitempty"`
	MonthBirth *int              `json:"month_birth,omitempty"`
	Zodiac     string            `gorm:"-" json:"zodiac_sign,omitempty"`
	Hometown   string            `gorm:"size:30" json:"hometown,omitempty"`
	Language   string            `gorm:"size:30" json:"language,omitempty"`
	Relation   CharacterRelation `gorm:"type:varchar(20)" json:"relation,omitempty"`
	Religion   string            `gorm:"size:30" json:"religion,omitempty"`
	Fear       string            `gorm:"size:30" json:"fear,omitempty"`
	Talent     string            `gorm:"size:30" json:"talent,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Character) TableName() string {
	return "characters"
}

// AfterFind populates the derived zodiac sign on every load.
func (ch *Character) AfterFind(_ *gorm.DB) error {
	ch.DeriveZodiac()
	return nil
}

// DeriveZodiac recomputes the zodiac sign from the day/month of birth.
// The sign is empty when either component is absent.
func (ch *Character) DeriveZodiac() {
	ch.Zodiac = ""
	if ch.DayBirth != nil && ch.MonthBirth != nil {
		ch.Zodiac = zodiac.Sign(*ch.DayBirth, *ch.MonthBirth)
	}
}

// Validate checks the character invariants before persistence: the
// has_race/race equivalence, birth component ranges and the trait cap.
func (ch *Character) Validate() error {
	if !ch.Role.Valid() {
		return NewValidationError("Character role is not a recognized value")
	}
	if !ch.Sex.Valid() {
		return NewValidationError("Character sex is not a recognized value")
	}
	if ch.Relation != "" && !ch.Relation.Valid() {
		return NewValidationError("Character relation is not a recognized value")
	}
	if ch.HasRace && ch.Race == "" {
		return NewValidationError("A race name is required when has_race is set")
	}
	if !ch.HasRace && ch.Race != "" {
		return NewValidationError("A race name must not be set when has_race is false")
	}
	if len(ch.Traits) > MaxCharacterTraits {
		return NewValidationError("A character cannot have more than 10 traits")
	}
	if ch.DayBirth != nil && (*ch.DayBirth < 1 || *ch.DayBirth > 31) {
		return NewValidationError("Day of birth must be between 1 and 31")
	}
	if ch.MonthBirth != nil && (*ch.MonthBirth < 1 || *ch.MonthBirth > 12) {
		return NewValidationError("Month of birth must be between 1 and 12")
	}
	return nil
}
