package repository

import (
	"context"
	"strings"

	"scriptum/internal/models"

	"gorm.io/gorm"
)

// TagRepository implements get-or-create semantics for the global genre and
// theme tags. Attaching a name that already exists returns the existing row.
type TagRepository interface {
	GetOrCreateGenres(ctx context.Context, names []string) ([]*models.Genre, error)
	GetOrCreateThemes(ctx context.Context, names []string) ([]*models.Theme, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetOrCreateGenres(ctx context.Context, names []string) ([]*models.Genre, error) {
	genres := make([]*models.Genre, 0, len(names))
	for _, name := range dedupeNames(names) {
		var genre models.Genre
		err := r.db.WithContext(ctx).
			Where(models.Genre{Name: name}).
			FirstOrCreate(&genre).Error
		if err != nil {
			if isUniqueConstraintError(err) {
				// Concurrent attach created the row first; read it back.
				if err := r.db.WithContext(ctx).Where("name = ?", name).First(&genre).Error; err != nil {
					return nil, models.NewInternalError(err)
				}
			} else {
				return nil, models.NewInternalError(err)
			}
		}
		genres = append(genres, &genre)
	}
	return genres, nil
}

func (r *tagRepository) GetOrCreateThemes(ctx context.Context, names []string) ([]*models.Theme, error) {
	themes := make([]*models.Theme, 0, len(names))
	for _, name := range dedupeNames(names) {
		var theme models.Theme
		err := r.db.WithContext(ctx).
			Where(models.Theme{Name: name}).
			FirstOrCreate(&theme).Error
		if err != nil {
			if isUniqueConstraintError(err) {
				if err := r.db.WithContext(ctx).Where("name = ?", name).First(&theme).Error; err != nil {
					return nil, models.NewInternalError(err)
				}
			} else {
				return nil, models.NewInternalError(err)
			}
		}
		themes = append(themes, &theme)
	}
	return themes, nil
}

// dedupeNames trims, drops empties and removes duplicates, preserving order.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
