// Package pagination implements the page/size offset paginator used by all
// listing endpoints.
package pagination

import "github.com/gofiber/fiber/v2"

const (
	// DefaultSize is the number of items per page when none is requested.
	DefaultSize = 5
	// MaxSize caps the requested page size.
	MaxSize = 100
)

// Params holds a normalized page request.
type Params struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// FromRequest reads ?page= and ?size= query parameters, clamping them into
// valid ranges.
func FromRequest(c *fiber.Ctx) Params {
	p := Params{
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", DefaultSize),
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Limit returns the query limit.
func (p Params) Limit() int {
	return p.Size
}

// Offset returns the query offset for the requested page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Size
}

// Page wraps a result slice with its paging metadata.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

// NewPage builds a response page. A nil items slice serializes as [] rather
// than null.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Page:  params.Page,
		Size:  params.Size,
		Total: total,
	}
}
