package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Size: 5}.Offset())
	assert.Equal(t, 5, Params{Page: 2, Size: 5}.Offset())
	assert.Equal(t, 40, Params{Page: 5, Size: 10}.Offset())
}

func TestNewPageNilItems(t *testing.T) {
	page := NewPage[string](nil, Params{Page: 1, Size: 5}, 0)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Size)
}
