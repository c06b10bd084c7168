package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateRating(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"no reviews", nil, 0.0},
		{"single score", []int{4}, 4.0},
		{"rounds to one decimal", []int{5, 4, 4}, 4.3},
		{"rounds half up", []int{4, 5}, 4.5},
		{"thirds truncate to tenths", []int{1, 2, 2}, 1.7},
		{"half ties round away from zero", []int{4, 5, 4, 4}, 4.3},
		{"all zeros stay zero", []int{0, 0}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AggregateRating(tt.scores))
		})
	}
}

func TestReviewValidateScore(t *testing.T) {
	for _, score := range []int{0, 3, 5} {
		r := &Review{Score: score}
		require.NoError(t, r.ValidateScore())
	}
	for _, score := range []int{-1, 6, 100} {
		r := &Review{Score: score}
		require.Error(t, r.ValidateScore())
	}
}
