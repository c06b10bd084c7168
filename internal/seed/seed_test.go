package seed

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func TestTruncated(t *testing.T) {
	if got := truncated("short", 30); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	long := "one two three four five six seven"
	got := truncated(long, 20)
	if len(got) > 20 {
		t.Fatalf("truncated exceeded the limit: %q", got)
	}
	if strings.HasSuffix(got, " ") {
		t.Fatalf("truncated left a trailing space: %q", got)
	}
}

func TestTruncatedKeepsGeneratedTitlesInColumn(t *testing.T) {
	gofakeit.Seed(42)
	for i := 0; i < 50; i++ {
		title := truncated(gofakeit.BookTitle(), 50)
		if title == "" || len(title) > 50 {
			t.Fatalf("title out of bounds: %q", title)
		}
	}
}

func TestDistinct(t *testing.T) {
	gofakeit.Seed(42)
	names := distinct(5, gofakeit.FirstName)
	if len(names) != 5 {
		t.Fatalf("expected 5 names, got %d", len(names))
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Fatalf("duplicate value %q", n)
		}
		seen[n] = true
	}

	// A generator with a single value cannot satisfy the request; distinct
	// must still terminate.
	one := distinct(3, func() string { return "only" })
	if len(one) != 1 {
		t.Fatalf("expected a single value from a constant generator, got %v", one)
	}
}

func TestCapitalized(t *testing.T) {
	if got := capitalized("wolf"); got != "Wolf" {
		t.Fatalf("got %q", got)
	}
	if got := capitalized(""); got != "" {
		t.Fatalf("empty input must stay empty, got %q", got)
	}
}
