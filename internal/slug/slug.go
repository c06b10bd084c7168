// Package slug derives URL-safe unique identifiers from human text.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// diacritics maps common accented runes to their ASCII base. Covers the
// Latin-1 range, which is what titles and names on the platform use.
var diacritics = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a',
	'ç': 'c',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ñ': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ý': 'y', 'ÿ': 'y',
	'œ': 'o', 'æ': 'a',
}

// Make normalizes text into a lowercase, ASCII-hyphenated slug. Runs of
// non-alphanumeric characters collapse into a single hyphen; leading and
// trailing hyphens are stripped.
func Make(text string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(text) {
		if mapped, ok := diacritics[r]; ok {
			r = mapped
		}
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Unique returns the first unused slug within a scope, starting from the
// normalized base and appending -1, -2, ... on collision. The exists
// callback reports whether a candidate is already taken in the scope.
// Callers must run the check and the following insert inside one
// transaction; the storage unique index is the backstop for races.
func Unique(base string, exists func(candidate string) (bool, error)) (string, error) {
	candidate := Make(base)
	if candidate == "" {
		candidate = "untitled"
	}
	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	for i := 1; ; i++ {
		next := fmt.Sprintf("%s-%d", candidate, i)
		taken, err := exists(next)
		if err != nil {
			return "", err
		}
		if !taken {
			return next, nil
		}
	}
}
