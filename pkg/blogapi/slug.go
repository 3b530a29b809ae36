package blogapi

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives a URL-safe slug from a title or name. Vietnamese "đ" folds
// to "d", combining diacritics are stripped, anything outside [a-z0-9 -] is
// dropped, and whitespace runs become single hyphens. Slugs are derived once
// at creation time and are immutable afterwards.
func Slugify(title string) string {
	lowered := strings.ToLower(title)
	lowered = strings.ReplaceAll(lowered, "đ", "d")

	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(stripper, lowered)
	if err != nil {
		folded = lowered
	}

	var builder strings.Builder

	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			builder.WriteRune(r)
		case unicode.IsSpace(r):
			builder.WriteRune(' ')
		}
	}

	trimmed := strings.TrimSpace(builder.String())

	return strings.Join(strings.Fields(trimmed), "-")
}
