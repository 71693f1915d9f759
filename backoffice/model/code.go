package model

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonCodeChars = regexp.MustCompile(`[^a-z0-9\s]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// ProductCodeFromName derives a lowercase, hyphenated code from a product name.
// Diacritics are folded to their base letters ("Áo thun đỏ" becomes "ao-thun-do").
func ProductCodeFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(name),
	)
	if err != nil {
		folded = strings.ToLower(name)
	}
	folded = strings.NewReplacer("đ", "d", "Đ", "d").Replace(folded)

	code := nonCodeChars.ReplaceAllString(folded, "")
	code = spaceRuns.ReplaceAllString(strings.TrimSpace(code), "-")
	code = hyphenRuns.ReplaceAllString(code, "-")
	return strings.Trim(code, "-")
}

// PlaceholderCode returns a unique code for a record that has none yet.
func PlaceholderCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
