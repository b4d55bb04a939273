package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe   = regexp.MustCompile(`[^\w\s-]`)
	separatorRe = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts s into a URL slug: accents are folded to ASCII,
// everything is lower-cased, characters other than letters, digits,
// underscores, hyphens and spaces are dropped, and runs of spaces or
// hyphens become a single hyphen.
//
// Example: "Circular Autumn: 2025!" -> "circular-autumn-2025"
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	// Drop whatever could not be folded to ASCII
	var b strings.Builder
	for _, r := range folded {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	slug := nonWordRe.ReplaceAllString(strings.ToLower(b.String()), "")
	slug = separatorRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-_")
}
