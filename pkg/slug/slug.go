package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug. Accents are stripped by decomposing
// to NFD and dropping combining marks, so "Élan Vital" becomes "elan-vital".
//
// Examples:
//   - "Marvel Comics" → "marvel-comics"
//   - "Science Fiction" → "science-fiction"
//   - "2000 AD!" → "2000-ad"
func Generate(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	s := strings.ToLower(strings.TrimSpace(folded))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
