package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText strips diacritics and lowercases s. It is the join key between
// the municipality and customer sources, which spell the same city with
// different accents and casing. NormalizeText is idempotent.
func NormalizeText(s string) string {
	// transform.Chain keeps internal state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}
