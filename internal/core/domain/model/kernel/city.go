package kernel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cityNormalizer decomposes characters, drops combining marks (diacritics),
// and recomposes. "Medellín" and "Medellin" normalize identically.
var cityNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCity canonicalizes a destination city or zone name for matching:
// trims, lowercases, strips diacritics, and collapses internal whitespace.
// Zone matching is soft: case and accent differences never distinguish two
// zones, so every lookup key goes through this function.
//
// Example:
//
//	kernel.NormalizeCity("  Bogotá  D.C. ") // "bogota d.c."
func NormalizeCity(s string) string {
	out, _, err := transform.String(cityNormalizer, s)
	if err != nil {
		// Malformed input falls back to byte-wise handling; matching still
		// works for the ASCII subset.
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
