package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Make converts a display name into a URL-safe slug.
//
// The input is NFKD-decomposed and combining marks are dropped, so "Citroën"
// becomes "citroen". "&" is spelled out as "and", every run of characters
// outside [a-z0-9] collapses to a single hyphen, and leading/trailing hyphens
// are trimmed. Make is idempotent: Make(Make(s)) == Make(s).
func Make(value string) string {
	if value == "" {
		return ""
	}
	out := stripMarks(value)
	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, "&", " and ")
	out = nonAlnumRe.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// Fold lowercases value and drops combining marks without touching
// punctuation or spacing, so "CITROËN C4" folds to "citroen c4".
func Fold(value string) string {
	return strings.ToLower(stripMarks(value))
}

func stripMarks(value string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}
