package matching

import "strings"

// Similarity scores two slugs by containment: len(shorter)/len(longer) when
// the longer contains the shorter, 0 otherwise.
func Similarity(a, b string) float64 {
	overlap := Overlap(a, b)
	if overlap == 0 {
		return 0
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(overlap) / float64(longer)
}

// Overlap returns the length of the shorter slug when the longer contains it.
func Overlap(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if !strings.Contains(longer, shorter) {
		return 0
	}
	return len(shorter)
}
