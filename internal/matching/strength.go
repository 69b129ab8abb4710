package matching

import "fmt"

// Strength ranks how a free-text vehicle description was resolved.
// Higher values are stronger.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthFuzzy
	StrengthBrandInName
	StrengthExactName
	StrengthExactSlug
)

var strengthNames = map[Strength]string{
	StrengthNone:        "none",
	StrengthFuzzy:       "fuzzy",
	StrengthBrandInName: "brand_in_name",
	StrengthExactName:   "exact_name",
	StrengthExactSlug:   "exact_slug",
}

// String implements fmt.Stringer.
func (s Strength) String() string {
	if name, ok := strengthNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strength(%d)", int(s))
}

// AtLeast reports whether s is as strong as min.
func (s Strength) AtLeast(min Strength) bool {
	return s >= min
}

// ParseStrength converts a strategy name into a Strength.
func ParseStrength(value string) (Strength, error) {
	for strength, name := range strengthNames {
		if name == value {
			return strength, nil
		}
	}
	return StrengthNone, fmt.Errorf("invalid match strength %q", value)
}
