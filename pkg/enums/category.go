package enums

import "fmt"

// Category names one of the product domains returned for a vehicle. The
// values double as the JSON keys of the aggregated response.
type Category string

const (
	CategoryBatteries Category = "Batteries"
	CategoryLights    Category = "Lights"
	CategoryWipers    Category = "Wipers"
	CategoryFilters   Category = "Filters"
	CategoryOil       Category = "Oil"
)

var validCategories = []Category{
	CategoryBatteries,
	CategoryLights,
	CategoryWipers,
	CategoryFilters,
	CategoryOil,
}

// Categories returns every category in response order.
func Categories() []Category {
	out := make([]Category, len(validCategories))
	copy(out, validCategories)
	return out
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Category.
func (c Category) IsValid() bool {
	for _, candidate := range validCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts raw input into a Category.
func ParseCategory(value string) (Category, error) {
	for _, candidate := range validCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category %q", value)
}
