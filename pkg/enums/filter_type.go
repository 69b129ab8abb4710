package enums

import (
	"fmt"
	"strings"
)

// FilterType enumerates the filter families sold in the catalog.
type FilterType string

const (
	FilterTypeOil    FilterType = "oil"
	FilterTypeAir    FilterType = "air"
	FilterTypeDiesel FilterType = "diesel"
	FilterTypeCabin  FilterType = "cabin"
)

var validFilterTypes = []FilterType{
	FilterTypeOil,
	FilterTypeAir,
	FilterTypeDiesel,
	FilterTypeCabin,
}

// FilterTypes returns every filter type in catalog order.
func FilterTypes() []FilterType {
	out := make([]FilterType, len(validFilterTypes))
	copy(out, validFilterTypes)
	return out
}

// String implements fmt.Stringer.
func (f FilterType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FilterType.
func (f FilterType) IsValid() bool {
	for _, candidate := range validFilterTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFilterType converts raw input into a FilterType.
func ParseFilterType(value string) (FilterType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validFilterTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid filter type %q", value)
}
