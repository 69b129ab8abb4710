package enums

import "fmt"

// BatteryType tracks the battery technology fitted for a motorisation.
type BatteryType string

const (
	BatteryTypeAGM          BatteryType = "AGM"
	BatteryTypeEFB          BatteryType = "EFB"
	BatteryTypeConventional BatteryType = "Conventional"
)

var validBatteryTypes = []BatteryType{
	BatteryTypeAGM,
	BatteryTypeEFB,
	BatteryTypeConventional,
}

// String implements fmt.Stringer.
func (b BatteryType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BatteryType.
func (b BatteryType) IsValid() bool {
	for _, candidate := range validBatteryTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBatteryType converts raw input into a BatteryType.
func ParseBatteryType(value string) (BatteryType, error) {
	for _, candidate := range validBatteryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid battery type %q", value)
}
