package enums

import (
	"fmt"
	"strings"
)

// VehicleType distinguishes car and motorcycle reference data.
type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeMoto VehicleType = "moto"
)

var validVehicleTypes = []VehicleType{
	VehicleTypeCar,
	VehicleTypeMoto,
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VehicleType.
func (v VehicleType) IsValid() bool {
	for _, candidate := range validVehicleTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVehicleType converts raw input into a VehicleType. Empty input
// defaults to car, which is what the reference files assume.
func ParseVehicleType(value string) (VehicleType, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return VehicleTypeCar, nil
	}
	for _, candidate := range validVehicleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vehicle type %q", value)
}
