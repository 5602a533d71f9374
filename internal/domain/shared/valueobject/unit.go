package valueobject

import "fmt"

// Unit is the measurement unit of a food donation quantity
type Unit string

// Supported donation units
const (
	UnitKg     Unit = "kg"
	UnitLiters Unit = "liters"
	UnitPieces Unit = "pieces"
	UnitPlates Unit = "plates"
)

// AllUnits returns every supported unit
func AllUnits() []Unit {
	return []Unit{UnitKg, UnitLiters, UnitPieces, UnitPlates}
}

// IsValid checks if the unit is one of the supported values
func (u Unit) IsValid() bool {
	switch u {
	case UnitKg, UnitLiters, UnitPieces, UnitPlates:
		return true
	}
	return false
}

// String returns the unit as a string
func (u Unit) String() string {
	return string(u)
}

// ParseUnit converts a string into a Unit, rejecting unknown values
func ParseUnit(s string) (Unit, error) {
	u := Unit(s)
	if !u.IsValid() {
		return "", fmt.Errorf("unsupported unit %q", s)
	}
	return u, nil
}
