package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is a positive amount of food in a given unit.
// It is immutable - all operations return new Quantity instances.
type Quantity struct {
	amount decimal.Decimal
	unit   Unit
}

// NewQuantity creates a new Quantity. The amount must be strictly positive
// and the unit must be a supported donation unit.
func NewQuantity(amount decimal.Decimal, unit Unit) (Quantity, error) {
	if !unit.IsValid() {
		return Quantity{}, fmt.Errorf("unsupported unit %q", unit)
	}
	if !amount.IsPositive() {
		return Quantity{}, fmt.Errorf("quantity must be positive, got %s", amount)
	}
	return Quantity{amount: amount, unit: unit}, nil
}

// NewQuantityFromFloat creates a Quantity from a float64 amount
func NewQuantityFromFloat(amount float64, unit Unit) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(amount), unit)
}

// MustNewQuantity creates a new Quantity, panics on error
func MustNewQuantity(amount decimal.Decimal, unit Unit) Quantity {
	q, err := NewQuantity(amount, unit)
	if err != nil {
		panic(err)
	}
	return q
}

// Amount returns the numeric amount
func (q Quantity) Amount() decimal.Decimal {
	return q.amount
}

// Unit returns the measurement unit
func (q Quantity) Unit() Unit {
	return q.unit
}

// IsZero reports whether the quantity is the zero value
func (q Quantity) IsZero() bool {
	return q.unit == "" && q.amount.IsZero()
}

// Equals compares two quantities for equal amount and unit
func (q Quantity) Equals(other Quantity) bool {
	return q.unit == other.unit && q.amount.Equal(other.amount)
}

// String returns a human-readable representation, e.g. "2.5 kg"
func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.amount.String(), q.unit)
}
