package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// PickupAddress is a value object representing the location where a donation
// can be collected. It is immutable - all operations return new instances.
type PickupAddress struct {
	street  string
	city    string
	state   string
	pincode string
}

// NewPickupAddress creates a new PickupAddress. Street, city, state and a
// six-digit pincode are all required.
func NewPickupAddress(street, city, state, pincode string) (PickupAddress, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	pincode = strings.TrimSpace(pincode)

	if street == "" {
		return PickupAddress{}, fmt.Errorf("street is required")
	}
	if len(street) > 200 {
		return PickupAddress{}, fmt.Errorf("street cannot exceed 200 characters")
	}
	if city == "" {
		return PickupAddress{}, fmt.Errorf("city is required")
	}
	if len(city) > 100 {
		return PickupAddress{}, fmt.Errorf("city cannot exceed 100 characters")
	}
	if state == "" {
		return PickupAddress{}, fmt.Errorf("state is required")
	}
	if len(state) > 100 {
		return PickupAddress{}, fmt.Errorf("state cannot exceed 100 characters")
	}
	if !pincodePattern.MatchString(pincode) {
		return PickupAddress{}, fmt.Errorf("pincode must be exactly 6 digits")
	}

	return PickupAddress{
		street:  street,
		city:    city,
		state:   state,
		pincode: pincode,
	}, nil
}

// MustNewPickupAddress creates a new PickupAddress, panics on error
func MustNewPickupAddress(street, city, state, pincode string) PickupAddress {
	addr, err := NewPickupAddress(street, city, state, pincode)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyPickupAddress returns an empty address (for optional address fields)
func EmptyPickupAddress() PickupAddress {
	return PickupAddress{}
}

// Street returns the street line
func (a PickupAddress) Street() string {
	return a.street
}

// City returns the city
func (a PickupAddress) City() string {
	return a.city
}

// State returns the state
func (a PickupAddress) State() string {
	return a.state
}

// Pincode returns the postal pincode
func (a PickupAddress) Pincode() string {
	return a.pincode
}

// IsEmpty returns true if all fields are blank
func (a PickupAddress) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" && a.pincode == ""
}

// FullAddress returns the complete formatted address string
func (a PickupAddress) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.street, a.city, a.state, a.pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Equals compares two addresses field by field
func (a PickupAddress) Equals(other PickupAddress) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.pincode == other.pincode
}

// addressJSON is the serialized form used for JSON and database storage
type addressJSON struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// MarshalJSON implements json.Marshaler
func (a PickupAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:  a.street,
		City:    a.city,
		State:   a.state,
		Pincode: a.pincode,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *PickupAddress) UnmarshalJSON(data []byte) error {
	var raw addressJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.street = raw.Street
	a.city = raw.City
	a.state = raw.State
	a.pincode = raw.Pincode
	return nil
}

// Value implements driver.Valuer for database storage as JSON
func (a PickupAddress) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading JSON from the database
func (a *PickupAddress) Scan(value interface{}) error {
	if value == nil {
		*a = PickupAddress{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PickupAddress", value)
	}
	return json.Unmarshal(data, a)
}
