package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GeoPoint is a longitude/latitude coordinate pair used for pickup locations.
type GeoPoint struct {
	longitude float64
	latitude  float64
}

// NewGeoPoint creates a GeoPoint, validating coordinate ranges
func NewGeoPoint(longitude, latitude float64) (GeoPoint, error) {
	if longitude < -180 || longitude > 180 {
		return GeoPoint{}, fmt.Errorf("longitude %f out of range [-180, 180]", longitude)
	}
	if latitude < -90 || latitude > 90 {
		return GeoPoint{}, fmt.Errorf("latitude %f out of range [-90, 90]", latitude)
	}
	return GeoPoint{longitude: longitude, latitude: latitude}, nil
}

// Longitude returns the longitude component
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// Latitude returns the latitude component
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// geoPointJSON is the serialized form used for JSON and database storage.
// Coordinates are stored [longitude, latitude], GeoJSON order.
type geoPointJSON struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// MarshalJSON implements json.Marshaler
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoPointJSON{
		Type:        "Point",
		Coordinates: []float64{p.longitude, p.latitude},
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw geoPointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Coordinates) != 2 {
		return fmt.Errorf("point requires exactly 2 coordinates, got %d", len(raw.Coordinates))
	}
	parsed, err := NewGeoPoint(raw.Coordinates[0], raw.Coordinates[1])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Value implements driver.Valuer for database storage as JSON
func (p GeoPoint) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading JSON from the database
func (p *GeoPoint) Scan(value interface{}) error {
	if value == nil {
		*p = GeoPoint{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into GeoPoint", value)
	}
	return json.Unmarshal(data, p)
}
