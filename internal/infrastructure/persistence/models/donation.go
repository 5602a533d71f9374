package models

import (
	"encoding/json"
	"time"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FoodDonationModel is the persistence model for the FoodDonation aggregate.
// City is denormalized from the pickup address so listings can filter on it
// without digging into the jsonb column.
type FoodDonationModel struct {
	AggregateModel
	Title               string                    `gorm:"type:varchar(200);not null"`
	Description         string                    `gorm:"type:text;not null"`
	QuantityAmount      decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	QuantityUnit        string                    `gorm:"type:varchar(20);not null"`
	ExpiryDate          time.Time                 `gorm:"not null;index"`
	PickupAddress       valueobject.PickupAddress `gorm:"type:jsonb"`
	City                string                    `gorm:"type:varchar(100);index"`
	Status              donation.Status           `gorm:"type:varchar(20);not null;index"`
	DonorID             uuid.UUID                 `gorm:"type:uuid;not null;index"`
	OrganizationID      *uuid.UUID                `gorm:"type:uuid;index"`
	ImageKeys           string                    `gorm:"type:jsonb;default:'[]'"`
	DietaryInfo         string                    `gorm:"type:jsonb;default:'[]'"`
	SpecialInstructions string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FoodDonationModel) TableName() string {
	return "food_donations"
}

// ToDomain converts the persistence model to a domain FoodDonation aggregate.
func (m *FoodDonationModel) ToDomain() *donation.FoodDonation {
	d := &donation.FoodDonation{
		Title:               m.Title,
		Description:         m.Description,
		Quantity:            quantityFromColumns(m.QuantityAmount, m.QuantityUnit),
		ExpiryDate:          m.ExpiryDate,
		PickupAddress:       m.PickupAddress,
		Status:              m.Status,
		DonorID:             m.DonorID,
		OrganizationID:      m.OrganizationID,
		SpecialInstructions: m.SpecialInstructions,
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	d.ImageKeys = stringSliceFromJSON(m.ImageKeys)
	d.DietaryInfo = stringSliceFromJSON(m.DietaryInfo)
	return d
}

// FromDomain populates the persistence model from a domain FoodDonation.
func (m *FoodDonationModel) FromDomain(d *donation.FoodDonation) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Title = d.Title
	m.Description = d.Description
	m.QuantityAmount = d.Quantity.Amount()
	m.QuantityUnit = string(d.Quantity.Unit())
	m.ExpiryDate = d.ExpiryDate
	m.PickupAddress = d.PickupAddress
	m.City = d.PickupAddress.City()
	m.Status = d.Status
	m.DonorID = d.DonorID
	m.OrganizationID = d.OrganizationID
	m.ImageKeys = stringSliceToJSON(d.ImageKeys)
	m.DietaryInfo = stringSliceToJSON(d.DietaryInfo)
	m.SpecialInstructions = d.SpecialInstructions
}

// FoodDonationModelFromDomain creates a persistence model from a domain FoodDonation.
func FoodDonationModelFromDomain(d *donation.FoodDonation) *FoodDonationModel {
	m := &FoodDonationModel{}
	m.FromDomain(d)
	return m
}

func quantityFromColumns(amount decimal.Decimal, unit string) valueobject.Quantity {
	q, err := valueobject.NewQuantity(amount, valueobject.Unit(unit))
	if err != nil {
		// A stored row can only violate the unit whitelist after a bad
		// migration; surface it as a zero quantity rather than panicking.
		return valueobject.Quantity{}
	}
	return q
}

func stringSliceToJSON(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func stringSliceFromJSON(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func uuidSliceToJSON(ids []uuid.UUID) string {
	if len(ids) == 0 {
		return "[]"
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func uuidSliceFromJSON(raw string) []uuid.UUID {
	if raw == "" {
		return nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
