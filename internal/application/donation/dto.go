package donation

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressInput represents a pickup address in requests
type AddressInput struct {
	Street  string `json:"street" binding:"required,min=1,max=200"`
	City    string `json:"city" binding:"required,min=1,max=100"`
	State   string `json:"state" binding:"required,min=1,max=100"`
	Pincode string `json:"pincode" binding:"required,len=6,numeric"`
}

// AddressResponse represents a pickup address in API responses
type AddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// CreateDonationRequest represents a request to list a new donation
type CreateDonationRequest struct {
	Title               string          `json:"title" binding:"required,min=1,max=200"`
	Description         string          `json:"description" binding:"required,min=1"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	Unit                string          `json:"unit" binding:"required,oneof=kg liters pieces plates"`
	ExpiryDate          time.Time       `json:"expiry_date" binding:"required"`
	PickupAddress       AddressInput    `json:"pickup_address" binding:"required"`
	DietaryInfo         []string        `json:"dietary_info"`
	SpecialInstructions string          `json:"special_instructions" binding:"max=1000"`
}

// UpdateDonationRequest represents a request to update a donation's
// descriptive fields. Status has no representation here: it is owned by the
// fulfillment lifecycle and cannot be written through this path.
type UpdateDonationRequest struct {
	Title               *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description         *string          `json:"description" binding:"omitempty,min=1"`
	Quantity            *decimal.Decimal `json:"quantity"`
	Unit                *string          `json:"unit" binding:"omitempty,oneof=kg liters pieces plates"`
	ExpiryDate          *time.Time       `json:"expiry_date"`
	PickupAddress       *AddressInput    `json:"pickup_address"`
	DietaryInfo         []string         `json:"dietary_info"`
	SpecialInstructions *string          `json:"special_instructions" binding:"omitempty,max=1000"`
}

// DonationListFilter represents filter options for donation listings
type DonationListFilter struct {
	Status   string     `form:"status" binding:"omitempty,oneof=available reserved collected completed delivered"`
	DonorID  *uuid.UUID `form:"donor_id"`
	City     string     `form:"city"`
	Search   string     `form:"search"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DonationResponse represents a donation in API responses
type DonationResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	Unit                string          `json:"unit"`
	ExpiryDate          time.Time       `json:"expiry_date"`
	PickupAddress       AddressResponse `json:"pickup_address"`
	Status              string          `json:"status"`
	DonorID             uuid.UUID       `json:"donor_id"`
	OrganizationID      *uuid.UUID      `json:"organization_id,omitempty"`
	ImageKeys           []string        `json:"image_keys,omitempty"`
	DietaryInfo         []string        `json:"dietary_info,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ToDonationResponse converts a domain donation to its API representation
func ToDonationResponse(d *donation.FoodDonation) DonationResponse {
	return DonationResponse{
		ID:                  d.ID,
		Title:               d.Title,
		Description:         d.Description,
		Quantity:            d.Quantity.Amount(),
		Unit:                d.Quantity.Unit().String(),
		ExpiryDate:          d.ExpiryDate,
		PickupAddress:       toAddressResponse(d.PickupAddress),
		Status:              d.Status.String(),
		DonorID:             d.DonorID,
		OrganizationID:      d.OrganizationID,
		ImageKeys:           d.ImageKeys,
		DietaryInfo:         d.DietaryInfo,
		SpecialInstructions: d.SpecialInstructions,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func toAddressResponse(a valueobject.PickupAddress) AddressResponse {
	return AddressResponse{
		Street:  a.Street(),
		City:    a.City(),
		State:   a.State(),
		Pincode: a.Pincode(),
	}
}
