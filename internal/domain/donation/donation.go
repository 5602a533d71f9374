package donation

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Status represents the lifecycle status of a food donation
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusCollected Status = "collected"
	StatusCompleted Status = "completed"
	StatusDelivered Status = "delivered"
)

// IsValid checks if the status is a valid donation Status
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusCollected, StatusCompleted, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The reserved -> available edge is the revert applied when the claiming
// transaction is cancelled.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusAvailable:
		return target == StatusReserved
	case StatusReserved:
		return target == StatusAvailable || target == StatusCollected || target == StatusCompleted
	case StatusCollected:
		return target == StatusCompleted
	case StatusCompleted:
		return target == StatusDelivered
	case StatusDelivered:
		return false // Terminal state
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}

// FoodDonation represents a listed unit of surplus food awaiting pickup.
// Status is owned by the fulfillment lifecycle: callers outside that flow
// may read it but never set it directly.
type FoodDonation struct {
	shared.BaseAggregateRoot
	Title               string
	Description         string
	Quantity            valueobject.Quantity
	ExpiryDate          time.Time
	PickupAddress       valueobject.PickupAddress
	Status              Status
	DonorID             uuid.UUID
	OrganizationID      *uuid.UUID
	ImageKeys           []string
	DietaryInfo         []string
	SpecialInstructions string
}

// NewFoodDonation creates a new donation listing in the available state
func NewFoodDonation(donorID uuid.UUID, title, description string, quantity valueobject.Quantity, expiryDate time.Time, pickupAddress valueobject.PickupAddress) (*FoodDonation, error) {
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity is required")
	}
	if expiryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry date is required")
	}
	if pickupAddress.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Pickup address is required")
	}

	return &FoodDonation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Description:       description,
		Quantity:          quantity,
		ExpiryDate:        expiryDate,
		PickupAddress:     pickupAddress,
		Status:            StatusAvailable,
		DonorID:           donorID,
	}, nil
}

// IsClaimable reports whether a transaction may be opened against the donation
func (d *FoodDonation) IsClaimable() bool {
	return d.Status == StatusAvailable
}

// IsExpired reports whether the donation's expiry has passed
func (d *FoodDonation) IsExpired(now time.Time) bool {
	return now.After(d.ExpiryDate)
}

// ChangeStatus moves the donation to the target status, enforcing the
// transition table. Only the fulfillment lifecycle may call this.
func (d *FoodDonation) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown donation status: "+target.String())
	}
	if !d.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot change donation from "+d.Status.String()+" to "+target.String())
	}
	d.Status = target
	d.UpdatedAt = time.Now()
	return nil
}

// ConfirmDelivered marks a completed donation as delivered (donor confirmation)
func (d *FoodDonation) ConfirmDelivered() error {
	return d.ChangeStatus(StatusDelivered)
}

// UpdateDetails updates the descriptive fields of the donation. The status
// field is deliberately absent: status moves only through ChangeStatus.
func (d *FoodDonation) UpdateDetails(title, description string, quantity valueobject.Quantity, expiryDate time.Time, pickupAddress valueobject.PickupAddress) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity is required")
	}
	if expiryDate.IsZero() {
		return shared.NewDomainError("INVALID_EXPIRY", "Expiry date is required")
	}
	if pickupAddress.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Pickup address is required")
	}

	d.Title = title
	d.Description = description
	d.Quantity = quantity
	d.ExpiryDate = expiryDate
	d.PickupAddress = pickupAddress
	d.UpdatedAt = time.Now()
	return nil
}

// SetSpecialInstructions sets the optional pickup instructions
func (d *FoodDonation) SetSpecialInstructions(instructions string) {
	d.SpecialInstructions = instructions
	d.UpdatedAt = time.Now()
}

// SetDietaryInfo replaces the dietary-restriction tags
func (d *FoodDonation) SetDietaryInfo(tags []string) {
	d.DietaryInfo = tags
	d.UpdatedAt = time.Now()
}

// AttachImage records an object-storage key for an uploaded food image
func (d *FoodDonation) AttachImage(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot be empty")
	}
	d.ImageKeys = append(d.ImageKeys, key)
	d.UpdatedAt = time.Now()
	return nil
}

// AssignOrganization records the receiving organization on the donation
func (d *FoodDonation) AssignOrganization(orgID uuid.UUID) {
	if orgID == uuid.Nil {
		d.OrganizationID = nil
	} else {
		id := orgID
		d.OrganizationID = &id
	}
	d.UpdatedAt = time.Now()
}
