package volunteer

import (
	"regexp"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Availability classifies when a volunteer can take pickups
type Availability string

const (
	AvailabilityFullTime Availability = "full-time"
	AvailabilityPartTime Availability = "part-time"
	AvailabilityWeekends Availability = "weekends"
)

// IsValid checks if the availability is a supported value
func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityFullTime, AvailabilityPartTime, AvailabilityWeekends:
		return true
	}
	return false
}

// Vehicle classifies the transport a volunteer has access to
type Vehicle string

const (
	VehicleNone Vehicle = "none"
	VehicleBike Vehicle = "bike"
	VehicleCar  Vehicle = "car"
)

// IsValid checks if the vehicle is a supported value
func (v Vehicle) IsValid() bool {
	switch v {
	case VehicleNone, VehicleBike, VehicleCar:
		return true
	}
	return false
}

// Status represents the account status of a volunteer
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// IsValid checks if the status is a supported value
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Review is a rating left for a volunteer after a pickup
type Review struct {
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
	GivenAt    time.Time
}

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	aadharPattern = regexp.MustCompile(`^[0-9]{12}$`)
)

// Volunteer represents a registered pickup volunteer and their task board.
// AssignedTasks and CompletedTasks hold donation IDs; a donation appears in
// at most one of the two lists at any time.
type Volunteer struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID
	Phone          string
	Address        valueobject.PickupAddress
	AadharNumber   string
	Availability   Availability
	Vehicle        Vehicle
	Status         Status
	AssignedTasks  []uuid.UUID
	CompletedTasks []uuid.UUID
	Rating         decimal.Decimal
	Reviews        []Review
}

// NewVolunteer registers a volunteer profile for a user account
func NewVolunteer(userID uuid.UUID, phone, aadharNumber string, availability Availability, vehicle Vehicle, address valueobject.PickupAddress) (*Volunteer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	if !aadharPattern.MatchString(aadharNumber) {
		return nil, shared.NewDomainError("INVALID_AADHAR", "Aadhar number must be exactly 12 digits")
	}
	if !availability.IsValid() {
		return nil, shared.NewDomainError("INVALID_AVAILABILITY", "Unknown availability: "+string(availability))
	}
	if !vehicle.IsValid() {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Unknown vehicle type: "+string(vehicle))
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}

	return &Volunteer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Phone:             phone,
		Address:           address,
		AadharNumber:      aadharNumber,
		Availability:      availability,
		Vehicle:           vehicle,
		Status:            StatusActive,
		Rating:            decimal.Zero,
	}, nil
}

// HasAssignedTask reports whether the donation is on the assigned list
func (v *Volunteer) HasAssignedTask(donationID uuid.UUID) bool {
	return containsID(v.AssignedTasks, donationID)
}

// HasCompletedTask reports whether the donation is on the completed list
func (v *Volunteer) HasCompletedTask(donationID uuid.UUID) bool {
	return containsID(v.CompletedTasks, donationID)
}

// AssignTask appends a donation to the assigned list. A donation already
// present on either list cannot be assigned again.
func (v *Volunteer) AssignTask(donationID uuid.UUID) error {
	if donationID == uuid.Nil {
		return shared.NewDomainError("INVALID_DONATION", "Donation ID cannot be empty")
	}
	if v.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Tasks can only be assigned to active volunteers")
	}
	if v.HasAssignedTask(donationID) {
		return shared.NewDomainError("CONFLICT", "Task is already assigned to this volunteer")
	}
	if v.HasCompletedTask(donationID) {
		return shared.NewDomainError("CONFLICT", "Task was already completed by this volunteer")
	}
	v.AssignedTasks = append(v.AssignedTasks, donationID)
	v.UpdatedAt = time.Now()
	return nil
}

// CompleteTask moves a donation from the assigned list to the completed list.
// The remove-and-append is a single in-memory mutation persisted as one
// optimistic-locked row update, so the move is never observably separable.
func (v *Volunteer) CompleteTask(donationID uuid.UUID) error {
	idx := -1
	for i, id := range v.AssignedTasks {
		if id == donationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.NewDomainError("INVALID_STATE", "Task is not assigned to this volunteer")
	}
	v.AssignedTasks = append(v.AssignedTasks[:idx], v.AssignedTasks[idx+1:]...)
	v.CompletedTasks = append(v.CompletedTasks, donationID)
	v.UpdatedAt = time.Now()
	return nil
}

// UpdateProfile updates the volunteer's contact and availability details
func (v *Volunteer) UpdateProfile(phone string, availability Availability, vehicle Vehicle, address valueobject.PickupAddress) error {
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	if !availability.IsValid() {
		return shared.NewDomainError("INVALID_AVAILABILITY", "Unknown availability: "+string(availability))
	}
	if !vehicle.IsValid() {
		return shared.NewDomainError("INVALID_VEHICLE", "Unknown vehicle type: "+string(vehicle))
	}
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}
	v.Phone = phone
	v.Availability = availability
	v.Vehicle = vehicle
	v.Address = address
	v.UpdatedAt = time.Now()
	return nil
}

// ChangeStatus sets the account status (admin action)
func (v *Volunteer) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown volunteer status: "+string(status))
	}
	v.Status = status
	v.UpdatedAt = time.Now()
	return nil
}

// AddReview records a review and recomputes the average rating
func (v *Volunteer) AddReview(reviewerID uuid.UUID, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	v.Reviews = append(v.Reviews, Review{
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		GivenAt:    time.Now(),
	})

	sum := decimal.Zero
	for _, r := range v.Reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	v.Rating = sum.Div(decimal.NewFromInt(int64(len(v.Reviews)))).Round(2)
	v.UpdatedAt = time.Now()
	return nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
