package volunteer

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/foodbridge/backend/internal/domain/volunteer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressInput represents an address in requests
type AddressInput struct {
	Street  string `json:"street" binding:"required,min=1,max=200"`
	City    string `json:"city" binding:"required,min=1,max=100"`
	State   string `json:"state" binding:"required,min=1,max=100"`
	Pincode string `json:"pincode" binding:"required,len=6,numeric"`
}

// RegisterVolunteerRequest represents a volunteer registration
type RegisterVolunteerRequest struct {
	Phone        string       `json:"phone" binding:"required,len=10,numeric"`
	AadharNumber string       `json:"aadhar_number" binding:"required,len=12,numeric"`
	Availability string       `json:"availability" binding:"required,oneof=full-time part-time weekends"`
	Vehicle      string       `json:"vehicle" binding:"required,oneof=none bike car"`
	Address      AddressInput `json:"address" binding:"required"`
}

// UpdateProfileRequest represents a volunteer profile update
type UpdateProfileRequest struct {
	Phone        string       `json:"phone" binding:"required,len=10,numeric"`
	Availability string       `json:"availability" binding:"required,oneof=full-time part-time weekends"`
	Vehicle      string       `json:"vehicle" binding:"required,oneof=none bike car"`
	Address      AddressInput `json:"address" binding:"required"`
}

// TaskRequest identifies a task-board operation target
type TaskRequest struct {
	DonationID uuid.UUID `json:"donation_id" binding:"required"`
}

// VolunteerListFilter represents filter options for volunteer listings
type VolunteerListFilter struct {
	Status       string `form:"status" binding:"omitempty,oneof=active inactive suspended"`
	Availability string `form:"availability" binding:"omitempty,oneof=full-time part-time weekends"`
	City         string `form:"city"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReviewResponse represents a volunteer review in API responses
type ReviewResponse struct {
	ReviewerID uuid.UUID `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	GivenAt    time.Time `json:"given_at"`
}

// VolunteerResponse represents a volunteer in API responses
type VolunteerResponse struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Phone          string           `json:"phone"`
	Street         string           `json:"street"`
	City           string           `json:"city"`
	State          string           `json:"state"`
	Pincode        string           `json:"pincode"`
	Availability   string           `json:"availability"`
	Vehicle        string           `json:"vehicle"`
	Status         string           `json:"status"`
	AssignedTasks  []uuid.UUID      `json:"assigned_tasks"`
	CompletedTasks []uuid.UUID      `json:"completed_tasks"`
	Rating         decimal.Decimal  `json:"rating"`
	Reviews        []ReviewResponse `json:"reviews,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToVolunteerResponse converts a domain volunteer to its API representation
func ToVolunteerResponse(v *volunteer.Volunteer) VolunteerResponse {
	reviews := make([]ReviewResponse, len(v.Reviews))
	for i, r := range v.Reviews {
		reviews[i] = ReviewResponse{
			ReviewerID: r.ReviewerID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			GivenAt:    r.GivenAt,
		}
	}
	assigned := v.AssignedTasks
	if assigned == nil {
		assigned = []uuid.UUID{}
	}
	completed := v.CompletedTasks
	if completed == nil {
		completed = []uuid.UUID{}
	}
	return VolunteerResponse{
		ID:             v.ID,
		UserID:         v.UserID,
		Phone:          v.Phone,
		Street:         v.Address.Street(),
		City:           v.Address.City(),
		State:          v.Address.State(),
		Pincode:        v.Address.Pincode(),
		Availability:   string(v.Availability),
		Vehicle:        string(v.Vehicle),
		Status:         string(v.Status),
		AssignedTasks:  assigned,
		CompletedTasks: completed,
		Rating:         v.Rating,
		Reviews:        reviews,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func toPickupAddress(in AddressInput) (valueobject.PickupAddress, error) {
	return valueobject.NewPickupAddress(in.Street, in.City, in.State, in.Pincode)
}
