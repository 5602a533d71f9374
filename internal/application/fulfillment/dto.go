package fulfillment

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/fulfillment"
	"github.com/google/uuid"
)

// ClaimRequest represents a request to claim an available donation
type ClaimRequest struct {
	DonationID          uuid.UUID  `json:"donation_id" binding:"required"`
	OrganizationID      uuid.UUID  `json:"organization_id" binding:"required"`
	ScheduledPickupTime *time.Time `json:"scheduled_pickup_time"`
	Notes               string     `json:"notes" binding:"max=1000"`
}

// GeoPointInput represents a longitude/latitude pair in requests
type GeoPointInput struct {
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
}

// FeedbackInput represents post-completion feedback in requests
type FeedbackInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// UpdateStatusRequest represents a request to move a transaction forward or
// cancel it
type UpdateStatusRequest struct {
	Status         string         `json:"status" binding:"required,oneof=accepted collected completed cancelled"`
	Reason         string         `json:"reason" binding:"max=500"`
	PickupLocation *GeoPointInput `json:"pickup_location"`
	Feedback       *FeedbackInput `json:"feedback"`
}

// TransactionListFilter represents filter options for transaction listings
type TransactionListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending accepted collected completed cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FeedbackResponse represents feedback in API responses
type FeedbackResponse struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	GivenAt time.Time `json:"given_at"`
}

// GeoPointResponse represents a pickup location in API responses
type GeoPointResponse struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// TransactionResponse represents a donation transaction in API responses
type TransactionResponse struct {
	ID                  uuid.UUID         `json:"id"`
	DonationID          uuid.UUID         `json:"donation_id"`
	DonationTitle       string            `json:"donation_title,omitempty"`
	DonorID             uuid.UUID         `json:"donor_id"`
	OrganizationID      uuid.UUID         `json:"organization_id"`
	OrganizationName    string            `json:"organization_name,omitempty"`
	Status              string            `json:"status"`
	ScheduledPickupTime *time.Time        `json:"scheduled_pickup_time,omitempty"`
	ActualPickupTime    *time.Time        `json:"actual_pickup_time,omitempty"`
	PickupLocation      *GeoPointResponse `json:"pickup_location,omitempty"`
	Notes               string            `json:"notes,omitempty"`
	Feedback            *FeedbackResponse `json:"feedback,omitempty"`
	CancelReason        string            `json:"cancel_reason,omitempty"`
	AcceptedAt          *time.Time        `json:"accepted_at,omitempty"`
	CollectedAt         *time.Time        `json:"collected_at,omitempty"`
	CompletedAt         *time.Time        `json:"completed_at,omitempty"`
	CancelledAt         *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to its API representation
func ToTransactionResponse(t *fulfillment.DonationTransaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                  t.ID,
		DonationID:          t.DonationID,
		DonationTitle:       t.DonationTitle,
		DonorID:             t.DonorID,
		OrganizationID:      t.OrganizationID,
		OrganizationName:    t.OrganizationName,
		Status:              t.Status.String(),
		ScheduledPickupTime: t.ScheduledPickupTime,
		ActualPickupTime:    t.ActualPickupTime,
		Notes:               t.Notes,
		CancelReason:        t.CancelReason,
		AcceptedAt:          t.AcceptedAt,
		CollectedAt:         t.CollectedAt,
		CompletedAt:         t.CompletedAt,
		CancelledAt:         t.CancelledAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
	if t.PickupLocation != nil {
		resp.PickupLocation = &GeoPointResponse{
			Longitude: t.PickupLocation.Longitude(),
			Latitude:  t.PickupLocation.Latitude(),
		}
	}
	if t.Feedback != nil {
		resp.Feedback = &FeedbackResponse{
			Rating:  t.Feedback.Rating,
			Comment: t.Feedback.Comment,
			GivenAt: t.Feedback.GivenAt,
		}
	}
	return resp
}
