package fulfillment

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Status represents the status of a donation transaction
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCollected Status = "collected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a valid transaction Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCollected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are monotonic forward; cancelled is reachable from any
// non-terminal state.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusAccepted || target == StatusCancelled
	case StatusAccepted:
		return target == StatusCollected || target == StatusCancelled
	case StatusCollected:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal reports whether the status permits no further transition
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Feedback is the optional post-completion rating left by the organization
type Feedback struct {
	Rating  int
	Comment string
	GivenAt time.Time
}

// NewFeedback creates feedback, validating the 1-5 rating range
func NewFeedback(rating int, comment string) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	return &Feedback{
		Rating:  rating,
		Comment: comment,
		GivenAt: time.Now(),
	}, nil
}

// DonationTransaction represents one claim-to-fulfillment episode linking a
// donation to a receiving organization. The donation reference is immutable
// after creation; a cancelled transaction is kept, never deleted.
type DonationTransaction struct {
	shared.BaseAggregateRoot
	DonationID          uuid.UUID
	DonationTitle       string    // denormalized from the donation at claim time
	DonorID             uuid.UUID // denormalized from the donation at claim time
	OrganizationID      uuid.UUID
	OrganizationName    string
	Status              Status
	ScheduledPickupTime *time.Time
	ActualPickupTime    *time.Time
	PickupLocation      *valueobject.GeoPoint
	Notes               string
	Feedback            *Feedback
	AcceptedAt          *time.Time
	CollectedAt         *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	CancelReason        string
}

// NewDonationTransaction creates a pending transaction for a claim
func NewDonationTransaction(donationID, donorID, organizationID uuid.UUID, scheduledPickupTime *time.Time, notes string) (*DonationTransaction, error) {
	if donationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONATION", "Donation ID cannot be empty")
	}
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor ID cannot be empty")
	}
	if organizationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORGANIZATION", "Organization ID cannot be empty")
	}
	if len(notes) > 1000 {
		return nil, shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 1000 characters")
	}

	return &DonationTransaction{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		DonationID:          donationID,
		DonorID:             donorID,
		OrganizationID:      organizationID,
		Status:              StatusPending,
		ScheduledPickupTime: scheduledPickupTime,
		Notes:               notes,
	}, nil
}

// SetSummaries records the denormalized donation title and organization name
// shown on transaction listings
func (t *DonationTransaction) SetSummaries(donationTitle, organizationName string) {
	t.DonationTitle = donationTitle
	t.OrganizationName = organizationName
}

// Accept moves the transaction from pending to accepted
func (t *DonationTransaction) Accept() error {
	if !t.Status.CanTransitionTo(StatusAccepted) {
		return transitionError(t.Status, StatusAccepted)
	}
	now := time.Now()
	t.Status = StatusAccepted
	t.AcceptedAt = &now
	t.UpdatedAt = now
	return nil
}

// MarkCollected records the pickup, optionally with the collection point
func (t *DonationTransaction) MarkCollected(location *valueobject.GeoPoint) error {
	if !t.Status.CanTransitionTo(StatusCollected) {
		return transitionError(t.Status, StatusCollected)
	}
	now := time.Now()
	t.Status = StatusCollected
	t.CollectedAt = &now
	t.ActualPickupTime = &now
	if location != nil {
		t.PickupLocation = location
	}
	t.UpdatedAt = now
	return nil
}

// Complete finishes the transaction. Feedback is optional.
func (t *DonationTransaction) Complete(feedback *Feedback) error {
	if !t.Status.CanTransitionTo(StatusCompleted) {
		return transitionError(t.Status, StatusCompleted)
	}
	now := time.Now()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.Feedback = feedback
	t.UpdatedAt = now
	return nil
}

// Cancel aborts the transaction from any non-terminal state
func (t *DonationTransaction) Cancel(reason string) error {
	if !t.Status.CanTransitionTo(StatusCancelled) {
		return transitionError(t.Status, StatusCancelled)
	}
	now := time.Now()
	t.Status = StatusCancelled
	t.CancelledAt = &now
	t.CancelReason = reason
	t.UpdatedAt = now
	return nil
}

// IsActive reports whether the transaction still holds its donation reserved
func (t *DonationTransaction) IsActive() bool {
	return !t.Status.IsTerminal()
}

// GiveFeedback attaches feedback to an already completed transaction
func (t *DonationTransaction) GiveFeedback(feedback *Feedback) error {
	if t.Status != StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Feedback can only be given on a completed transaction")
	}
	if feedback == nil {
		return shared.NewDomainError("INVALID_RATING", "Feedback cannot be empty")
	}
	t.Feedback = feedback
	t.UpdatedAt = time.Now()
	return nil
}

func transitionError(from, to Status) *shared.DomainError {
	return shared.NewDomainError("INVALID_TRANSITION",
		"Cannot change transaction from "+from.String()+" to "+to.String())
}
