package models

import (
	"encoding/json"
	"time"

	"github.com/foodbridge/backend/internal/domain/fulfillment"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DonationTransactionModel is the persistence model for the
// DonationTransaction aggregate.
type DonationTransactionModel struct {
	AggregateModel
	DonationID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	DonationTitle       string                `gorm:"type:varchar(200)"`
	DonorID             uuid.UUID             `gorm:"type:uuid;not null;index"`
	OrganizationID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	OrganizationName    string                `gorm:"type:varchar(200)"`
	Status              fulfillment.Status    `gorm:"type:varchar(20);not null;index"`
	ScheduledPickupTime *time.Time
	ActualPickupTime    *time.Time
	PickupLocation      *valueobject.GeoPoint `gorm:"type:jsonb"`
	Notes               string                `gorm:"type:text"`
	Feedback            string                `gorm:"type:jsonb"`
	AcceptedAt          *time.Time
	CollectedAt         *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	CancelReason        string                `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DonationTransactionModel) TableName() string {
	return "donation_transactions"
}

// feedbackRecord is the serialized form of fulfillment.Feedback
type feedbackRecord struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment"`
	GivenAt time.Time `json:"given_at"`
}

// ToDomain converts the persistence model to a domain DonationTransaction.
func (m *DonationTransactionModel) ToDomain() *fulfillment.DonationTransaction {
	t := &fulfillment.DonationTransaction{
		DonationID:          m.DonationID,
		DonationTitle:       m.DonationTitle,
		DonorID:             m.DonorID,
		OrganizationID:      m.OrganizationID,
		OrganizationName:    m.OrganizationName,
		Status:              m.Status,
		ScheduledPickupTime: m.ScheduledPickupTime,
		ActualPickupTime:    m.ActualPickupTime,
		PickupLocation:      m.PickupLocation,
		Notes:               m.Notes,
		AcceptedAt:          m.AcceptedAt,
		CollectedAt:         m.CollectedAt,
		CompletedAt:         m.CompletedAt,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
	m.PopulateAggregateRoot(&t.BaseAggregateRoot)

	if m.Feedback != "" {
		var record feedbackRecord
		if err := json.Unmarshal([]byte(m.Feedback), &record); err == nil && record.Rating > 0 {
			t.Feedback = &fulfillment.Feedback{
				Rating:  record.Rating,
				Comment: record.Comment,
				GivenAt: record.GivenAt,
			}
		}
	}
	return t
}

// FromDomain populates the persistence model from a domain DonationTransaction.
func (m *DonationTransactionModel) FromDomain(t *fulfillment.DonationTransaction) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.DonationID = t.DonationID
	m.DonationTitle = t.DonationTitle
	m.DonorID = t.DonorID
	m.OrganizationID = t.OrganizationID
	m.OrganizationName = t.OrganizationName
	m.Status = t.Status
	m.ScheduledPickupTime = t.ScheduledPickupTime
	m.ActualPickupTime = t.ActualPickupTime
	m.PickupLocation = t.PickupLocation
	m.Notes = t.Notes
	m.AcceptedAt = t.AcceptedAt
	m.CollectedAt = t.CollectedAt
	m.CompletedAt = t.CompletedAt
	m.CancelledAt = t.CancelledAt
	m.CancelReason = t.CancelReason

	m.Feedback = ""
	if t.Feedback != nil {
		if b, err := json.Marshal(feedbackRecord{
			Rating:  t.Feedback.Rating,
			Comment: t.Feedback.Comment,
			GivenAt: t.Feedback.GivenAt,
		}); err == nil {
			m.Feedback = string(b)
		}
	}
}

// DonationTransactionModelFromDomain creates a persistence model from a domain
// DonationTransaction.
func DonationTransactionModelFromDomain(t *fulfillment.DonationTransaction) *DonationTransactionModel {
	m := &DonationTransactionModel{}
	m.FromDomain(t)
	return m
}
