package models

import (
	"encoding/json"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/foodbridge/backend/internal/domain/volunteer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VolunteerModel is the persistence model for the Volunteer aggregate.
// The task lists live in jsonb columns on the volunteer row so a task-board
// move is a single optimistic-locked update.
type VolunteerModel struct {
	AggregateModel
	UserID         uuid.UUID                 `gorm:"type:uuid;not null;uniqueIndex"`
	Phone          string                    `gorm:"type:varchar(10);not null"`
	Address        valueobject.PickupAddress `gorm:"type:jsonb"`
	City           string                    `gorm:"type:varchar(100);index"`
	AadharNumber   string                    `gorm:"type:varchar(12);not null;uniqueIndex"`
	Availability   volunteer.Availability    `gorm:"type:varchar(20);not null"`
	Vehicle        volunteer.Vehicle         `gorm:"type:varchar(10);not null"`
	Status         volunteer.Status          `gorm:"type:varchar(20);not null;index"`
	AssignedTasks  string                    `gorm:"type:jsonb;default:'[]'"`
	CompletedTasks string                    `gorm:"type:jsonb;default:'[]'"`
	Rating         decimal.Decimal           `gorm:"type:decimal(3,2);not null;default:0"`
	Reviews        string                    `gorm:"type:jsonb;default:'[]'"`
}

// TableName returns the table name for GORM
func (VolunteerModel) TableName() string {
	return "volunteers"
}

// reviewRecord is the serialized form of volunteer.Review
type reviewRecord struct {
	ReviewerID uuid.UUID `json:"reviewer_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	GivenAt    time.Time `json:"given_at"`
}

// ToDomain converts the persistence model to a domain Volunteer.
func (m *VolunteerModel) ToDomain() *volunteer.Volunteer {
	v := &volunteer.Volunteer{
		UserID:       m.UserID,
		Phone:        m.Phone,
		Address:      m.Address,
		AadharNumber: m.AadharNumber,
		Availability: m.Availability,
		Vehicle:      m.Vehicle,
		Status:       m.Status,
		Rating:       m.Rating,
	}
	m.PopulateAggregateRoot(&v.BaseAggregateRoot)
	v.AssignedTasks = uuidSliceFromJSON(m.AssignedTasks)
	v.CompletedTasks = uuidSliceFromJSON(m.CompletedTasks)

	if m.Reviews != "" {
		var records []reviewRecord
		if err := json.Unmarshal([]byte(m.Reviews), &records); err == nil {
			for _, r := range records {
				v.Reviews = append(v.Reviews, volunteer.Review{
					ReviewerID: r.ReviewerID,
					Rating:     r.Rating,
					Comment:    r.Comment,
					GivenAt:    r.GivenAt,
				})
			}
		}
	}
	return v
}

// FromDomain populates the persistence model from a domain Volunteer.
func (m *VolunteerModel) FromDomain(v *volunteer.Volunteer) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.UserID = v.UserID
	m.Phone = v.Phone
	m.Address = v.Address
	m.City = v.Address.City()
	m.AadharNumber = v.AadharNumber
	m.Availability = v.Availability
	m.Vehicle = v.Vehicle
	m.Status = v.Status
	m.AssignedTasks = uuidSliceToJSON(v.AssignedTasks)
	m.CompletedTasks = uuidSliceToJSON(v.CompletedTasks)
	m.Rating = v.Rating

	records := make([]reviewRecord, len(v.Reviews))
	for i, r := range v.Reviews {
		records[i] = reviewRecord{
			ReviewerID: r.ReviewerID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			GivenAt:    r.GivenAt,
		}
	}
	if b, err := json.Marshal(records); err == nil {
		m.Reviews = string(b)
	} else {
		m.Reviews = "[]"
	}
}

// VolunteerModelFromDomain creates a persistence model from a domain Volunteer.
func VolunteerModelFromDomain(v *volunteer.Volunteer) *VolunteerModel {
	m := &VolunteerModel{}
	m.FromDomain(v)
	return m
}
