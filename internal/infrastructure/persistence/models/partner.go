package models

import (
	"encoding/json"
	"time"

	"github.com/foodbridge/backend/internal/domain/partner"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrganizationModel is the persistence model for the Organization aggregate.
type OrganizationModel struct {
	AggregateModel
	Name               string                    `gorm:"type:varchar(200);not null"`
	Type               partner.OrganizationType  `gorm:"type:varchar(30);not null;index"`
	RegistrationNumber string                    `gorm:"type:varchar(100);not null;uniqueIndex"`
	OwnerUserID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ContactPerson      string                    `gorm:"type:varchar(100);not null"`
	Phone              string                    `gorm:"type:varchar(10);not null"`
	Address            valueobject.PickupAddress `gorm:"type:jsonb"`
	City               string                    `gorm:"type:varchar(100);index"`
	Capacity           decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentStorage     decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	IsVerified         bool                      `gorm:"not null;default:false;index"`
	Documents          string                    `gorm:"type:jsonb;default:'[]'"`
	Rating             decimal.Decimal           `gorm:"type:decimal(3,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// documentRecord is the serialized form of partner.Document
type documentRecord struct {
	Type       partner.DocumentType `json:"type"`
	ObjectKey  string               `json:"object_key"`
	UploadedAt time.Time            `json:"uploaded_at"`
}

// ToDomain converts the persistence model to a domain Organization.
func (m *OrganizationModel) ToDomain() *partner.Organization {
	o := &partner.Organization{
		Name:               m.Name,
		Type:               m.Type,
		RegistrationNumber: m.RegistrationNumber,
		OwnerUserID:        m.OwnerUserID,
		ContactPerson:      m.ContactPerson,
		Phone:              m.Phone,
		Address:            m.Address,
		Capacity:           m.Capacity,
		CurrentStorage:     m.CurrentStorage,
		IsVerified:         m.IsVerified,
		Rating:             m.Rating,
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)

	if m.Documents != "" {
		var records []documentRecord
		if err := json.Unmarshal([]byte(m.Documents), &records); err == nil {
			for _, r := range records {
				o.Documents = append(o.Documents, partner.Document{
					Type:       r.Type,
					ObjectKey:  r.ObjectKey,
					UploadedAt: r.UploadedAt,
				})
			}
		}
	}
	return o
}

// FromDomain populates the persistence model from a domain Organization.
func (m *OrganizationModel) FromDomain(o *partner.Organization) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.Name = o.Name
	m.Type = o.Type
	m.RegistrationNumber = o.RegistrationNumber
	m.OwnerUserID = o.OwnerUserID
	m.ContactPerson = o.ContactPerson
	m.Phone = o.Phone
	m.Address = o.Address
	m.City = o.Address.City()
	m.Capacity = o.Capacity
	m.CurrentStorage = o.CurrentStorage
	m.IsVerified = o.IsVerified
	m.Rating = o.Rating

	records := make([]documentRecord, len(o.Documents))
	for i, d := range o.Documents {
		records[i] = documentRecord{
			Type:       d.Type,
			ObjectKey:  d.ObjectKey,
			UploadedAt: d.UploadedAt,
		}
	}
	if b, err := json.Marshal(records); err == nil {
		m.Documents = string(b)
	} else {
		m.Documents = "[]"
	}
}

// OrganizationModelFromDomain creates a persistence model from a domain Organization.
func OrganizationModelFromDomain(o *partner.Organization) *OrganizationModel {
	m := &OrganizationModel{}
	m.FromDomain(o)
	return m
}
