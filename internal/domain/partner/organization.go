package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrganizationType classifies a receiving organization
type OrganizationType string

const (
	TypeFoodBank        OrganizationType = "food_bank"
	TypeCharity         OrganizationType = "charity"
	TypeShelter         OrganizationType = "shelter"
	TypeCommunityCenter OrganizationType = "community_center"
)

// IsValid checks if the organization type is a supported value
func (t OrganizationType) IsValid() bool {
	switch t {
	case TypeFoodBank, TypeCharity, TypeShelter, TypeCommunityCenter:
		return true
	}
	return false
}

// DocumentType classifies an uploaded organization document
type DocumentType string

const (
	DocumentLicense       DocumentType = "license"
	DocumentCertification DocumentType = "certification"
	DocumentTax           DocumentType = "tax_document"
	DocumentOther         DocumentType = "other"
)

// IsValid checks if the document type is a supported value
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentLicense, DocumentCertification, DocumentTax, DocumentOther:
		return true
	}
	return false
}

// Document is an uploaded verification document stored in object storage
type Document struct {
	Type       DocumentType
	ObjectKey  string
	UploadedAt time.Time
}

var orgPhonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Organization represents a receiving organization (food bank, charity,
// shelter or community center) that claims donations.
type Organization struct {
	shared.BaseAggregateRoot
	Name               string
	Type               OrganizationType
	RegistrationNumber string
	OwnerUserID        uuid.UUID
	ContactPerson      string
	Phone              string
	Address            valueobject.PickupAddress
	Capacity           decimal.Decimal // storage capacity in kg
	CurrentStorage     decimal.Decimal
	IsVerified         bool
	Documents          []Document
	Rating             decimal.Decimal
}

// NewOrganization registers a new organization owned by a user account
func NewOrganization(ownerUserID uuid.UUID, name string, orgType OrganizationType, registrationNumber, contactPerson, phone string, address valueobject.PickupAddress, capacity decimal.Decimal) (*Organization, error) {
	name = strings.TrimSpace(name)
	registrationNumber = strings.TrimSpace(registrationNumber)
	contactPerson = strings.TrimSpace(contactPerson)

	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner user ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	if !orgType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown organization type: "+string(orgType))
	}
	if registrationNumber == "" {
		return nil, shared.NewDomainError("INVALID_REGISTRATION", "Registration number cannot be empty")
	}
	if contactPerson == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact person cannot be empty")
	}
	if !orgPhonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}
	if capacity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	return &Organization{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               name,
		Type:               orgType,
		RegistrationNumber: registrationNumber,
		OwnerUserID:        ownerUserID,
		ContactPerson:      contactPerson,
		Phone:              phone,
		Address:            address,
		Capacity:           capacity,
		CurrentStorage:     decimal.Zero,
		Rating:             decimal.Zero,
	}, nil
}

// UpdateDetails updates the organization's descriptive fields
func (o *Organization) UpdateDetails(name, contactPerson, phone string, address valueobject.PickupAddress, capacity decimal.Decimal) error {
	name = strings.TrimSpace(name)
	contactPerson = strings.TrimSpace(contactPerson)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if contactPerson == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Contact person cannot be empty")
	}
	if !orgPhonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Address is required")
	}
	if capacity.IsNegative() {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	o.Name = name
	o.ContactPerson = contactPerson
	o.Phone = phone
	o.Address = address
	o.Capacity = capacity
	o.UpdatedAt = time.Now()
	return nil
}

// AttachDocument records an uploaded verification document
func (o *Organization) AttachDocument(docType DocumentType, objectKey string) error {
	if !docType.IsValid() {
		return shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type: "+string(docType))
	}
	if objectKey == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_KEY", "Document key cannot be empty")
	}
	o.Documents = append(o.Documents, Document{
		Type:       docType,
		ObjectKey:  objectKey,
		UploadedAt: time.Now(),
	})
	o.UpdatedAt = time.Now()
	return nil
}

// Verify marks the organization as verified (admin action)
func (o *Organization) Verify() {
	o.IsVerified = true
	o.UpdatedAt = time.Now()
}

// RecordStorage adjusts the currently used storage by delta kilograms
func (o *Organization) RecordStorage(delta decimal.Decimal) error {
	next := o.CurrentStorage.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError("INVALID_STORAGE", "Current storage cannot be negative")
	}
	if o.Capacity.IsPositive() && next.GreaterThan(o.Capacity) {
		return shared.NewDomainError("CONFLICT", "Storage capacity exceeded")
	}
	o.CurrentStorage = next
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy reports whether the given user owns this organization
func (o *Organization) IsOwnedBy(userID uuid.UUID) bool {
	return o.OwnerUserID == userID
}
