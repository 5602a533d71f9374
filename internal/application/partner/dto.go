package partner

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/partner"
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

// CreateOrganizationRequest represents a request to register an organization
type CreateOrganizationRequest struct {
	Name               string          `json:"name" binding:"required,min=1,max=200"`
	Type               string          `json:"type" binding:"required,oneof=food_bank charity shelter community_center"`
	RegistrationNumber string          `json:"registration_number" binding:"required,min=1,max=100"`
	ContactPerson      string          `json:"contact_person" binding:"required,min=1,max=100"`
	Phone              string          `json:"phone" binding:"required,len=10,numeric"`
	Address            AddressInput    `json:"address" binding:"required"`
	Capacity           decimal.Decimal `json:"capacity" binding:"required"`
}

// UpdateOrganizationRequest represents a request to update an organization
type UpdateOrganizationRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	ContactPerson string          `json:"contact_person" binding:"required,min=1,max=100"`
	Phone         string          `json:"phone" binding:"required,len=10,numeric"`
	Address       AddressInput    `json:"address" binding:"required"`
	Capacity      decimal.Decimal `json:"capacity" binding:"required"`
}

// AttachDocumentRequest represents a verification document upload reference
type AttachDocumentRequest struct {
	Type      string `json:"type" binding:"required,oneof=license certification tax_document other"`
	ObjectKey string `json:"object_key" binding:"required,min=1,max=500"`
}

// OrganizationListFilter represents filter options for organization listings
type OrganizationListFilter struct {
	Type       string `form:"type" binding:"omitempty,oneof=food_bank charity shelter community_center"`
	IsVerified *bool  `form:"is_verified"`
	City       string `form:"city"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DocumentResponse represents a verification document in API responses
type DocumentResponse struct {
	Type       string    `json:"type"`
	ObjectKey  string    `json:"object_key"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// OrganizationResponse represents an organization in API responses
type OrganizationResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Type               string             `json:"type"`
	RegistrationNumber string             `json:"registration_number"`
	OwnerUserID        uuid.UUID          `json:"owner_user_id"`
	ContactPerson      string             `json:"contact_person"`
	Phone              string             `json:"phone"`
	Street             string             `json:"street"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Pincode            string             `json:"pincode"`
	Capacity           decimal.Decimal    `json:"capacity"`
	CurrentStorage     decimal.Decimal    `json:"current_storage"`
	IsVerified         bool               `json:"is_verified"`
	Documents          []DocumentResponse `json:"documents,omitempty"`
	Rating             decimal.Decimal    `json:"rating"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ToOrganizationResponse converts a domain organization to its API representation
func ToOrganizationResponse(o *partner.Organization) OrganizationResponse {
	docs := make([]DocumentResponse, len(o.Documents))
	for i, d := range o.Documents {
		docs[i] = DocumentResponse{
			Type:       string(d.Type),
			ObjectKey:  d.ObjectKey,
			UploadedAt: d.UploadedAt,
		}
	}
	return OrganizationResponse{
		ID:                 o.ID,
		Name:               o.Name,
		Type:               string(o.Type),
		RegistrationNumber: o.RegistrationNumber,
		OwnerUserID:        o.OwnerUserID,
		ContactPerson:      o.ContactPerson,
		Phone:              o.Phone,
		Street:             o.Address.Street(),
		City:               o.Address.City(),
		State:              o.Address.State(),
		Pincode:            o.Address.Pincode(),
		Capacity:           o.Capacity,
		CurrentStorage:     o.CurrentStorage,
		IsVerified:         o.IsVerified,
		Documents:          docs,
		Rating:             o.Rating,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
