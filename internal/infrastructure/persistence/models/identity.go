package models

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	AggregateModel
	Name              string                    `gorm:"type:varchar(100);not null"`
	Email             string                    `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string                    `gorm:"type:varchar(100);not null"`
	Phone             string                    `gorm:"type:varchar(10);not null"`
	Role              identity.Role             `gorm:"type:varchar(20);not null;default:'donor';index"`
	Address           valueobject.PickupAddress `gorm:"type:jsonb"`
	AadharNumber      string                    `gorm:"type:varchar(12);not null"`
	AadharDocumentKey string                    `gorm:"type:varchar(500)"`
	Status            identity.UserStatus       `gorm:"type:varchar(20);not null;default:'active';index"`
	IsVerified        bool                      `gorm:"not null;default:false;index"`
	LastLoginAt       *time.Time
	FailedAttempts    int                       `gorm:"not null;default:0"`
	LockedUntil       *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Phone:             m.Phone,
		Role:              m.Role,
		Address:           m.Address,
		AadharNumber:      m.AadharNumber,
		AadharDocumentKey: m.AadharDocumentKey,
		Status:            m.Status,
		IsVerified:        m.IsVerified,
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
	}
	m.PopulateAggregateRoot(&u.BaseAggregateRoot)
	return u
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Phone = u.Phone
	m.Role = u.Role
	m.Address = u.Address
	m.AadharNumber = u.AadharNumber
	m.AadharDocumentKey = u.AadharDocumentKey
	m.Status = u.Status
	m.IsVerified = u.IsVerified
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a persistence model from a domain User.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
