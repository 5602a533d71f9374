package identity

import (
	"time"

	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// AddressInput represents an address in requests
type AddressInput struct {
	Street  string `json:"street" binding:"omitempty,max=200"`
	City    string `json:"city" binding:"omitempty,max=100"`
	State   string `json:"state" binding:"omitempty,max=100"`
	Pincode string `json:"pincode" binding:"omitempty,len=6,numeric"`
}

// RegisterRequest represents an account registration
type RegisterRequest struct {
	Name         string        `json:"name" binding:"required,min=1,max=100"`
	Email        string        `json:"email" binding:"required,email"`
	Password     string        `json:"password" binding:"required,min=6,max=72"`
	Phone        string        `json:"phone" binding:"required,len=10,numeric"`
	AadharNumber string        `json:"aadhar_number" binding:"required,len=12,numeric"`
	Address      *AddressInput `json:"address"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for a token renewal
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change by the account owner
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// UpdateProfileRequest represents a profile update by the account owner
type UpdateProfileRequest struct {
	Name    string        `json:"name" binding:"required,min=1,max=100"`
	Phone   string        `json:"phone" binding:"required,len=10,numeric"`
	Address *AddressInput `json:"address"`
}

// UserListFilter represents filter options for admin user listings
type UserListFilter struct {
	Role       string `form:"role" binding:"omitempty,oneof=donor admin"`
	Status     string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
	IsVerified *bool  `form:"is_verified"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// UserResponse represents a user account in API responses. The password hash
// and aadhar number never leave the service.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	IsVerified  bool       `json:"is_verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LoginResponse bundles the authenticated user with their token pair
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		Status:      string(u.Status),
		IsVerified:  u.IsVerified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
