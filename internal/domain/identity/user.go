package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"golang.org/x/crypto/bcrypt"
)

// Role classifies what a user account may do
type Role string

const (
	RoleDonor Role = "donor"
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a supported value
func (r Role) IsValid() bool {
	switch r {
	case RoleDonor, RoleAdmin:
		return true
	}
	return false
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusLocked      UserStatus = "locked"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneDigits      = regexp.MustCompile(`^[0-9]{10}$`)
	aadharDigits     = regexp.MustCompile(`^[0-9]{12}$`)
	hasLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	hasNumberPattern = regexp.MustCompile(`[0-9]`)
)

// User represents a marketplace account. It is the aggregate root for
// registration, login and admin user management.
type User struct {
	shared.BaseAggregateRoot
	Name              string
	Email             string
	PasswordHash      string
	Phone             string
	Role              Role
	Address           valueobject.PickupAddress
	AadharNumber      string
	AadharDocumentKey string // object-storage key of the uploaded identity document
	Status            UserStatus
	IsVerified        bool
	LastLoginAt       *time.Time
	FailedAttempts    int
	LockedUntil       *time.Time
}

// NewUser registers a new account with the donor role
func NewUser(name, email, password, phone, aadharNumber string, address valueobject.PickupAddress) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if !phoneDigits.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	if !aadharDigits.MatchString(aadharNumber) {
		return nil, shared.NewDomainError("INVALID_AADHAR", "Aadhar number must be exactly 12 digits")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      passwordHash,
		Phone:             phone,
		Role:              RoleDonor,
		Address:           address,
		AadharNumber:      aadharNumber,
		Status:            UserStatusActive,
	}, nil
}

// ValidatePassword enforces the password policy: at least 6 characters
// containing at least one letter and one number.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	if !hasLetterPattern.MatchString(password) || !hasNumberPattern.MatchString(password) {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword verifies the old password before setting a new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one (admin reset)
func (u *User) SetPassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// PromoteToAdmin grants the admin role
func (u *User) PromoteToAdmin() {
	u.Role = RoleAdmin
	u.UpdatedAt = time.Now()
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AttachAadharDocument records the object-storage key of the identity document
func (u *User) AttachAadharDocument(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_KEY", "Document key cannot be empty")
	}
	u.AadharDocumentKey = key
	u.UpdatedAt = time.Now()
	return nil
}

// MarkVerified flags the account as identity-verified (admin action)
func (u *User) MarkVerified() {
	u.IsVerified = true
	u.UpdatedAt = time.Now()
}

// UpdateProfile updates the user's contact details
func (u *User) UpdateProfile(name, phone string, address valueobject.PickupAddress) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if !phoneDigits.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number must be exactly 10 digits")
	}
	u.Name = name
	u.Phone = phone
	u.Address = address
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLoginSuccess resets the failure counter and stamps the login time
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
	u.UpdatedAt = now
}

// RecordLoginFailure counts a failed attempt and locks the account once the
// limit is reached. Returns true when the account became locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	if u.FailedAttempts >= maxAttempts {
		until := time.Now().Add(lockDuration)
		u.LockedUntil = &until
		u.Status = UserStatusLocked
		return true
	}
	return false
}

// IsLocked reports whether the account is currently locked
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}
	return true
}

// CanLogin reports whether the account may authenticate right now
func (u *User) CanLogin() bool {
	return u.Status != UserStatusDeactivated && !u.IsLocked()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
