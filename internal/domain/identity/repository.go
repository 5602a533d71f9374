package identity

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for the User aggregate
type UserRepository interface {
	// FindByID retrieves a user by ID.
	// Returns shared.ErrNotFound if the user does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email (stored lowercased).
	// Returns shared.ErrNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail reports whether an account already uses the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll retrieves users matching the filter.
	// Supported filter keys: role, status, is_verified.
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Count returns the number of users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists a user (insert or update)
	Save(ctx context.Context, u *User) error

	// Delete removes a user by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
