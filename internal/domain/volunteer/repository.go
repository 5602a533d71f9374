package volunteer

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence contract for the Volunteer aggregate
type Repository interface {
	// FindByID retrieves a volunteer by ID.
	// Returns shared.ErrNotFound if the volunteer does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Volunteer, error)

	// FindByUserID retrieves the volunteer profile belonging to a user account.
	// Returns shared.ErrNotFound if no profile exists.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Volunteer, error)

	// FindByAadhar retrieves a volunteer by aadhar number.
	// Returns shared.ErrNotFound if no profile exists.
	FindByAadhar(ctx context.Context, aadharNumber string) (*Volunteer, error)

	// FindAll retrieves volunteers matching the filter.
	// Supported filter keys: status, availability, city.
	FindAll(ctx context.Context, filter shared.Filter) ([]Volunteer, error)

	// Count returns the number of volunteers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists a volunteer (insert or update)
	Save(ctx context.Context, v *Volunteer) error

	// SaveWithLock persists a volunteer with optimistic concurrency control.
	// Task-board moves rely on this to stay atomic per record.
	// Returns shared.ErrConcurrencyConflict if the version check fails.
	SaveWithLock(ctx context.Context, v *Volunteer) error
}
