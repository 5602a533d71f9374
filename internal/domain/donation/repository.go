package donation

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence contract for the FoodDonation aggregate
type Repository interface {
	// FindByID retrieves a donation by its ID.
	// Returns shared.ErrNotFound if the donation does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*FoodDonation, error)

	// FindAll retrieves donations matching the filter.
	// Supported filter keys: status, donor_id, organization_id, city.
	FindAll(ctx context.Context, filter shared.Filter) ([]FoodDonation, error)

	// Count returns the number of donations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists a donation (insert or update)
	Save(ctx context.Context, d *FoodDonation) error

	// SaveWithLock persists a donation with optimistic concurrency control.
	// Returns shared.ErrConcurrencyConflict if the version check fails.
	SaveWithLock(ctx context.Context, d *FoodDonation) error

	// UpdateStatusIf atomically moves the donation status from `from` to `to`
	// with a single conditional update. Returns shared.ErrConflict when the
	// donation is no longer in the `from` status, shared.ErrNotFound when the
	// donation does not exist.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to Status) error

	// Delete removes a donation by ID.
	// Returns shared.ErrNotFound if the donation does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
