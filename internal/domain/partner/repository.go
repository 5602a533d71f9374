package partner

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrganizationRepository defines the persistence contract for Organization
type OrganizationRepository interface {
	// FindByID retrieves an organization by ID.
	// Returns shared.ErrNotFound if the organization does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)

	// FindByRegistrationNumber retrieves an organization by its unique
	// registration number. Returns shared.ErrNotFound when absent.
	FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*Organization, error)

	// FindAll retrieves organizations matching the filter.
	// Supported filter keys: type, is_verified, city.
	FindAll(ctx context.Context, filter shared.Filter) ([]Organization, error)

	// Count returns the number of organizations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists an organization (insert or update)
	Save(ctx context.Context, o *Organization) error

	// Delete removes an organization by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
