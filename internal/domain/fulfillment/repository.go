package fulfillment

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence contract for the DonationTransaction aggregate
type Repository interface {
	// FindByID retrieves a transaction by its ID.
	// Returns shared.ErrNotFound if the transaction does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*DonationTransaction, error)

	// FindByDonor retrieves transactions where the given user is the donor,
	// newest first.
	FindByDonor(ctx context.Context, donorID uuid.UUID, filter shared.Filter) ([]DonationTransaction, error)

	// FindByOrganization retrieves transactions claimed by the given
	// organization, newest first.
	FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]DonationTransaction, error)

	// FindActiveByDonation returns the non-terminal transaction referencing the
	// donation, or nil when none exists.
	FindActiveByDonation(ctx context.Context, donationID uuid.UUID) (*DonationTransaction, error)

	// Save persists a transaction (insert or update)
	Save(ctx context.Context, t *DonationTransaction) error

	// SaveWithLock persists a transaction with optimistic concurrency control.
	// Returns shared.ErrConcurrencyConflict if the version check fails.
	SaveWithLock(ctx context.Context, t *DonationTransaction) error

	// Count returns the number of transactions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
