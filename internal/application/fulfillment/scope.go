package fulfillment

import (
	"context"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/fulfillment"
)

// TransactionScope provides transactional access to the repositories the
// lifecycle coordinator mutates together. When a function is executed within
// a scope, all repository operations belong to the same database transaction
// and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the lifecycle repositories
// bound to the current transaction. The coordinator is the only caller
// allowed to write donation status and transaction status in one unit.
type TransactionalRepositories interface {
	// DonationRepo returns the donation repository scoped to the current transaction
	DonationRepo() donation.Repository
	// TransactionRepo returns the donation-transaction repository scoped to the current transaction
	TransactionRepo() fulfillment.Repository
}

// NoOpTransactionScope runs the function directly against the given
// repositories without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	donationRepo donation.Repository
	txRepo       fulfillment.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(donationRepo donation.Repository, txRepo fulfillment.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		donationRepo: donationRepo,
		txRepo:       txRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DonationRepo returns the donation repository
func (s *NoOpTransactionScope) DonationRepo() donation.Repository {
	return s.donationRepo
}

// TransactionRepo returns the donation-transaction repository
func (s *NoOpTransactionScope) TransactionRepo() fulfillment.Repository {
	return s.txRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
