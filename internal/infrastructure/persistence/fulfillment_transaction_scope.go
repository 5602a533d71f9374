package persistence

import (
	"context"

	appfulfillment "github.com/foodbridge/backend/internal/application/fulfillment"
	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/fulfillment"
	"gorm.io/gorm"
)

// GormTransactionScope implements the fulfillment TransactionScope using GORM
// transactions. Claim and status-cascade writes run through it so the
// donation row and the transaction row commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appfulfillment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// DonationRepo returns the donation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DonationRepo() donation.Repository {
	return NewGormDonationRepository(r.tx)
}

// TransactionRepo returns the donation-transaction repository scoped to the
// current transaction.
func (r *gormTransactionalRepositories) TransactionRepo() fulfillment.Repository {
	return NewGormTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appfulfillment.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appfulfillment.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
