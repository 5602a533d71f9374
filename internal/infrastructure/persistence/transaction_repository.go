package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/foodbridge/backend/internal/domain/fulfillment"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements fulfillment.Repository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.DonationTransaction, error) {
	var model models.DonationTransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDonor finds transactions where the given user is the donor, newest first
func (r *GormTransactionRepository) FindByDonor(ctx context.Context, donorID uuid.UUID, filter shared.Filter) ([]fulfillment.DonationTransaction, error) {
	return r.findWhere(ctx, "donor_id = ?", donorID, filter)
}

// FindByOrganization finds transactions claimed by the organization, newest first
func (r *GormTransactionRepository) FindByOrganization(ctx context.Context, organizationID uuid.UUID, filter shared.Filter) ([]fulfillment.DonationTransaction, error) {
	return r.findWhere(ctx, "organization_id = ?", organizationID, filter)
}

// FindActiveByDonation returns the non-terminal transaction referencing the
// donation, or nil when none exists. The claim flow guarantees at most one.
func (r *GormTransactionRepository) FindActiveByDonation(ctx context.Context, donationID uuid.UUID) (*fulfillment.DonationTransaction, error) {
	var model models.DonationTransactionModel
	err := r.db.WithContext(ctx).
		Where("donation_id = ? AND status NOT IN ?", donationID,
			[]fulfillment.Status{fulfillment.StatusCompleted, fulfillment.StatusCancelled}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, t *fulfillment.DonationTransaction) error {
	model := models.DonationTransactionModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a transaction with optimistic locking. The guard compares
// against the version the aggregate was loaded with and writes version+1;
// zero rows affected means another writer got there first and surfaces as
// shared.ErrConcurrencyConflict.
func (r *GormTransactionRepository) SaveWithLock(ctx context.Context, t *fulfillment.DonationTransaction) error {
	model := models.DonationTransactionModelFromDomain(t)
	loadedVersion := t.Version
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.DonationTransactionModel{}).
		Where("id = ? AND version = ?", t.ID, loadedVersion).
		Updates(map[string]any{
			"status":                t.Status,
			"scheduled_pickup_time": model.ScheduledPickupTime,
			"actual_pickup_time":    model.ActualPickupTime,
			"pickup_location":       model.PickupLocation,
			"notes":                 model.Notes,
			"feedback":              model.Feedback,
			"accepted_at":           model.AcceptedAt,
			"collected_at":          model.CollectedAt,
			"completed_at":          model.CompletedAt,
			"cancelled_at":          model.CancelledAt,
			"cancel_reason":         model.CancelReason,
			"version":               loadedVersion + 1,
			"updated_at":            now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	t.Version = loadedVersion + 1
	t.UpdatedAt = now
	return nil
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyKeyFilters(r.db.WithContext(ctx).Model(&models.DonationTransactionModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTransactionRepository) findWhere(ctx context.Context, cond string, arg any, filter shared.Filter) ([]fulfillment.DonationTransaction, error) {
	var txModels []models.DonationTransactionModel
	query := r.applyKeyFilters(
		r.db.WithContext(ctx).Model(&models.DonationTransactionModel{}).Where(cond, arg),
		filter,
	)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TransactionSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]fulfillment.DonationTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

func (r *GormTransactionRepository) applyKeyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "donation_id":
			query = query.Where("donation_id = ?", value)
		case "donor_id":
			query = query.Where("donor_id = ?", value)
		case "organization_id":
			query = query.Where("organization_id = ?", value)
		}
	}
	return query
}

// Ensure GormTransactionRepository implements fulfillment.Repository
var _ fulfillment.Repository = (*GormTransactionRepository)(nil)
