package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDonationRepository implements donation.Repository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.FoodDonation, error) {
	var model models.FoodDonationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds donations matching the filter
func (r *GormDonationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]donation.FoodDonation, error) {
	var donationModels []models.FoodDonationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.FoodDonationModel{}), filter)

	if err := query.Find(&donationModels).Error; err != nil {
		return nil, err
	}

	donations := make([]donation.FoodDonation, len(donationModels))
	for i, model := range donationModels {
		donations[i] = *model.ToDomain()
	}
	return donations, nil
}

// Count counts donations matching the filter
func (r *GormDonationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.FoodDonationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a donation
func (r *GormDonationRepository) Save(ctx context.Context, d *donation.FoodDonation) error {
	model := models.FoodDonationModelFromDomain(d)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a donation with optimistic locking. The guard compares
// against the version the aggregate was loaded with and writes version+1;
// zero rows affected means another writer got there first and surfaces as
// shared.ErrConcurrencyConflict.
func (r *GormDonationRepository) SaveWithLock(ctx context.Context, d *donation.FoodDonation) error {
	model := models.FoodDonationModelFromDomain(d)
	loadedVersion := d.Version
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.FoodDonationModel{}).
		Where("id = ? AND version = ?", d.ID, loadedVersion).
		Updates(map[string]any{
			"title":                model.Title,
			"description":          model.Description,
			"quantity_amount":      model.QuantityAmount,
			"quantity_unit":        model.QuantityUnit,
			"expiry_date":          model.ExpiryDate,
			"pickup_address":       model.PickupAddress,
			"city":                 model.City,
			"status":               model.Status,
			"organization_id":      model.OrganizationID,
			"image_keys":           model.ImageKeys,
			"dietary_info":         model.DietaryInfo,
			"special_instructions": model.SpecialInstructions,
			"version":              loadedVersion + 1,
			"updated_at":           now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	d.Version = loadedVersion + 1
	d.UpdatedAt = now
	return nil
}

// UpdateStatusIf atomically moves the donation status from `from` to `to` with
// a single conditional update. Exactly one concurrent caller can win the
// available -> reserved edge this way.
func (r *GormDonationRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to donation.Status) error {
	result := r.db.WithContext(ctx).
		Model(&models.FoodDonationModel{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.FoodDonationModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConflict
	}
	return nil
}

// Delete deletes a donation
func (r *GormDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FoodDonationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormDonationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DonationSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies search and key filters only
func (r *GormDonationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "donor_id":
			query = query.Where("donor_id = ?", value)
		case "organization_id":
			query = query.Where("organization_id = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}

	return query
}

// Ensure GormDonationRepository implements donation.Repository
var _ donation.Repository = (*GormDonationRepository)(nil)
