package persistence

import (
	"context"
	"errors"

	"github.com/foodbridge/backend/internal/domain/partner"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrganizationRepository implements partner.OrganizationRepository using GORM
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewGormOrganizationRepository creates a new GormOrganizationRepository
func NewGormOrganizationRepository(db *gorm.DB) *GormOrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Organization, error) {
	var model models.OrganizationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRegistrationNumber finds an organization by its registration number
func (r *GormOrganizationRepository) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*partner.Organization, error) {
	var model models.OrganizationModel
	if err := r.db.WithContext(ctx).First(&model, "registration_number = ?", registrationNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds organizations matching the filter
func (r *GormOrganizationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Organization, error) {
	var orgModels []models.OrganizationModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrganizationModel{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrganizationSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&orgModels).Error; err != nil {
		return nil, err
	}

	organizations := make([]partner.Organization, len(orgModels))
	for i, model := range orgModels {
		organizations[i] = *model.ToDomain()
	}
	return organizations, nil
}

// Count counts organizations matching the filter
func (r *GormOrganizationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrganizationModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an organization
func (r *GormOrganizationRepository) Save(ctx context.Context, o *partner.Organization) error {
	model := models.OrganizationModelFromDomain(o)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an organization
func (r *GormOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrganizationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormOrganizationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR registration_number ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "is_verified":
			query = query.Where("is_verified = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}

	return query
}

// Ensure GormOrganizationRepository implements partner.OrganizationRepository
var _ partner.OrganizationRepository = (*GormOrganizationRepository)(nil)
