package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/volunteer"
	"github.com/foodbridge/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVolunteerRepository implements volunteer.Repository using GORM
type GormVolunteerRepository struct {
	db *gorm.DB
}

// NewGormVolunteerRepository creates a new GormVolunteerRepository
func NewGormVolunteerRepository(db *gorm.DB) *GormVolunteerRepository {
	return &GormVolunteerRepository{db: db}
}

// FindByID finds a volunteer by ID
func (r *GormVolunteerRepository) FindByID(ctx context.Context, id uuid.UUID) (*volunteer.Volunteer, error) {
	var model models.VolunteerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the volunteer profile belonging to a user account
func (r *GormVolunteerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*volunteer.Volunteer, error) {
	var model models.VolunteerModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAadhar finds a volunteer by aadhar number
func (r *GormVolunteerRepository) FindByAadhar(ctx context.Context, aadharNumber string) (*volunteer.Volunteer, error) {
	var model models.VolunteerModel
	if err := r.db.WithContext(ctx).First(&model, "aadhar_number = ?", aadharNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds volunteers matching the filter
func (r *GormVolunteerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]volunteer.Volunteer, error) {
	var volunteerModels []models.VolunteerModel
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VolunteerModel{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, VolunteerSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&volunteerModels).Error; err != nil {
		return nil, err
	}

	volunteers := make([]volunteer.Volunteer, len(volunteerModels))
	for i, model := range volunteerModels {
		volunteers[i] = *model.ToDomain()
	}
	return volunteers, nil
}

// Count counts volunteers matching the filter
func (r *GormVolunteerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VolunteerModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a volunteer
func (r *GormVolunteerRepository) Save(ctx context.Context, v *volunteer.Volunteer) error {
	model := models.VolunteerModelFromDomain(v)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a volunteer with optimistic locking. Task-board moves go
// through here so the remove-and-append stays one update. The guard compares
// against the version the aggregate was loaded with and writes version+1;
// zero rows affected surfaces as shared.ErrConcurrencyConflict.
func (r *GormVolunteerRepository) SaveWithLock(ctx context.Context, v *volunteer.Volunteer) error {
	model := models.VolunteerModelFromDomain(v)
	loadedVersion := v.Version
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&models.VolunteerModel{}).
		Where("id = ? AND version = ?", v.ID, loadedVersion).
		Updates(map[string]any{
			"phone":           model.Phone,
			"address":         model.Address,
			"city":            model.City,
			"availability":    model.Availability,
			"vehicle":         model.Vehicle,
			"status":          model.Status,
			"assigned_tasks":  model.AssignedTasks,
			"completed_tasks": model.CompletedTasks,
			"rating":          model.Rating,
			"reviews":         model.Reviews,
			"version":         loadedVersion + 1,
			"updated_at":      now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	v.Version = loadedVersion + 1
	v.UpdatedAt = now
	return nil
}

func (r *GormVolunteerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("phone ILIKE ? OR city ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "availability":
			query = query.Where("availability = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}

	return query
}

// Ensure GormVolunteerRepository implements volunteer.Repository
var _ volunteer.Repository = (*GormVolunteerRepository)(nil)
