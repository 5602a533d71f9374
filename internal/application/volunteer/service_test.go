package volunteer

import (
	"context"
	"testing"
	"time"

	"github.com/foodbridge/backend/internal/domain/donation"
	"github.com/foodbridge/backend/internal/domain/identity"
	"github.com/foodbridge/backend/internal/domain/policy"
	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/foodbridge/backend/internal/domain/volunteer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVolunteerRepository is a mock implementation of volunteer.Repository
type MockVolunteerRepository struct {
	mock.Mock
}

func (m *MockVolunteerRepository) FindByID(ctx context.Context, id uuid.UUID) (*volunteer.Volunteer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*volunteer.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*volunteer.Volunteer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*volunteer.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) FindByAadhar(ctx context.Context, aadharNumber string) (*volunteer.Volunteer, error) {
	args := m.Called(ctx, aadharNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*volunteer.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]volunteer.Volunteer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]volunteer.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVolunteerRepository) Save(ctx context.Context, v *volunteer.Volunteer) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVolunteerRepository) SaveWithLock(ctx context.Context, v *volunteer.Volunteer) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockDonationRepository is a mock implementation of donation.Repository
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.FoodDonation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.FoodDonation), args.Error(1)
}

func (m *MockDonationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]donation.FoodDonation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]donation.FoodDonation), args.Error(1)
}

func (m *MockDonationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) Save(ctx context.Context, d *donation.FoodDonation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) SaveWithLock(ctx context.Context, d *donation.FoodDonation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to donation.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Test helpers

func adminActor() policy.Actor {
	return policy.Actor{UserID: uuid.New(), Role: identity.RoleAdmin}
}

func donorActor(userID uuid.UUID) policy.Actor {
	return policy.Actor{UserID: userID, Role: identity.RoleDonor}
}

func createTestVolunteer(t *testing.T) *volunteer.Volunteer {
	t.Helper()
	addr := valueobject.MustNewPickupAddress("12 Brigade Road", "Bengaluru", "Karnataka", "560001")
	v, err := volunteer.NewVolunteer(uuid.New(), "9876543210", "123456789012", volunteer.AvailabilityWeekends, volunteer.VehicleBike, addr)
	if err != nil {
		t.Fatalf("creating volunteer: %v", err)
	}
	return v
}

func createTestFoodDonation(t *testing.T) *donation.FoodDonation {
	t.Helper()
	qty := valueobject.MustNewQuantity(decimal.NewFromInt(10), valueobject.UnitKg)
	addr := valueobject.MustNewPickupAddress("42 MG Road", "Bengaluru", "Karnataka", "560001")
	d, err := donation.NewFoodDonation(uuid.New(), "Bakery surplus", "Bread and buns", qty, time.Now().Add(24*time.Hour), addr)
	if err != nil {
		t.Fatalf("creating donation: %v", err)
	}
	return d
}

// Tests for Service.Register

func TestVolunteerService_Register_Success(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	userID := uuid.New()
	req := RegisterVolunteerRequest{
		Phone:        "9876543210",
		AadharNumber: "123456789012",
		Availability: "weekends",
		Vehicle:      "bike",
		Address:      AddressInput{Street: "12 Brigade Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"},
	}

	volunteerRepo.On("FindByUserID", ctx, userID).Return(nil, shared.ErrNotFound)
	volunteerRepo.On("FindByAadhar", ctx, req.AadharNumber).Return(nil, shared.ErrNotFound)
	volunteerRepo.On("Save", ctx, mock.AnythingOfType("*volunteer.Volunteer")).Return(nil)

	result, err := service.Register(ctx, userID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, "active", result.Status)
	assert.Empty(t, result.AssignedTasks)
	volunteerRepo.AssertExpectations(t)
}

func TestVolunteerService_Register_DuplicateProfile(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	existing := createTestVolunteer(t)

	volunteerRepo.On("FindByUserID", ctx, existing.UserID).Return(existing, nil)

	result, err := service.Register(ctx, existing.UserID, RegisterVolunteerRequest{
		Phone:        "9876543210",
		AadharNumber: "123456789012",
		Availability: "weekends",
		Vehicle:      "bike",
		Address:      AddressInput{Street: "12 Brigade Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"},
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	volunteerRepo.AssertNotCalled(t, "Save")
}

func TestVolunteerService_Register_DuplicateAadhar(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	userID := uuid.New()
	other := createTestVolunteer(t)

	volunteerRepo.On("FindByUserID", ctx, userID).Return(nil, shared.ErrNotFound)
	volunteerRepo.On("FindByAadhar", ctx, "123456789012").Return(other, nil)

	result, err := service.Register(ctx, userID, RegisterVolunteerRequest{
		Phone:        "9876543210",
		AadharNumber: "123456789012",
		Availability: "weekends",
		Vehicle:      "bike",
		Address:      AddressInput{Street: "12 Brigade Road", City: "Bengaluru", State: "Karnataka", Pincode: "560001"},
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

// Tests for Service.AssignTask

func TestVolunteerService_AssignTask_Success(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)
	d := createTestFoodDonation(t)

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)
	donationRepo.On("FindByID", ctx, d.ID).Return(d, nil)
	volunteerRepo.On("SaveWithLock", ctx, v).Return(nil)

	result, err := service.AssignTask(ctx, adminActor(), v.ID, d.ID)

	assert.NoError(t, err)
	assert.Contains(t, result.AssignedTasks, d.ID)
	assert.Empty(t, result.CompletedTasks)
	volunteerRepo.AssertExpectations(t)
	donationRepo.AssertExpectations(t)
}

func TestVolunteerService_AssignTask_NonAdminForbidden(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)

	result, err := service.AssignTask(ctx, donorActor(v.UserID), v.ID, uuid.New())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	volunteerRepo.AssertNotCalled(t, "FindByID")
}

func TestVolunteerService_AssignTask_AlreadyAssigned(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)
	d := createTestFoodDonation(t)
	assert.NoError(t, v.AssignTask(d.ID))

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)
	donationRepo.On("FindByID", ctx, d.ID).Return(d, nil)

	result, err := service.AssignTask(ctx, adminActor(), v.ID, d.ID)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
	volunteerRepo.AssertNotCalled(t, "SaveWithLock")
}

func TestVolunteerService_AssignTask_DonationNotFound(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)
	donationID := uuid.New()

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)
	donationRepo.On("FindByID", ctx, donationID).Return(nil, shared.ErrNotFound)

	result, err := service.AssignTask(ctx, adminActor(), v.ID, donationID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	volunteerRepo.AssertNotCalled(t, "SaveWithLock")
}

// Tests for Service.CompleteTask

func TestVolunteerService_CompleteTask_MovesTask(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)
	d := createTestFoodDonation(t)
	assert.NoError(t, v.AssignTask(d.ID))

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)
	volunteerRepo.On("SaveWithLock", ctx, v).Return(nil)

	result, err := service.CompleteTask(ctx, donorActor(v.UserID), v.ID, d.ID)

	assert.NoError(t, err)
	assert.NotContains(t, result.AssignedTasks, d.ID)
	assert.Contains(t, result.CompletedTasks, d.ID)
	volunteerRepo.AssertExpectations(t)
}

func TestVolunteerService_CompleteTask_OtherUserForbidden(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)
	d := createTestFoodDonation(t)
	assert.NoError(t, v.AssignTask(d.ID))

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)

	result, err := service.CompleteTask(ctx, donorActor(uuid.New()), v.ID, d.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	volunteerRepo.AssertNotCalled(t, "SaveWithLock")
}

func TestVolunteerService_CompleteTask_AdminForbidden(t *testing.T) {
	// Completion belongs to the owning volunteer alone; even an admin
	// cannot complete on their behalf.
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)
	d := createTestFoodDonation(t)
	assert.NoError(t, v.AssignTask(d.ID))

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)

	result, err := service.CompleteTask(ctx, adminActor(), v.ID, d.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestVolunteerService_CompleteTask_NotAssigned(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)

	result, err := service.CompleteTask(ctx, donorActor(v.UserID), v.ID, uuid.New())

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	volunteerRepo.AssertNotCalled(t, "SaveWithLock")
}

// Tests for Service.ChangeStatus

func TestVolunteerService_ChangeStatus_AdminOnly(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)

	result, err := service.ChangeStatus(ctx, donorActor(v.UserID), v.ID, "suspended")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestVolunteerService_ChangeStatus_Suspend(t *testing.T) {
	volunteerRepo := new(MockVolunteerRepository)
	donationRepo := new(MockDonationRepository)
	service := NewService(volunteerRepo, donationRepo, nil)

	ctx := context.Background()
	v := createTestVolunteer(t)

	volunteerRepo.On("FindByID", ctx, v.ID).Return(v, nil)
	volunteerRepo.On("SaveWithLock", ctx, v).Return(nil)

	result, err := service.ChangeStatus(ctx, adminActor(), v.ID, "suspended")

	assert.NoError(t, err)
	assert.Equal(t, "suspended", result.Status)
	volunteerRepo.AssertExpectations(t)
}
