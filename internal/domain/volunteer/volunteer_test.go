package volunteer

import (
	"testing"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVolunteer(t *testing.T) *Volunteer {
	t.Helper()
	v, err := NewVolunteer(
		uuid.New(),
		"9876543210",
		"123456789012",
		AvailabilityWeekends,
		VehicleBike,
		valueobject.MustNewPickupAddress("7 Church Street", "Bengaluru", "Karnataka", "560001"),
	)
	require.NoError(t, err)
	return v
}

func TestNewVolunteer(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		v := newTestVolunteer(t)
		assert.Equal(t, StatusActive, v.Status)
		assert.Empty(t, v.AssignedTasks)
		assert.Empty(t, v.CompletedTasks)
		assert.True(t, v.Rating.IsZero())
	})

	t.Run("phone must be ten digits", func(t *testing.T) {
		for _, phone := range []string{"", "12345", "98765432101", "987654321a"} {
			_, err := NewVolunteer(uuid.New(), phone, "123456789012", AvailabilityFullTime, VehicleNone,
				valueobject.MustNewPickupAddress("7 Church Street", "Bengaluru", "Karnataka", "560001"))
			assert.Error(t, err, "phone %q should be rejected", phone)
		}
	})

	t.Run("aadhar must be twelve digits", func(t *testing.T) {
		_, err := NewVolunteer(uuid.New(), "9876543210", "12345", AvailabilityFullTime, VehicleNone,
			valueobject.MustNewPickupAddress("7 Church Street", "Bengaluru", "Karnataka", "560001"))
		assert.Error(t, err)
	})

	t.Run("unknown availability", func(t *testing.T) {
		_, err := NewVolunteer(uuid.New(), "9876543210", "123456789012", Availability("nights"), VehicleNone,
			valueobject.MustNewPickupAddress("7 Church Street", "Bengaluru", "Karnataka", "560001"))
		assert.Error(t, err)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := NewVolunteer(uuid.New(), "9876543210", "123456789012", AvailabilityFullTime, Vehicle("truck"),
			valueobject.MustNewPickupAddress("7 Church Street", "Bengaluru", "Karnataka", "560001"))
		assert.Error(t, err)
	})
}

func TestAssignTask(t *testing.T) {
	t.Run("appends to assigned list", func(t *testing.T) {
		v := newTestVolunteer(t)
		donationID := uuid.New()
		require.NoError(t, v.AssignTask(donationID))
		assert.True(t, v.HasAssignedTask(donationID))
		assert.Equal(t, []uuid.UUID{donationID}, v.AssignedTasks)
	})

	t.Run("duplicate assignment conflicts", func(t *testing.T) {
		v := newTestVolunteer(t)
		donationID := uuid.New()
		require.NoError(t, v.AssignTask(donationID))

		err := v.AssignTask(donationID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Len(t, v.AssignedTasks, 1)
	})

	t.Run("completed task cannot be reassigned", func(t *testing.T) {
		v := newTestVolunteer(t)
		donationID := uuid.New()
		require.NoError(t, v.AssignTask(donationID))
		require.NoError(t, v.CompleteTask(donationID))

		err := v.AssignTask(donationID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("suspended volunteer cannot take tasks", func(t *testing.T) {
		v := newTestVolunteer(t)
		require.NoError(t, v.ChangeStatus(StatusSuspended))
		assert.Error(t, v.AssignTask(uuid.New()))
	})
}

func TestCompleteTask(t *testing.T) {
	t.Run("moves task between lists", func(t *testing.T) {
		v := newTestVolunteer(t)
		first, second := uuid.New(), uuid.New()
		require.NoError(t, v.AssignTask(first))
		require.NoError(t, v.AssignTask(second))

		require.NoError(t, v.CompleteTask(first))
		assert.False(t, v.HasAssignedTask(first))
		assert.True(t, v.HasCompletedTask(first))
		assert.True(t, v.HasAssignedTask(second))
		assert.Equal(t, []uuid.UUID{first}, v.CompletedTasks)
	})

	t.Run("second completion fails with invalid state", func(t *testing.T) {
		v := newTestVolunteer(t)
		donationID := uuid.New()
		require.NoError(t, v.AssignTask(donationID))
		require.NoError(t, v.CompleteTask(donationID))

		err := v.CompleteTask(donationID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Len(t, v.CompletedTasks, 1, "completed list must not grow twice")
	})

	t.Run("unassigned task fails with invalid state", func(t *testing.T) {
		v := newTestVolunteer(t)
		err := v.CompleteTask(uuid.New())
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	v := newTestVolunteer(t)
	addr := valueobject.MustNewPickupAddress("22 Residency Road", "Bengaluru", "Karnataka", "560025")
	require.NoError(t, v.UpdateProfile("9000000001", AvailabilityPartTime, VehicleCar, addr))
	assert.Equal(t, "9000000001", v.Phone)
	assert.Equal(t, AvailabilityPartTime, v.Availability)
	assert.Equal(t, VehicleCar, v.Vehicle)

	assert.Error(t, v.UpdateProfile("bad", AvailabilityPartTime, VehicleCar, addr))
}

func TestAddReview(t *testing.T) {
	v := newTestVolunteer(t)
	require.NoError(t, v.AddReview(uuid.New(), 5, "very reliable"))
	require.NoError(t, v.AddReview(uuid.New(), 4, ""))
	assert.Equal(t, "4.5", v.Rating.String())
	assert.Len(t, v.Reviews, 2)

	assert.Error(t, v.AddReview(uuid.New(), 0, ""))
	assert.Error(t, v.AddReview(uuid.New(), 6, ""))
}
