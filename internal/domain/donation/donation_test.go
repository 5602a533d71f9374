package donation

import (
	"testing"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDonation(t *testing.T) *FoodDonation {
	t.Helper()
	d, err := NewFoodDonation(
		uuid.New(),
		"Cooked rice and dal",
		"Leftover from a wedding, packed in sealed containers",
		valueobject.MustNewQuantity(decimal.NewFromInt(40), valueobject.UnitPlates),
		time.Now().Add(12*time.Hour),
		valueobject.MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001"),
	)
	require.NoError(t, err)
	return d
}

func TestNewFoodDonation(t *testing.T) {
	t.Run("valid donation starts available", func(t *testing.T) {
		d := newTestDonation(t)
		assert.Equal(t, StatusAvailable, d.Status)
		assert.True(t, d.IsClaimable())
		assert.NotEqual(t, uuid.Nil, d.ID)
		assert.Equal(t, 1, d.Version)
	})

	t.Run("missing donor", func(t *testing.T) {
		_, err := NewFoodDonation(uuid.Nil, "Rice", "desc",
			valueobject.MustNewQuantity(decimal.NewFromInt(1), valueobject.UnitKg),
			time.Now().Add(time.Hour),
			valueobject.MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001"))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DONOR", domainErr.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := NewFoodDonation(uuid.New(), "", "desc",
			valueobject.MustNewQuantity(decimal.NewFromInt(1), valueobject.UnitKg),
			time.Now().Add(time.Hour),
			valueobject.MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001"))
		assert.Error(t, err)
	})

	t.Run("missing quantity", func(t *testing.T) {
		_, err := NewFoodDonation(uuid.New(), "Rice", "desc",
			valueobject.Quantity{},
			time.Now().Add(time.Hour),
			valueobject.MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001"))
		assert.Error(t, err)
	})

	t.Run("missing pickup address", func(t *testing.T) {
		_, err := NewFoodDonation(uuid.New(), "Rice", "desc",
			valueobject.MustNewQuantity(decimal.NewFromInt(1), valueobject.UnitKg),
			time.Now().Add(time.Hour),
			valueobject.EmptyPickupAddress())
		assert.Error(t, err)
	})
}

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusAvailable, StatusReserved, true},
		{StatusAvailable, StatusCompleted, false},
		{StatusReserved, StatusAvailable, true}, // cancellation revert
		{StatusReserved, StatusCollected, true},
		{StatusReserved, StatusCompleted, true},
		{StatusCollected, StatusCompleted, true},
		{StatusCollected, StatusAvailable, false},
		{StatusCompleted, StatusDelivered, true},
		{StatusCompleted, StatusAvailable, false},
		{StatusDelivered, StatusCompleted, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusAvailable.IsValid())
	assert.True(t, StatusDelivered.IsValid())
	assert.False(t, Status("pending").IsValid())
}

func TestChangeStatus(t *testing.T) {
	t.Run("legal transition", func(t *testing.T) {
		d := newTestDonation(t)
		require.NoError(t, d.ChangeStatus(StatusReserved))
		assert.Equal(t, StatusReserved, d.Status)
		assert.False(t, d.IsClaimable())
	})

	t.Run("illegal transition", func(t *testing.T) {
		d := newTestDonation(t)
		err := d.ChangeStatus(StatusCompleted)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		assert.Equal(t, StatusAvailable, d.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		d := newTestDonation(t)
		assert.Error(t, d.ChangeStatus(Status("recycled")))
	})

	t.Run("cancellation revert makes donation claimable again", func(t *testing.T) {
		d := newTestDonation(t)
		require.NoError(t, d.ChangeStatus(StatusReserved))
		require.NoError(t, d.ChangeStatus(StatusAvailable))
		assert.True(t, d.IsClaimable())
	})
}

func TestConfirmDelivered(t *testing.T) {
	d := newTestDonation(t)
	require.NoError(t, d.ChangeStatus(StatusReserved))
	require.NoError(t, d.ChangeStatus(StatusCompleted))
	require.NoError(t, d.ConfirmDelivered())
	assert.Equal(t, StatusDelivered, d.Status)
	assert.True(t, d.Status.IsTerminal())

	assert.Error(t, d.ConfirmDelivered())
}

func TestUpdateDetails(t *testing.T) {
	d := newTestDonation(t)

	newAddr := valueobject.MustNewPickupAddress("4 Brigade Road", "Bengaluru", "Karnataka", "560025")
	newQty := valueobject.MustNewQuantity(decimal.NewFromInt(25), valueobject.UnitPlates)
	expiry := time.Now().Add(6 * time.Hour)

	require.NoError(t, d.UpdateDetails("Veg biryani", "Freshly packed", newQty, expiry, newAddr))
	assert.Equal(t, "Veg biryani", d.Title)
	assert.True(t, d.Quantity.Equals(newQty))
	assert.True(t, d.PickupAddress.Equals(newAddr))

	assert.Error(t, d.UpdateDetails("", "desc", newQty, expiry, newAddr))
}

func TestAttachImage(t *testing.T) {
	d := newTestDonation(t)
	require.NoError(t, d.AttachImage("donations/abc/1.jpg"))
	require.NoError(t, d.AttachImage("donations/abc/2.jpg"))
	assert.Len(t, d.ImageKeys, 2)
	assert.Error(t, d.AttachImage(""))
}

func TestIsExpired(t *testing.T) {
	d := newTestDonation(t)
	assert.False(t, d.IsExpired(time.Now()))
	assert.True(t, d.IsExpired(d.ExpiryDate.Add(time.Minute)))
}
