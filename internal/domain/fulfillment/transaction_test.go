package fulfillment

import (
	"testing"
	"time"

	"github.com/foodbridge/backend/internal/domain/shared"
	"github.com/foodbridge/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T) *DonationTransaction {
	t.Helper()
	scheduled := time.Now().Add(2 * time.Hour)
	tx, err := NewDonationTransaction(uuid.New(), uuid.New(), uuid.New(), &scheduled, "Ring the bell at gate 2")
	require.NoError(t, err)
	return tx
}

func TestNewDonationTransaction(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		tx := newTestTransaction(t)
		assert.Equal(t, StatusPending, tx.Status)
		assert.True(t, tx.IsActive())
		assert.NotEqual(t, uuid.Nil, tx.ID)
	})

	t.Run("requires donation reference", func(t *testing.T) {
		_, err := NewDonationTransaction(uuid.Nil, uuid.New(), uuid.New(), nil, "")
		assert.Error(t, err)
	})

	t.Run("requires organization reference", func(t *testing.T) {
		_, err := NewDonationTransaction(uuid.New(), uuid.New(), uuid.Nil, nil, "")
		assert.Error(t, err)
	})
}

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusCollected, false},
		{StatusPending, StatusCancelled, true},
		{StatusAccepted, StatusCollected, true},
		{StatusAccepted, StatusCompleted, false},
		{StatusAccepted, StatusCancelled, true},
		{StatusCollected, StatusCompleted, true},
		{StatusCollected, StatusCancelled, true},
		{StatusCollected, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusCollected.IsTerminal())
}

func TestTransactionLifecycle(t *testing.T) {
	t.Run("full forward path", func(t *testing.T) {
		tx := newTestTransaction(t)

		require.NoError(t, tx.Accept())
		assert.Equal(t, StatusAccepted, tx.Status)
		assert.NotNil(t, tx.AcceptedAt)

		point, err := valueobject.NewGeoPoint(77.5946, 12.9716)
		require.NoError(t, err)
		require.NoError(t, tx.MarkCollected(&point))
		assert.Equal(t, StatusCollected, tx.Status)
		assert.NotNil(t, tx.ActualPickupTime)
		assert.NotNil(t, tx.PickupLocation)

		feedback, err := NewFeedback(5, "Great donor, well packed")
		require.NoError(t, err)
		require.NoError(t, tx.Complete(feedback))
		assert.Equal(t, StatusCompleted, tx.Status)
		assert.NotNil(t, tx.CompletedAt)
		assert.False(t, tx.IsActive())
	})

	t.Run("cannot skip forward", func(t *testing.T) {
		tx := newTestTransaction(t)
		err := tx.Complete(nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})

	t.Run("cannot move backwards from terminal", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.Accept())
		require.NoError(t, tx.MarkCollected(nil))
		require.NoError(t, tx.Complete(nil))
		assert.Error(t, tx.Accept())
		assert.Error(t, tx.Cancel("too late"))
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancellable from every non-terminal state", func(t *testing.T) {
		prepare := map[string]func(tx *DonationTransaction){
			"pending":  func(tx *DonationTransaction) {},
			"accepted": func(tx *DonationTransaction) { require.NoError(t, tx.Accept()) },
			"collected": func(tx *DonationTransaction) {
				require.NoError(t, tx.Accept())
				require.NoError(t, tx.MarkCollected(nil))
			},
		}
		for name, setup := range prepare {
			t.Run(name, func(t *testing.T) {
				tx := newTestTransaction(t)
				setup(tx)
				require.NoError(t, tx.Cancel("organization withdrew"))
				assert.Equal(t, StatusCancelled, tx.Status)
				assert.NotNil(t, tx.CancelledAt)
				assert.Equal(t, "organization withdrew", tx.CancelReason)
			})
		}
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.Cancel(""))
		assert.Error(t, tx.Cancel(""))
		assert.Error(t, tx.Accept())
	})
}

func TestNewFeedback(t *testing.T) {
	f, err := NewFeedback(4, "prompt pickup")
	require.NoError(t, err)
	assert.Equal(t, 4, f.Rating)
	assert.False(t, f.GivenAt.IsZero())

	for _, rating := range []int{0, 6, -1} {
		_, err := NewFeedback(rating, "")
		assert.Error(t, err, "rating %d should be rejected", rating)
	}
}

func TestGiveFeedback(t *testing.T) {
	tx := newTestTransaction(t)
	f, err := NewFeedback(3, "")
	require.NoError(t, err)

	err = tx.GiveFeedback(f)
	require.Error(t, err, "feedback before completion is rejected")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	require.NoError(t, tx.Accept())
	require.NoError(t, tx.MarkCollected(nil))
	require.NoError(t, tx.Complete(nil))
	require.NoError(t, tx.GiveFeedback(f))
	assert.Equal(t, 3, tx.Feedback.Rating)
}
