package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	t.Run("valid quantity", func(t *testing.T) {
		q, err := NewQuantity(decimal.NewFromFloat(2.5), UnitKg)
		require.NoError(t, err)
		assert.Equal(t, "2.5", q.Amount().String())
		assert.Equal(t, UnitKg, q.Unit())
		assert.Equal(t, "2.5 kg", q.String())
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewQuantity(decimal.Zero, UnitPlates)
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := NewQuantity(decimal.NewFromInt(-3), UnitPieces)
		assert.Error(t, err)
	})

	t.Run("unknown unit rejected", func(t *testing.T) {
		_, err := NewQuantity(decimal.NewFromInt(1), Unit("barrels"))
		assert.Error(t, err)
	})
}

func TestNewQuantityFromFloat(t *testing.T) {
	q, err := NewQuantityFromFloat(10, UnitPlates)
	require.NoError(t, err)
	assert.Equal(t, "10 plates", q.String())
}

func TestQuantityEquals(t *testing.T) {
	a := MustNewQuantity(decimal.NewFromInt(5), UnitLiters)
	b := MustNewQuantity(decimal.RequireFromString("5.0"), UnitLiters)
	c := MustNewQuantity(decimal.NewFromInt(5), UnitKg)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestQuantityIsZero(t *testing.T) {
	assert.True(t, Quantity{}.IsZero())
	assert.False(t, MustNewQuantity(decimal.NewFromInt(1), UnitKg).IsZero())
}
