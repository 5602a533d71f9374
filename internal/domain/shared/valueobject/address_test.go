package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPickupAddress(t *testing.T) {
	t.Run("valid address", func(t *testing.T) {
		addr, err := NewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001")
		require.NoError(t, err)
		assert.Equal(t, "12 MG Road", addr.Street())
		assert.Equal(t, "Bengaluru", addr.City())
		assert.Equal(t, "Karnataka", addr.State())
		assert.Equal(t, "560001", addr.Pincode())
		assert.False(t, addr.IsEmpty())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		addr, err := NewPickupAddress("  12 MG Road ", " Bengaluru ", " Karnataka ", " 560001 ")
		require.NoError(t, err)
		assert.Equal(t, "12 MG Road", addr.Street())
		assert.Equal(t, "560001", addr.Pincode())
	})

	t.Run("missing street", func(t *testing.T) {
		_, err := NewPickupAddress("", "Bengaluru", "Karnataka", "560001")
		assert.Error(t, err)
	})

	t.Run("missing city", func(t *testing.T) {
		_, err := NewPickupAddress("12 MG Road", "", "Karnataka", "560001")
		assert.Error(t, err)
	})

	t.Run("missing state", func(t *testing.T) {
		_, err := NewPickupAddress("12 MG Road", "Bengaluru", "", "560001")
		assert.Error(t, err)
	})

	t.Run("pincode must be six digits", func(t *testing.T) {
		for _, pincode := range []string{"", "12345", "1234567", "56000a"} {
			_, err := NewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", pincode)
			assert.Error(t, err, "pincode %q should be rejected", pincode)
		}
	})
}

func TestPickupAddressFullAddress(t *testing.T) {
	addr := MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001")
	assert.Equal(t, "12 MG Road, Bengaluru, Karnataka, 560001", addr.FullAddress())
	assert.Equal(t, "", EmptyPickupAddress().FullAddress())
}

func TestPickupAddressEquals(t *testing.T) {
	a := MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001")
	b := MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001")
	c := MustNewPickupAddress("14 MG Road", "Bengaluru", "Karnataka", "560001")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestPickupAddressJSONRoundTrip(t *testing.T) {
	addr := MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001")

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"}`, string(data))

	var decoded PickupAddress
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, addr.Equals(decoded))
}

func TestPickupAddressScan(t *testing.T) {
	t.Run("scans JSON bytes", func(t *testing.T) {
		var addr PickupAddress
		err := addr.Scan([]byte(`{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"}`))
		require.NoError(t, err)
		assert.Equal(t, "Bengaluru", addr.City())
	})

	t.Run("nil resets to empty", func(t *testing.T) {
		addr := MustNewPickupAddress("12 MG Road", "Bengaluru", "Karnataka", "560001")
		require.NoError(t, addr.Scan(nil))
		assert.True(t, addr.IsEmpty())
	})

	t.Run("empty address stores NULL", func(t *testing.T) {
		v, err := EmptyPickupAddress().Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}
