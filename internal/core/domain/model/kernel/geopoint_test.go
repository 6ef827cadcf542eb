package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		pt, err := kernel.NewGeoPoint(18.615, 73.745)
		require.NoError(t, err)
		assert.InDelta(t, 18.615, pt.Lat(), 1e-9)
		assert.InDelta(t, 73.745, pt.Lng(), 1e-9)
		require.NoError(t, pt.Validate())
	})

	t.Run("out of range coordinates", func(t *testing.T) {
		testCases := []struct {
			name string
			lat  float64
			lng  float64
		}{
			{"latitude too high", 90.1, 0},
			{"latitude too low", -90.1, 0},
			{"longitude too high", 0, 180.1},
			{"longitude too low", 0, -180.1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lng)
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var pt kernel.GeoPoint
		require.Error(t, pt.Validate())
	})
}

func TestGeoPoint_GreatCircleDistanceKm(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		pt, err := kernel.NewGeoPoint(18.52, 73.85)
		require.NoError(t, err)

		d, err := pt.GreatCircleDistanceKm(pt)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("known distance", func(t *testing.T) {
		// One degree of latitude is roughly 111.19 km on a 6371 km sphere.
		a, err := kernel.NewGeoPoint(18.0, 73.0)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(19.0, 73.0)
		require.NoError(t, err)

		d, err := a.GreatCircleDistanceKm(b)
		require.NoError(t, err)
		assert.InDelta(t, 111.19, d, 0.1)
	})

	t.Run("symmetric", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(18.61, 73.74)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(18.52, 73.85)
		require.NoError(t, err)

		d1, err := a.GreatCircleDistanceKm(b)
		require.NoError(t, err)
		d2, err := b.GreatCircleDistanceKm(a)
		require.NoError(t, err)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("unconstructed point is rejected", func(t *testing.T) {
		pt, err := kernel.NewGeoPoint(18.61, 73.74)
		require.NoError(t, err)

		var zero kernel.GeoPoint
		_, err = pt.GreatCircleDistanceKm(zero)
		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(18.61, 73.74)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(18.61, 73.74)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(18.62, 73.74)
	require.NoError(t, err)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}
