package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
)

func TestStaticGeocoder(t *testing.T) {
	origin := domain.Location{
		Address:   "123 Business St, City, Country",
		Latitude:  40.7128,
		Longitude: -74.0060,
	}
	geocoder := NewStaticGeocoder(origin, 25)
	ctx := context.Background()

	t.Run("deterministic for the same address", func(t *testing.T) {
		first, err := geocoder.Resolve(ctx, "456 Customer Ave, City, Country")
		require.NoError(t, err)
		second, err := geocoder.Resolve(ctx, "456 Customer Ave, City, Country")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("different addresses resolve to different points", func(t *testing.T) {
		a, err := geocoder.Resolve(ctx, "456 Customer Ave, City, Country")
		require.NoError(t, err)
		b, err := geocoder.Resolve(ctx, "789 Ocean Blvd, City, Country")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("resolved point stays within the service radius", func(t *testing.T) {
		addresses := []string{
			"456 Customer Ave, City, Country",
			"789 Ocean Blvd, City, Country",
			"1 Short St",
			"Very Long Street Name With Many Words 100500, Somewhere",
		}
		for _, addr := range addresses {
			loc, err := geocoder.Resolve(ctx, addr)
			require.NoError(t, err)

			// допуск на округление до 0.1 км
			assert.LessOrEqual(t, DistanceKm(origin, *loc), 25.0+0.1)
			assert.Equal(t, addr, loc.Address)
		}
	})

	t.Run("empty address is rejected", func(t *testing.T) {
		_, err := geocoder.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyAddress)
	})
}
