package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spotbook/appointment-service/internal/domain"
)

func TestDistanceKm(t *testing.T) {
	origin := domain.Location{Latitude: 40.7128, Longitude: -74.0060}

	t.Run("same point is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(origin, origin))
	})

	t.Run("symmetric", func(t *testing.T) {
		other := domain.Location{Latitude: 40.7282, Longitude: -73.9942}
		assert.Equal(t, DistanceKm(origin, other), DistanceKm(other, origin))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := domain.Location{Latitude: 0, Longitude: 0}
		b := domain.Location{Latitude: 1, Longitude: 0}

		// дуга в 1 градус: 6371 * pi / 180 = 111.19, после округления 111.2
		assert.InDelta(t, 111.2, DistanceKm(a, b), 0.05)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		points := []domain.Location{
			{Latitude: 40.7282, Longitude: -73.9942},
			{Latitude: 40.6892, Longitude: -74.0445},
			{Latitude: 41.0001, Longitude: -73.5},
		}
		for _, p := range points {
			d := DistanceKm(origin, p)
			assert.InDelta(t, d, math.Round(d*10)/10, 1e-9)
		}
	})
}
