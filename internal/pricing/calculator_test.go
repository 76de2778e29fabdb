package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
)

func TestCalculate(t *testing.T) {
	service := &domain.Service{
		ID:         "svc-1",
		Name:       "Home Cleaning",
		BasePrice:  50,
		PricePerKm: 2,
	}

	t.Run("base price plus distance component", func(t *testing.T) {
		price, err := Calculate(service, 5.2)
		require.NoError(t, err)
		assert.InDelta(t, 60.4, price, 1e-9)
	})

	t.Run("zero distance charges base price only", func(t *testing.T) {
		price, err := Calculate(service, 0)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, price, 1e-9)
	})

	t.Run("price grows monotonically with distance", func(t *testing.T) {
		prev := -1.0
		for _, d := range []float64{0, 1.5, 3.3, 10, 42.7} {
			price, err := Calculate(service, d)
			require.NoError(t, err)
			assert.Greater(t, price, prev)
			prev = price
		}
	})

	t.Run("free per-km rate keeps price flat", func(t *testing.T) {
		flat := &domain.Service{BasePrice: 75, PricePerKm: 0}

		near, err := Calculate(flat, 1)
		require.NoError(t, err)
		far, err := Calculate(flat, 100)
		require.NoError(t, err)

		assert.Equal(t, near, far)
	})

	t.Run("nil service is rejected", func(t *testing.T) {
		_, err := Calculate(nil, 5)
		assert.ErrorIs(t, err, ErrServiceNotResolved)
	})

	t.Run("negative distance is rejected", func(t *testing.T) {
		_, err := Calculate(service, -0.1)
		assert.ErrorIs(t, err, ErrNegativeDistance)
	})
}
