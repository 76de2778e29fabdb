package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
)

func TestToDomainFilter(t *testing.T) {
	t.Run("empty request matches everything", func(t *testing.T) {
		filter, err := (&ListAppointmentsRequest{}).ToDomainFilter()
		require.NoError(t, err)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.Date)
		assert.Nil(t, filter.ServiceID)
	})

	t.Run("all is treated as no filter", func(t *testing.T) {
		filter, err := (&ListAppointmentsRequest{Status: "all", ServiceID: "all"}).ToDomainFilter()
		require.NoError(t, err)
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.ServiceID)
	})

	t.Run("combined filters", func(t *testing.T) {
		filter, err := (&ListAppointmentsRequest{
			Status:    "pending",
			Date:      "2026-09-15",
			ServiceID: "svc-1",
		}).ToDomainFilter()
		require.NoError(t, err)

		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.StatusPending, *filter.Status)
		require.NotNil(t, filter.Date)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *filter.Date)
		require.NotNil(t, filter.ServiceID)
		assert.Equal(t, "svc-1", *filter.ServiceID)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := (&ListAppointmentsRequest{Status: "cancelled"}).ToDomainFilter()
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := (&ListAppointmentsRequest{Date: "15-09-2026"}).ToDomainFilter()
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}
