package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},

		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusDeclined, false},
		{StatusApproved, StatusApproved, false},

		{StatusDeclined, StatusPending, false},
		{StatusDeclined, StatusApproved, false},
		{StatusDeclined, StatusCompleted, false},
		{StatusDeclined, StatusDeclined, false},

		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusApproved, false},
		{StatusCompleted, StatusDeclined, false},
		{StatusCompleted, StatusCompleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestAppointmentStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), "%s", s)
	}
	assert.False(t, AppointmentStatus("cancelled").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAccountCanBook(t *testing.T) {
	cases := []struct {
		name     string
		account  Account
		expected bool
	}{
		{"admin bypasses gates", Account{Role: RoleAdmin}, true},
		{"approved and paid", Account{Role: RoleUser, IsApproved: true, HasPaid: true}, true},
		{"approved but unpaid", Account{Role: RoleUser, IsApproved: true, HasPaid: false}, false},
		{"paid but not approved", Account{Role: RoleUser, IsApproved: false, HasPaid: true}, false},
		{"neither approved nor paid", Account{Role: RoleUser}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.account.CanBook())
		})
	}
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		assert.True(t, IsValidTimeSlot(slot), "%s", slot)
	}
	assert.False(t, IsValidTimeSlot("10:00 AM"))
	assert.False(t, IsValidTimeSlot(""))
}
