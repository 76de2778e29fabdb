package domain

import "time"

// AppointmentStatus represents the status of an appointment request
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusDeclined  AppointmentStatus = "declined"
	StatusCompleted AppointmentStatus = "completed"
)

// CanTransitionTo reports whether the transition from s to next is allowed.
// The lifecycle is pending -> approved | declined, approved -> completed.
// Declined and completed are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusDeclined
	case StatusApproved:
		return next == StatusCompleted
	case StatusDeclined, StatusCompleted:
		return false
	default:
		return false
	}
}

// IsTerminal returns true if no transition is defined out of the status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusDeclined || s == StatusCompleted
}

// IsValid returns true if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusCompleted:
		return true
	default:
		return false
	}
}

// Appointment represents a single booking request in the system
type Appointment struct {
	ID        string
	ServiceID string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Date     time.Time // calendar date of the appointment
	TimeSlot string    // one of the fixed time slot labels
	Status   AppointmentStatus

	Location   Location
	DistanceKm float64 // derived at creation, never recomputed

	// Price is computed once at creation time as
	// service.BasePrice + DistanceKm * service.PricePerKm
	// and is never mutated by status transitions.
	Price float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAwaitingDecision returns true while the appointment waits for an admin decision
func (a *Appointment) IsAwaitingDecision() bool {
	return a.Status == StatusPending
}

// IsPayable returns true if the appointment is approved and awaits the booking payment
func (a *Appointment) IsPayable() bool {
	return a.Status == StatusApproved
}

// AppointmentFilter фильтр для получения записей
// Все поля опциональны, применяются по AND
type AppointmentFilter struct {
	Status        *AppointmentStatus // фильтр по статусу (nil - все статусы)
	Date          *time.Time         // точная дата (nil - без ограничения)
	ServiceID     *string            // фильтр по услуге (nil - все услуги)
	CustomerEmail *string            // фильтр по email клиента (nil - все клиенты)
}
