package domain

// Time slot labels offered on the booking form.
// Submissions outside this set are rejected at validation.
var TimeSlots = []string{
	"9:00 AM - 11:00 AM",
	"11:00 AM - 1:00 PM",
	"1:00 PM - 3:00 PM",
	"3:00 PM - 5:00 PM",
}

// IsValidTimeSlot проверяет, что слот входит в фиксированный набор
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Business validation constants
const (
	MinCustomerNameLength = 2
	MinAddressLength      = 5
	MinPhoneLength        = 5
	MaxNotesLength        = 500
)

// UnknownServiceName label used when an appointment references a deleted service
const UnknownServiceName = "Unknown Service"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов записи
var TerminalStatuses = []AppointmentStatus{
	StatusDeclined,
	StatusCompleted,
}

// AllStatuses список всех статусов записи
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusDeclined,
	StatusCompleted,
}
