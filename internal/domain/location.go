package domain

// Location free-text address resolved to coordinates
// Immutable once attached to an appointment
type Location struct {
	Address   string
	Latitude  float64 // decimal degrees
	Longitude float64 // decimal degrees
}
