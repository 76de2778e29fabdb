package domain

import "time"

// Service represents a bookable service in the catalog
type Service struct {
	ID          string
	Name        string
	Description string

	BasePrice  float64 // currency, >= 0
	PricePerKm float64 // currency per kilometre of travel, >= 0

	DurationMinutes int
	Image           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServicePatch частичное обновление услуги
// nil поля остаются нетронутыми
type ServicePatch struct {
	Name            *string
	Description     *string
	BasePrice       *float64
	PricePerKm      *float64
	DurationMinutes *int
	Image           *string
}

// IsEmpty returns true if the patch changes nothing
func (p *ServicePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.BasePrice == nil &&
		p.PricePerKm == nil && p.DurationMinutes == nil && p.Image == nil
}
