package pricing

import (
	"errors"
	"fmt"

	"github.com/spotbook/appointment-service/internal/domain"
)

var (
	// ErrServiceNotResolved возвращается при попытке посчитать цену
	// для неразрешённой услуги. Вызывающая сторона обязана разрешить услугу
	// заранее и не подставлять нулевую цену.
	ErrServiceNotResolved = errors.New("pricing: service not resolved")

	// ErrNegativeDistance возвращается при отрицательном расстоянии
	ErrNegativeDistance = errors.New("pricing: distance must be non-negative")
)

// Calculate computes the appointment price for a resolved service:
// BasePrice + distanceKm * PricePerKm. No rounding is applied here;
// presentation rounds for display only. Pure, no side effects.
func Calculate(service *domain.Service, distanceKm float64) (float64, error) {
	if service == nil {
		return 0, ErrServiceNotResolved
	}
	if distanceKm < 0 {
		return 0, fmt.Errorf("%w: got %f", ErrNegativeDistance, distanceKm)
	}

	return service.BasePrice + distanceKm*service.PricePerKm, nil
}
