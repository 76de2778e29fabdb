package geo

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/spotbook/appointment-service/internal/domain"
)

// StaticGeocoder детерминированный резолвер адресов без внешнего провайдера.
// Координаты выводятся из хэша адреса и всегда попадают в радиус обслуживания
// вокруг точки базирования. Один и тот же адрес даёт одни и те же координаты.
type StaticGeocoder struct {
	origin   domain.Location
	radiusKm float64
}

// NewStaticGeocoder создает детерминированный геокодер
func NewStaticGeocoder(origin domain.Location, radiusKm float64) *StaticGeocoder {
	if radiusKm <= 0 {
		radiusKm = 25
	}
	return &StaticGeocoder{origin: origin, radiusKm: radiusKm}
}

// Resolve возвращает координаты для адреса
// Пустой адрес не резолвится
func (g *StaticGeocoder) Resolve(_ context.Context, address string) (*domain.Location, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(address))
	sum := h.Sum64()

	// Два независимых значения в [0, 1) из одного хэша
	u1 := float64(sum&0xFFFFFFFF) / float64(1<<32)
	u2 := float64(sum>>32) / float64(1<<32)

	// Равномерная точка внутри круга радиусом radiusKm
	r := g.radiusKm * math.Sqrt(u1)
	theta := 2 * math.Pi * u2

	latOffset := (r * math.Cos(theta)) / kmPerDegreeLat
	lonOffset := (r * math.Sin(theta)) / kmPerDegreeLon(g.origin.Latitude)

	return &domain.Location{
		Address:   address,
		Latitude:  g.origin.Latitude + latOffset,
		Longitude: g.origin.Longitude + lonOffset,
	}, nil
}

const kmPerDegreeLat = 111.32

func kmPerDegreeLon(latitude float64) float64 {
	return kmPerDegreeLat * math.Cos(degToRad(latitude))
}
