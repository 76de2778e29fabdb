package geo

import (
	"math"

	"github.com/spotbook/appointment-service/internal/domain"
)

// EarthRadiusKm radius of the Earth used by the haversine formula
const EarthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two locations
// using the haversine formula, rounded to one decimal place.
// Symmetric: DistanceKm(a, b) == DistanceKm(b, a); DistanceKm(a, a) == 0.
func DistanceKm(a, b domain.Location) float64 {
	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(a.Latitude))*math.Cos(degToRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	distance := EarthRadiusKm * c

	return math.Round(distance*10) / 10
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
