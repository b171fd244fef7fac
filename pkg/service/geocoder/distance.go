package geocoder

import (
	"math"

	"github.com/opencity-lab/musette/pkg/domain/model"
)

const earthRadiusKM = 6371.0

// DistanceKM computes the great-circle distance between two points using
// the haversine formula. Accurate to ~0.5% against an ellipsoidal model,
// which is plenty for radius filtering.
func DistanceKM(a, b model.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
