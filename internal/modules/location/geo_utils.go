// Package location: geo_utils holds pure geographic helpers.
package location

import (
	"math"

	"travelapi/internal/types"
)

const earthRadiusKm = 6371.0

// GreatCircleDistance returns the haversine distance between a and b rounded
// to one decimal. A nil point yields an unknown distance, not an error.
func GreatCircleDistance(a, b *types.Point) types.Distance {
	if a == nil || b == nil {
		return types.UnknownDistance()
	}
	return types.Km(haversineKm(*a, *b))
}

func haversineKm(a, b types.Point) float64 {
	phi1, phi2 := radians(a.Lat), radians(b.Lat)
	dPhi := phi2 - phi1
	dLambda := radians(b.Lng - a.Lng)

	h := math.Pow(math.Sin(dPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
