package types

import "time"

// Route is a driving route summary as returned by a routing service.
type Route struct {
	DistanceMeters float64
	Duration       time.Duration
}

func (r Route) Distance() Distance {
	return Km(r.DistanceMeters / 1000)
}
