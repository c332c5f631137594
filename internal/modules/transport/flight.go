package transport

import (
	"context"
	"fmt"
	"math"
	"time"

	"travelapi/internal/apperr"
	"travelapi/internal/modules/airport"
	"travelapi/internal/modules/enrichment"
	"travelapi/internal/modules/location"
	"travelapi/internal/modules/pricing"
	"travelapi/internal/types"
)

const (
	cruiseSpeedKmh     = 800.0
	minFlightMinutes   = 60
	firstDepartureHour = 6
	departureHourSpan  = 13 // 06:00 through 18:00
)

// AirportDirectory resolves a city to its primary airport.
type AirportDirectory interface {
	Lookup(query string) (airport.Airport, error)
}

// FlightSource synthesizes a stable schedule: no live timetable is queried.
type FlightSource struct {
	airports AirportDirectory
	pricing  *pricing.Service
}

func NewFlightSource(airports AirportDirectory, p *pricing.Service) *FlightSource {
	return &FlightSource{airports: airports, pricing: p}
}

func (s *FlightSource) Mode() types.Mode {
	return types.ModeFlight
}

func (s *FlightSource) Quote(ctx context.Context, req Request) ([]Option, error) {
	from, err := s.airports.Lookup(req.Origin)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	to, err := s.airports.Lookup(req.Destination)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if from.IATA == to.IATA {
		return nil, apperr.InvalidInput("%s and %s share airport %s", req.Origin, req.Destination, from.IATA)
	}

	distance := location.GreatCircleDistance(&from.Location, &to.Location)
	km, _ := distance.Value()

	price, err := s.pricing.Estimate(types.ModeFlight, distance)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	opt, err := NewOption(
		types.ModeFlight,
		airportLabel(from),
		airportLabel(to),
		req.Date.Add(time.Duration(departureHour(km))*time.Hour),
		flightDuration(km),
		price,
		distance,
	)
	if err != nil {
		return nil, fmt.Errorf("NewOption: %w", err)
	}
	logger(ctx).Debug("flight quote", "from", from.IATA, "to", to.IATA, "distance", distance.String())
	return []Option{opt}, nil
}

// departureHour hashes the one-decimal distance so a route always gets the
// same slot.
func departureHour(km float64) int {
	return firstDepartureHour + int(enrichment.Project(fmt.Sprintf("%.1f", km), departureHourSpan))
}

func flightDuration(km float64) time.Duration {
	minutes := int(math.Round(km / cruiseSpeedKmh * 60))
	return time.Duration(max(minFlightMinutes, minutes)) * time.Minute
}

func airportLabel(a airport.Airport) string {
	return fmt.Sprintf("%s (%s)", a.Name, a.IATA)
}
