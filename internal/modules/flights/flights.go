// README: Live departures and arrivals for an airport over a unix time window.
package flights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"travelapi/internal/apperr"
	"travelapi/internal/contextx"
	"travelapi/internal/modules/airport"
	"travelapi/internal/providers/opensky"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// MaxWindow is the longest interval the live feed accepts per request.
const MaxWindow = 7 * 24 * time.Hour

type Feed interface {
	Flights(ctx context.Context, dir opensky.Direction, airport string, begin, end int64) ([]opensky.Flight, error)
}

type AirportDirectory interface {
	Lookup(query string) (airport.Airport, error)
}

type Query struct {
	Airport string `form:"airport" validate:"required,max=100"`
	Begin   int64  `form:"begin" validate:"required,gt=0"`
	End     int64  `form:"end" validate:"required,gtfield=Begin"`
}

type Flight struct {
	ICAO24           string  `json:"icao24"`
	Callsign         *string `json:"callsign"`
	DepartureTime    int64   `json:"departure_time"`
	DepartureAirport *string `json:"departure_airport"`
	ArrivalTime      int64   `json:"arrival_time"`
	ArrivalAirport   *string `json:"arrival_airport"`
}

type Service struct {
	feed     Feed
	airports AirportDirectory
	validate *validator.Validate
}

func NewService(feed Feed, airports AirportDirectory) *Service {
	return &Service{feed: feed, airports: airports, validate: validator.New()}
}

func (s *Service) Departures(ctx context.Context, q Query) ([]Flight, error) {
	return s.list(ctx, opensky.Departure, q)
}

func (s *Service) Arrivals(ctx context.Context, q Query) ([]Flight, error) {
	return s.list(ctx, opensky.Arrival, q)
}

func (s *Service) list(ctx context.Context, dir opensky.Direction, q Query) ([]Flight, error) {
	q.Airport = strings.TrimSpace(q.Airport)
	if err := s.validate.Struct(q); err != nil {
		return nil, apperr.InvalidInput("please provide airport, begin and end with end after begin: %v", err)
	}
	if q.End-q.Begin > int64(MaxWindow/time.Second) {
		return nil, apperr.InvalidInput("time window must not exceed %s", MaxWindow)
	}

	icao, err := s.icao(q.Airport)
	if err != nil {
		return nil, err
	}

	raw, err := s.feed.Flights(ctx, dir, icao, q.Begin, q.End)
	if err != nil {
		return nil, fmt.Errorf("%s flights for %s: %w", dir, icao, err)
	}
	logger(ctx).Debug("live flights", slog.String("airport", icao), slog.String("direction", string(dir)),
		slog.Int("count", len(raw)))

	return lo.Map(raw, func(f opensky.Flight, _ int) Flight {
		if f.Callsign != nil {
			f.Callsign = lo.ToPtr(strings.TrimSpace(*f.Callsign))
		}
		return Flight{
			ICAO24:           f.ICAO24,
			Callsign:         f.Callsign,
			DepartureTime:    f.FirstSeen,
			DepartureAirport: f.DepartureAirport,
			ArrivalTime:      f.LastSeen,
			ArrivalAirport:   f.ArrivalAirport,
		}
	}), nil
}

// icao maps an IATA code, city or airport name to the ICAO code the feed
// expects. Unknown four letter codes pass through as ICAO.
func (s *Service) icao(query string) (string, error) {
	a, err := s.airports.Lookup(query)
	if err == nil && a.ICAO != "" {
		return a.ICAO, nil
	}
	if len(query) == 4 && (err == nil || errors.Is(err, apperr.ErrNoAirport)) {
		return strings.ToUpper(query), nil
	}
	if err != nil {
		return "", err
	}
	return "", apperr.NoAirport(query)
}
