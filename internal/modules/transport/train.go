package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"travelapi/internal/apperr"
	"travelapi/internal/logx"
	"travelapi/internal/modules/location"
	"travelapi/internal/modules/pricing"
	"travelapi/internal/providers/sncf"
	"travelapi/internal/types"
)

// StopDirectory is the rail stop lookup and journey planner.
type StopDirectory interface {
	StopArea(ctx context.Context, q string) (sncf.StopArea, error)
	Journeys(ctx context.Context, from, to sncf.StopArea, at time.Time) ([]sncf.Journey, error)
}

type TrainSource struct {
	geocoder Resolver
	stops    StopDirectory
	pricing  *pricing.Service
}

func NewTrainSource(geocoder Resolver, stops StopDirectory, p *pricing.Service) *TrainSource {
	return &TrainSource{geocoder: geocoder, stops: stops, pricing: p}
}

func (s *TrainSource) Mode() types.Mode {
	return types.ModeTrain
}

// Quote prices every journey from the great-circle distance between the two
// cities. The rail network's own distance and fares are not used.
func (s *TrainSource) Quote(ctx context.Context, req Request) ([]Option, error) {
	fromPoint := s.coordinates(ctx, req.Origin)
	toPoint := s.coordinates(ctx, req.Destination)

	fromStop, err := s.stops.StopArea(ctx, req.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin station: %w", err)
	}
	toStop, err := s.stops.StopArea(ctx, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination station: %w", err)
	}

	if fromPoint == nil {
		fromPoint = fromStop.Coordinates
	}
	if toPoint == nil {
		toPoint = toStop.Coordinates
	}
	distance := location.GreatCircleDistance(fromPoint, toPoint)
	price, err := s.pricing.Estimate(types.ModeTrain, distance)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	var journeys []sncf.Journey
	for _, at := range req.Windows {
		found, err := s.stops.Journeys(ctx, fromStop, toStop, at)
		if err != nil {
			return nil, fmt.Errorf("journeys at %s: %w", at.Format(time.DateTime), err)
		}
		journeys = append(journeys, found...)
	}
	journeys = mergeJourneys(journeys)
	if len(journeys) == 0 {
		return nil, apperr.NoResults("no trains from %s to %s on %s", req.Origin, req.Destination, req.Date.Format(DateLayout))
	}

	options := make([]Option, 0, len(journeys))
	for _, j := range journeys {
		opt, err := NewOption(types.ModeTrain, j.From, j.To, j.Departure, j.Duration, price, distance)
		if err != nil {
			logger(ctx).Warn("skipping malformed journey", logx.Error(err))
			continue
		}
		options = append(options, opt)
	}
	if len(options) == 0 {
		return nil, apperr.NoResults("no usable trains from %s to %s", req.Origin, req.Destination)
	}

	logger(ctx).Debug("train quote",
		slog.String(logx.FieldMode, string(types.ModeTrain)),
		slog.Int("windows", len(req.Windows)),
		slog.Int("journeys", len(options)),
		logx.Stringer("distance", distance),
	)
	return options, nil
}

// coordinates is best effort: a geocoding failure leaves the stop area's own
// coordinates as the fallback.
func (s *TrainSource) coordinates(ctx context.Context, name string) *types.Point {
	p, err := s.geocoder.Resolve(ctx, name)
	if err != nil {
		logger(ctx).Info("train geocode failed, falling back to station coordinates",
			slog.String("place", name), logx.Error(err))
		return nil
	}
	return &p
}

// mergeJourneys keeps API order and drops journeys already seen in an
// earlier window.
func mergeJourneys(journeys []sncf.Journey) []sncf.Journey {
	return lo.UniqBy(journeys, func(j sncf.Journey) string {
		return j.Departure.Format(sncf.DateTimeLayout) + "|" + j.Arrival.Format(sncf.DateTimeLayout) + "|" + j.From + "|" + j.To
	})
}
