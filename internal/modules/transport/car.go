package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"travelapi/internal/logx"
	"travelapi/internal/modules/pricing"
	"travelapi/internal/types"
)

const carDepartureHour = 9

// Router computes a driving route between two points.
type Router interface {
	Route(ctx context.Context, from, to types.Point) (types.Route, error)
}

type CarSource struct {
	geocoder Resolver
	router   Router
	pricing  *pricing.Service
}

func NewCarSource(geocoder Resolver, router Router, p *pricing.Service) *CarSource {
	return &CarSource{geocoder: geocoder, router: router, pricing: p}
}

func (s *CarSource) Mode() types.Mode {
	return types.ModeCar
}

// Quote returns a single option leaving at 09:00, priced on the routed
// distance rather than the straight line.
func (s *CarSource) Quote(ctx context.Context, req Request) ([]Option, error) {
	from, err := s.geocoder.Resolve(ctx, req.Origin)
	if err != nil {
		return nil, unresolved(req.Origin, err)
	}
	to, err := s.geocoder.Resolve(ctx, req.Destination)
	if err != nil {
		return nil, unresolved(req.Destination, err)
	}

	route, err := s.router.Route(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("route %s -> %s: %w", req.Origin, req.Destination, err)
	}

	distance := route.Distance()
	price, err := s.pricing.Estimate(types.ModeCar, distance)
	if err != nil {
		return nil, fmt.Errorf("estimate: %w", err)
	}

	opt, err := NewOption(
		types.ModeCar,
		req.Origin,
		req.Destination,
		req.Date.Add(carDepartureHour*time.Hour),
		route.Duration,
		price,
		distance,
	)
	if err != nil {
		return nil, fmt.Errorf("NewOption: %w", err)
	}

	logger(ctx).Debug("car quote",
		slog.String(logx.FieldMode, string(types.ModeCar)),
		logx.Stringer("distance", distance),
		logx.Stringer("price", price),
	)
	return []Option{opt}, nil
}
