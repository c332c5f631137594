package transport_test

import (
	"context"
	"sync/atomic"
	"time"

	"travelapi/internal/apperr"
	"travelapi/internal/providers/sncf"
	"travelapi/internal/types"
)

type fakeResolver struct {
	points map[string]types.Point
	err    error
	calls  atomic.Int32
}

func (f *fakeResolver) Resolve(_ context.Context, name string) (types.Point, error) {
	f.calls.Add(1)
	if f.err != nil {
		return types.Point{}, f.err
	}
	p, ok := f.points[name]
	if !ok {
		return types.Point{}, apperr.NotFound("no match for %q", name)
	}
	return p, nil
}

type fakeRouter struct {
	route types.Route
	err   error
	calls atomic.Int32
}

func (f *fakeRouter) Route(_ context.Context, _, _ types.Point) (types.Route, error) {
	f.calls.Add(1)
	return f.route, f.err
}

type fakeStops struct {
	stops        map[string]sncf.StopArea
	journeys     map[time.Time][]sncf.Journey
	stopCalls    atomic.Int32
	journeyCalls atomic.Int32
	windows      []time.Time
}

func (f *fakeStops) StopArea(_ context.Context, q string) (sncf.StopArea, error) {
	f.stopCalls.Add(1)
	s, ok := f.stops[q]
	if !ok {
		return sncf.StopArea{}, apperr.NotFound("no rail station found for %q", q)
	}
	return s, nil
}

func (f *fakeStops) Journeys(_ context.Context, _, _ sncf.StopArea, at time.Time) ([]sncf.Journey, error) {
	f.journeyCalls.Add(1)
	f.windows = append(f.windows, at)
	return f.journeys[at], nil
}

func (f *fakeStops) calls() int32 {
	return f.stopCalls.Load() + f.journeyCalls.Load()
}
