package flights_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"travelapi/internal/apperr"
	"travelapi/internal/modules/airport"
	"travelapi/internal/modules/flights"
	"travelapi/internal/providers/opensky"
)

type call struct {
	dir        opensky.Direction
	airport    string
	begin, end int64
}

type fakeFeed struct {
	calls []call
}

func (f *fakeFeed) Flights(_ context.Context, dir opensky.Direction, icao string, begin, end int64) ([]opensky.Flight, error) {
	f.calls = append(f.calls, call{dir, icao, begin, end})
	callsign := "AFR1234 "
	lfpg := "LFPG"
	return []opensky.Flight{{
		ICAO24:           "3c6444",
		Callsign:         &callsign,
		FirstSeen:        begin + 60,
		LastSeen:         begin + 3600,
		DepartureAirport: &lfpg,
	}}, nil
}

func newService(t *testing.T) (*flights.Service, *fakeFeed) {
	t.Helper()
	store, err := airport.LoadEmbedded()
	require.NoError(t, err)
	feed := &fakeFeed{}
	return flights.NewService(feed, store), feed
}

func TestDeparturesResolveAirport(t *testing.T) {
	cases := map[string]string{
		"iata":       "CDG",
		"city":       "paris",
		"icao":       "LFPG",
		"lower icao": "lfpg",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			rq := require.New(t)
			svc, feed := newService(t)

			got, err := svc.Departures(context.Background(), flights.Query{Airport: input, Begin: 1700000000, End: 1700003600})
			rq.NoError(err)
			rq.Len(feed.calls, 1)
			rq.Equal(call{opensky.Departure, "LFPG", 1700000000, 1700003600}, feed.calls[0])

			rq.Len(got, 1)
			rq.Equal("AFR1234", *got[0].Callsign)
			rq.Equal(int64(1700000060), got[0].DepartureTime)
			rq.Equal(int64(1700003600), got[0].ArrivalTime)
			rq.Equal("LFPG", *got[0].DepartureAirport)
			rq.Nil(got[0].ArrivalAirport)
		})
	}
}

func TestArrivalsPassUnknownICAO(t *testing.T) {
	rq := require.New(t)
	svc, feed := newService(t)

	_, err := svc.Arrivals(context.Background(), flights.Query{Airport: "egcc", Begin: 1, End: 2})
	rq.NoError(err)
	rq.Equal(call{opensky.Arrival, "EGCC", 1, 2}, feed.calls[0])
}

func TestFlightsValidation(t *testing.T) {
	cases := map[string]flights.Query{
		"missing airport": {Begin: 1, End: 2},
		"missing begin":   {Airport: "CDG", End: 2},
		"end before":      {Airport: "CDG", Begin: 10, End: 5},
		"window too long": {Airport: "CDG", Begin: 1, End: 1 + 8*24*3600},
		"window overflow": {Airport: "CDG", Begin: 1, End: math.MaxInt64},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			svc, feed := newService(t)
			_, err := svc.Departures(context.Background(), q)
			require.ErrorIs(t, err, apperr.ErrInvalidInput)
			require.Empty(t, feed.calls)
		})
	}
}

func TestFlightsUnknownAirport(t *testing.T) {
	svc, feed := newService(t)
	_, err := svc.Departures(context.Background(), flights.Query{Airport: "Atlantis", Begin: 1, End: 2})
	require.ErrorIs(t, err, apperr.ErrNoAirport)
	require.Empty(t, feed.calls)
}
