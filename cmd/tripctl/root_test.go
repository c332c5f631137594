package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travelapi/internal/apperr"
	"travelapi/internal/modules/airport"
	"travelapi/internal/modules/transport"
	"travelapi/internal/types"
)

type fakeQuoter struct {
	mode  types.Mode
	modes []types.Mode
	query transport.Query
}

func (f *fakeQuoter) Quote(_ context.Context, mode types.Mode, q transport.Query) ([]transport.Option, error) {
	f.mode, f.query = mode, q
	departure := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	o, err := transport.NewOption(mode, q.Origin, q.Destination, departure, 90*time.Minute,
		types.KnownPrice(types.EUR(88)), types.Km(683))
	return []transport.Option{o}, err
}

func (f *fakeQuoter) QuoteAll(_ context.Context, modes []types.Mode, q transport.Query) ([]transport.Option, error) {
	f.modes, f.query = modes, q
	return []transport.Option{}, nil
}

type fakeAirports struct{}

func (fakeAirports) Lookup(q string) (airport.Airport, error) {
	if q != "Nice" {
		return airport.Airport{}, apperr.NoAirport(q)
	}
	return airport.Airport{IATA: "NCE", ICAO: "LFMN", City: "Nice"}, nil
}

func run(t *testing.T, q *fakeQuoter, args ...string) (string, error) {
	t.Helper()
	closed := false
	load := func(context.Context, bool) (services, error) {
		return services{transport: q, airports: fakeAirports{}, close: func() { closed = true }}, nil
	}
	var out bytes.Buffer
	cmd := newRootCmd(load)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		require.True(t, closed)
	}
	return out.String(), err
}

func TestQuoteSingleMode(t *testing.T) {
	rq := require.New(t)
	q := &fakeQuoter{}

	out, err := run(t, q, "quote", "--from", "Paris", "--to", "Nice", "--date", "2026-05-01", "--mode", "train")
	rq.NoError(err)
	rq.Equal(types.ModeTrain, q.mode)
	rq.Equal(transport.Query{Origin: "Paris", Destination: "Nice", Date: "2026-05-01"}, q.query)
	rq.Contains(out, `"price": 88`)
	rq.Contains(out, `"time": "09:00-10:30"`)
	rq.Contains(out, `"duration": "1h 30m"`)
}

func TestQuoteSeveralModes(t *testing.T) {
	rq := require.New(t)
	q := &fakeQuoter{}

	out, err := run(t, q, "quote", "-f", "Paris", "-t", "Nice", "-d", "2026-05-01", "-m", "car,flight")
	rq.NoError(err)
	rq.Equal([]types.Mode{types.ModeCar, types.ModeFlight}, q.modes)
	rq.JSONEq("[]", out)

	_, err = run(t, q, "quote", "-f", "Paris", "-t", "Nice")
	rq.NoError(err)
	rq.Empty(q.modes)
}

func TestQuoteRejectsUnknownMode(t *testing.T) {
	_, err := run(t, &fakeQuoter{}, "quote", "-f", "Paris", "-t", "Nice", "-m", "boat")
	require.ErrorContains(t, err, `unknown transport mode "boat"`)
}

func TestQuoteRequiresFrom(t *testing.T) {
	_, err := run(t, &fakeQuoter{}, "quote", "-t", "Nice")
	require.ErrorContains(t, err, `"from"`)
}

func TestAirport(t *testing.T) {
	rq := require.New(t)

	out, err := run(t, &fakeQuoter{}, "airport", "Nice")
	rq.NoError(err)
	rq.Contains(out, `"iata": "NCE"`)

	_, err = run(t, &fakeQuoter{}, "airport", "Atlantis")
	rq.ErrorIs(err, apperr.ErrNoAirport)
}
