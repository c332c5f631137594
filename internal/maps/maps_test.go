package maps_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gmaps "googlemaps.github.io/maps"

	"travelapi/internal/apperr"
	"travelapi/internal/maps"
	"travelapi/internal/types"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/maps/api/place/textsearch/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("query") == "Atlantis" {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"name":"Nice","geometry":{"location":{"lat":43.7101728,"lng":7.261953}}}]}`))
	})
	mux.HandleFunc("/maps/api/directions/json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","routes":[{"legs":[
			{"distance":{"value":500000,"text":"500 km"},"duration":{"value":18000,"text":"5 hours"}},
			{"distance":{"value":431000,"text":"431 km"},"duration":{"value":12600,"text":"3 hours 30 mins"}}
		]}]}`))
	})
	httpServer := httptest.NewServer(mux)
	t.Cleanup(httpServer.Close)
	return httpServer
}

func TestPlacesGeocode(t *testing.T) {
	rq := require.New(t)
	httpServer := newServer(t)

	svc, err := maps.NewPlacesService("AIza-test", httpServer.Client(), gmaps.WithBaseURL(httpServer.URL))
	rq.NoError(err)

	p, err := svc.Geocode(context.Background(), "Nice")
	rq.NoError(err)
	rq.InDelta(43.7101728, p.Lat, 1e-9)

	_, err = svc.Geocode(context.Background(), "Atlantis")
	rq.ErrorIs(err, apperr.ErrNotFound)
}

func TestRoute(t *testing.T) {
	rq := require.New(t)
	httpServer := newServer(t)

	svc, err := maps.NewRouteService("AIza-test", httpServer.Client(), gmaps.WithBaseURL(httpServer.URL))
	rq.NoError(err)

	route, err := svc.Route(context.Background(), types.Point{Lat: 48.85, Lng: 2.35}, types.Point{Lat: 43.71, Lng: 7.26})
	rq.NoError(err)
	rq.InDelta(931000, route.DistanceMeters, 0)
	rq.Equal(8*time.Hour+30*time.Minute, route.Duration)
}
