package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"googlemaps.github.io/maps"

	"travelapi/internal/apperr"
	"travelapi/internal/types"
)

const Name = "google"

// PlacesService resolves place names through the Places text search API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra options (e.g. maps.WithBaseURL) are passed through to the client.
func NewPlacesService(apiKey string, hc *http.Client, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := newClient(apiKey, hc, opts...)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client}, nil
}

func newClient(apiKey string, hc *http.Client, opts ...maps.ClientOption) (*maps.Client, error) {
	all := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if hc != nil {
		all = append(all, maps.WithHTTPClient(hc))
	}
	client, err := maps.NewClient(append(all, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// Geocode returns the location of the first text search result.
func (s *PlacesService) Geocode(ctx context.Context, name string) (types.Point, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: name})
	if err != nil {
		return types.Point{}, classify(err)
	}
	if len(resp.Results) == 0 {
		return types.Point{}, apperr.NotFound("%s has no match for %q", Name, name)
	}

	loc := resp.Results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// classify maps client errors onto the shared taxonomy. The maps client
// reports API-level statuses (REQUEST_DENIED, OVER_QUERY_LIMIT) as plain errors.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || apperr.IsTimeout(err) {
		return apperr.FromTransport(Name, err)
	}
	return apperr.Wrap(err, apperr.KindUpstreamFailure, "places api error")
}
