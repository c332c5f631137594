package maps

import (
	"context"
	"net/http"

	"googlemaps.github.io/maps"

	"travelapi/internal/apperr"
	"travelapi/internal/types"
)

// RouteService handles interactions with the Google Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string, hc *http.Client, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := newClient(apiKey, hc, opts...)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

// Route returns the driving distance and duration of the first route,
// summed over its legs.
func (s *RouteService) Route(ctx context.Context, from, to types.Point) (types.Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      from.String(),
		Destination: to.String(),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return types.Route{}, classify(err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return types.Route{}, apperr.NotFound("%s found no driving route", Name)
	}

	var out types.Route
	for _, leg := range routes[0].Legs {
		out.DistanceMeters += float64(leg.Distance.Meters)
		out.Duration += leg.Duration
	}
	return out, nil
}
