// README: OpenRouteService geocoder and driving directions.
package ors

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"travelapi/internal/apperr"
	"travelapi/internal/config"
	"travelapi/internal/providers/upstream"
	"travelapi/internal/types"
)

const Name = "ors"

type Client struct {
	api     *upstream.Client
	apiKey  string
	country string
}

// New builds the client. The key is sent as a query parameter for geocoding
// and as the Authorization header for directions.
func New(cfg config.ORS, hc *http.Client) *Client {
	return &Client{
		api:     upstream.New(Name, cfg.BaseURL, hc, upstream.WithHeader("Authorization", cfg.APIKey)),
		apiKey:  cfg.APIKey,
		country: cfg.GeocodeCountry,
	}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode biases the search by suffixing the configured country.
func (c *Client) Geocode(ctx context.Context, name string) (types.Point, error) {
	text := name
	if c.country != "" {
		text = name + ", " + c.country
	}
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("text", text)

	var resp geocodeResponse
	if err := c.api.Get(ctx, "/geocode/search", q, &resp); err != nil {
		return types.Point{}, err
	}
	if len(resp.Features) == 0 || len(resp.Features[0].Geometry.Coordinates) < 2 {
		return types.Point{}, apperr.NotFound("%s has no match for %q", Name, name)
	}

	// GeoJSON order is [lon, lat].
	coords := resp.Features[0].Geometry.Coordinates
	return types.Point{Lat: coords[1], Lng: coords[0]}, nil
}

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

func (c *Client) Route(ctx context.Context, from, to types.Point) (types.Route, error) {
	body := directionsRequest{Coordinates: [][2]float64{{from.Lng, from.Lat}, {to.Lng, to.Lat}}}

	var resp directionsResponse
	if err := c.api.Post(ctx, "/v2/directions/driving-car", body, &resp); err != nil {
		return types.Route{}, err
	}
	if len(resp.Routes) == 0 {
		return types.Route{}, apperr.NotFound("%s found no driving route", Name)
	}

	summary := resp.Routes[0].Summary
	return types.Route{
		DistanceMeters: summary.Distance,
		Duration:       time.Duration(summary.Duration * float64(time.Second)),
	}, nil
}
