// README: Nominatim (OpenStreetMap) free-text geocoder.
package nominatim

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"travelapi/internal/apperr"
	"travelapi/internal/config"
	"travelapi/internal/providers/upstream"
	"travelapi/internal/types"
)

const Name = "nominatim"

type Client struct {
	api *upstream.Client
}

// New requires a descriptive User-Agent; the public instance rejects anonymous clients.
func New(cfg config.Nominatim, userAgent string, hc *http.Client) *Client {
	return &Client{api: upstream.New(Name, cfg.BaseURL, hc, upstream.WithUserAgent(userAgent))}
}

type result struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) Geocode(ctx context.Context, name string) (types.Point, error) {
	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []result
	if err := c.api.Get(ctx, "/search", q, &results); err != nil {
		return types.Point{}, err
	}
	if len(results) == 0 {
		return types.Point{}, apperr.NotFound("%s has no match for %q", Name, name)
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lng, errLng := strconv.ParseFloat(results[0].Lon, 64)
	p := types.Point{Lat: lat, Lng: lng}
	if errLat != nil || errLng != nil || !p.Valid() {
		return types.Point{}, apperr.New(apperr.KindUpstreamFailure, "%s returned malformed coordinates for %q", Name, name)
	}
	return p, nil
}
