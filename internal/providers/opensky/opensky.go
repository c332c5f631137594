// README: OpenSky Network live departures and arrivals per airport.
package opensky

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"travelapi/internal/apperr"
	"travelapi/internal/config"
	"travelapi/internal/providers/upstream"
)

const Name = "opensky"

type Direction string

const (
	Departure Direction = "departure"
	Arrival   Direction = "arrival"
)

type Client struct {
	api *upstream.Client
}

func New(cfg config.OpenSky, hc *http.Client) *Client {
	var opts []upstream.Option
	if cfg.User != "" {
		opts = append(opts, upstream.WithBasicAuth(cfg.User, cfg.Password))
	}
	return &Client{api: upstream.New(Name, cfg.BaseURL, hc, opts...)}
}

type Flight struct {
	ICAO24           string  `json:"icao24"`
	Callsign         *string `json:"callsign"`
	FirstSeen        int64   `json:"firstSeen"`
	LastSeen         int64   `json:"lastSeen"`
	DepartureAirport *string `json:"estDepartureAirport"`
	ArrivalAirport   *string `json:"estArrivalAirport"`
}

// Flights lists flights for airport (ICAO code) within [begin, end] unix
// seconds. OpenSky answers 404 when the window holds no flights.
func (c *Client) Flights(ctx context.Context, dir Direction, airport string, begin, end int64) ([]Flight, error) {
	q := url.Values{}
	q.Set("airport", airport)
	q.Set("begin", strconv.FormatInt(begin, 10))
	q.Set("end", strconv.FormatInt(end, 10))

	var flights []Flight
	if err := c.api.Get(ctx, "/flights/"+string(dir), q, &flights); err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.UpstreamStatus == http.StatusNotFound {
			return []Flight{}, nil
		}
		return nil, err
	}
	return flights, nil
}
