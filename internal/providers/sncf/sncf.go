// README: SNCF (Navitia) stop-area directory and journey planner.
package sncf

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"travelapi/internal/apperr"
	"travelapi/internal/config"
	"travelapi/internal/providers/upstream"
	"travelapi/internal/types"
)

const (
	Name = "sncf"

	// DateTimeLayout is the Navitia wall-clock format, e.g. 20241208T070000.
	DateTimeLayout = "20060102T150405"

	coverage = "/coverage/sncf"
)

// Navitia error ids that mean "nothing runs", not a failure.
var emptyResultIDs = map[string]bool{ //nolint:gochecknoglobals
	"no_solution":        true,
	"date_out_of_bounds": true,
}

type Client struct {
	api *upstream.Client
}

// New authenticates with the API key as basic-auth user and an empty password.
func New(cfg config.SNCF, hc *http.Client) *Client {
	return &Client{api: upstream.New(Name, cfg.BaseURL, hc, upstream.WithBasicAuth(cfg.APIKey, ""))}
}

type StopArea struct {
	ID          string
	Name        string
	Coordinates *types.Point
}

type Journey struct {
	From      string
	To        string
	Departure time.Time
	Arrival   time.Time
	Duration  time.Duration
}

type coord struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c coord) point() *types.Point {
	lat, errLat := strconv.ParseFloat(c.Lat, 64)
	lng, errLng := strconv.ParseFloat(c.Lon, 64)
	if errLat != nil || errLng != nil {
		return nil
	}
	p := types.Point{Lat: lat, Lng: lng}
	if !p.Valid() || (lat == 0 && lng == 0) {
		return nil
	}
	return &p
}

type placesResponse struct {
	Places []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		EmbeddedType string `json:"embedded_type"`
		StopArea     struct {
			Coord coord `json:"coord"`
		} `json:"stop_area"`
	} `json:"places"`
}

// StopArea returns the first stop area matching q, or NotFound.
func (c *Client) StopArea(ctx context.Context, q string) (StopArea, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Add("type[]", "stop_area")

	var resp placesResponse
	if err := c.api.Get(ctx, coverage+"/places", query, &resp); err != nil {
		return StopArea{}, err
	}
	for _, p := range resp.Places {
		if p.EmbeddedType != "stop_area" {
			continue
		}
		return StopArea{ID: p.ID, Name: p.Name, Coordinates: p.StopArea.Coord.point()}, nil
	}
	return StopArea{}, apperr.NotFound("no rail station found for %q", q)
}

type navitiaError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type place struct {
	Name string `json:"name"`
}

type journeysResponse struct {
	Journeys []struct {
		DepartureDateTime string `json:"departure_date_time"`
		ArrivalDateTime   string `json:"arrival_date_time"`
		Duration          int64  `json:"duration"`
		From              *place `json:"from"`
		To                *place `json:"to"`
		Sections          []struct {
			From *place `json:"from"`
			To   *place `json:"to"`
		} `json:"sections"`
	} `json:"journeys"`
	Error *navitiaError `json:"error"`
}

// Journeys lists journeys departing after at. Navitia reports "no solution"
// as a 404 (or as an error field on a 200); both yield an empty slice.
func (c *Client) Journeys(ctx context.Context, from, to StopArea, at time.Time) ([]Journey, error) {
	query := url.Values{}
	query.Set("from", from.ID)
	query.Set("to", to.ID)
	query.Set("datetime", at.Format(DateTimeLayout))

	req, err := c.api.NewRequest(ctx, http.MethodGet, coverage+"/journeys", query, nil)
	if err != nil {
		return nil, err
	}
	status, body, err := c.api.Fetch(req)
	if err != nil {
		return nil, err
	}

	var resp journeysResponse
	switch {
	case status == http.StatusOK:
		if err := c.api.Decode(body, &resp); err != nil {
			return nil, err
		}
	case status == http.StatusNotFound || status == http.StatusBadRequest:
		if err := c.api.Decode(body, &resp); err != nil || resp.Error == nil {
			return nil, apperr.UpstreamStatus(Name, status)
		}
	default:
		return nil, apperr.UpstreamStatus(Name, status)
	}

	if resp.Error != nil {
		if emptyResultIDs[resp.Error.ID] {
			return nil, nil
		}
		e := apperr.UpstreamStatus(Name, status)
		e.Message = Name + ": " + resp.Error.ID + ": " + resp.Error.Message
		return nil, e
	}

	journeys := make([]Journey, 0, len(resp.Journeys))
	for _, j := range resp.Journeys {
		dep, err := time.Parse(DateTimeLayout, j.DepartureDateTime)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.KindUpstreamFailure, "decode "+Name+" departure time")
		}
		arr, err := time.Parse(DateTimeLayout, j.ArrivalDateTime)
		if err != nil {
			return nil, apperr.Wrap(err, apperr.KindUpstreamFailure, "decode "+Name+" arrival time")
		}

		fromName, toName := from.Name, to.Name
		if j.From != nil && j.From.Name != "" {
			fromName = j.From.Name
		} else if len(j.Sections) > 0 && j.Sections[0].From != nil {
			fromName = j.Sections[0].From.Name
		}
		if j.To != nil && j.To.Name != "" {
			toName = j.To.Name
		} else if n := len(j.Sections); n > 0 && j.Sections[n-1].To != nil {
			toName = j.Sections[n-1].To.Name
		}

		journeys = append(journeys, Journey{
			From:      fromName,
			To:        toName,
			Departure: dep,
			Arrival:   arr,
			Duration:  time.Duration(j.Duration) * time.Second,
		})
	}
	return journeys, nil
}
