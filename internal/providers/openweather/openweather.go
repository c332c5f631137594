// README: OpenWeatherMap current conditions.
package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"travelapi/internal/apperr"
	"travelapi/internal/config"
	"travelapi/internal/providers/upstream"
)

const Name = "openweather"

type Client struct {
	api    *upstream.Client
	apiKey string
}

func New(cfg config.OpenWeather, hc *http.Client) *Client {
	return &Client{api: upstream.New(Name, cfg.BaseURL, hc), apiKey: cfg.APIKey}
}

type Current struct {
	Temperature float64
	Description string
}

type currentResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current fetches metric conditions for city. An unknown city is NotFound.
func (c *Client) Current(ctx context.Context, city string) (Current, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var resp currentResponse
	if err := c.api.Get(ctx, "/weather", q, &resp); err != nil {
		var e *apperr.Error
		if errors.As(err, &e) && e.UpstreamStatus == http.StatusNotFound {
			return Current{}, apperr.NotFound("no weather for city %q", city)
		}
		return Current{}, err
	}

	out := Current{Temperature: resp.Main.Temp}
	if len(resp.Weather) > 0 {
		out.Description = resp.Weather[0].Description
	}
	return out, nil
}
