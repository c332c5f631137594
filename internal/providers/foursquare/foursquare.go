// README: Foursquare Places v3 search, details and photos.
package foursquare

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"travelapi/internal/config"
	"travelapi/internal/providers/upstream"
	"travelapi/internal/types"
)

const Name = "foursquare"

type Client struct {
	api *upstream.Client
}

func New(cfg config.Foursquare, hc *http.Client) *Client {
	return &Client{api: upstream.New(Name, cfg.BaseURL, hc, upstream.WithHeader("Authorization", cfg.APIKey))}
}

type Category struct {
	Name string `json:"name"`
}

type Location struct {
	Address          string `json:"address"`
	FormattedAddress string `json:"formatted_address"`
}

type Place struct {
	ID         string     `json:"fsq_id"`
	Name       string     `json:"name"`
	Distance   *int       `json:"distance"`
	Location   Location   `json:"location"`
	Categories []Category `json:"categories"`
	Tel        string     `json:"tel"`
	Website    string     `json:"website"`
}

type Photo struct {
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// URL returns the full-size photo address.
func (p Photo) URL() string {
	return p.Prefix + "original" + p.Suffix
}

type SearchParams struct {
	Near       types.Point
	Radius     int
	Limit      int
	Query      string
	Categories string
}

func (c *Client) Search(ctx context.Context, params SearchParams) ([]Place, error) {
	q := url.Values{}
	q.Set("ll", strconv.FormatFloat(params.Near.Lat, 'f', -1, 64)+","+strconv.FormatFloat(params.Near.Lng, 'f', -1, 64))
	if params.Radius > 0 {
		q.Set("radius", strconv.Itoa(params.Radius))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	if params.Categories != "" {
		q.Set("categories", params.Categories)
	}

	var resp struct {
		Results []Place `json:"results"`
	}
	if err := c.api.Get(ctx, "/places/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) Details(ctx context.Context, id string) (Place, error) {
	var p Place
	if err := c.api.Get(ctx, "/places/"+url.PathEscape(id), nil, &p); err != nil {
		return Place{}, err
	}
	return p, nil
}

func (c *Client) Photos(ctx context.Context, id string) ([]Photo, error) {
	var photos []Photo
	if err := c.api.Get(ctx, "/places/"+url.PathEscape(id)+"/photos", nil, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}
