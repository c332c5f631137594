// README: Shared JSON client for third-party REST APIs; classifies every failure at the boundary.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"travelapi/internal/apperr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const maxBodyBytes = 4 << 20

type Client struct {
	name      string
	baseURL   string
	http      *http.Client
	header    http.Header
	basicAuth *[2]string
}

type Option func(*Client)

func WithHeader(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.header.Set(key, value)
		}
	}
}

func WithUserAgent(ua string) Option {
	return WithHeader("User-Agent", ua)
}

func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.basicAuth = &[2]string{user, password}
	}
}

func New(name, baseURL string, hc *http.Client, opts ...Option) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	c := &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		header:  http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return c.name
}

// NewRequest builds a request for path relative to the base URL. A non-nil
// body is sent as JSON.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindUpstreamFailure, "build "+c.name+" request")
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.basicAuth != nil {
		req.SetBasicAuth(c.basicAuth[0], c.basicAuth[1])
	}
	return req, nil
}

// Fetch executes req and returns the status and body. Only transport failures
// are returned as errors; status handling is left to the caller.
func (c *Client) Fetch(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, apperr.FromTransport(c.name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, apperr.FromTransport(c.name, err)
	}
	return resp.StatusCode, body, nil
}

// Do executes req, rejects non-2xx statuses and decodes the body into out.
func (c *Client) Do(req *http.Request, out any) error {
	status, body, err := c.Fetch(req)
	if err != nil {
		return err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return apperr.UpstreamStatus(c.name, status)
	}
	return c.Decode(body, out)
}

func (c *Client) Decode(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperr.Wrap(err, apperr.KindUpstreamFailure, "decode "+c.name+" response")
	}
	return nil
}

// Get is NewRequest + Do for the common GET case.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req, err := c.NewRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}
