// README: Outbound HTTP client factory: bounded timeout, logging and metrics per upstream.
package httpx

import (
	"net/http"
	"time"

	"travelapi/internal/metrics"
)

type ClientConfig struct {
	Timeout        time.Duration
	LogFieldMaxLen int
	Metrics        *metrics.Metrics
	Transport      http.RoundTripper
}

// NewClient builds the http.Client used for one named upstream. Every client
// has a timeout; expiries are classified as UpstreamTimeout by the providers.
func NewClient(upstream string, cfg ClientConfig) *http.Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.Metrics != nil {
		transport = NewMetricsRoundTripper(transport, upstream, cfg.Metrics)
	}
	transport = NewLoggingRoundTripper(transport, upstream, WithLogFieldMaxLen(cfg.LogFieldMaxLen))

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}
