package httpx

import (
	"net/http"
	"strconv"
	"time"

	"travelapi/internal/apperr"
	"travelapi/internal/metrics"
)

// MetricsRoundTripper counts outbound calls per upstream. Outcome is "ok",
// "timeout", "error" or the non-2xx status code.
type MetricsRoundTripper struct {
	next     http.RoundTripper
	upstream string
	metrics  *metrics.Metrics
}

func NewMetricsRoundTripper(next http.RoundTripper, upstream string, m *metrics.Metrics) MetricsRoundTripper {
	return MetricsRoundTripper{next: next, upstream: upstream, metrics: m}
}

func (rt MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	rt.metrics.UpstreamDuration.WithLabelValues(rt.upstream).Observe(time.Since(start).Seconds())

	outcome := "ok"
	switch {
	case err != nil && apperr.IsTimeout(err):
		outcome = "timeout"
	case err != nil:
		outcome = "error"
	case resp.StatusCode >= http.StatusMultipleChoices:
		outcome = strconv.Itoa(resp.StatusCode)
	}
	rt.metrics.UpstreamRequests.WithLabelValues(rt.upstream, outcome).Inc()
	return resp, err //nolint:wrapcheck
}
