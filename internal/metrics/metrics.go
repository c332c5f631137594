// README: Prometheus collectors for inbound requests, upstream calls and the geocode cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "travelapi"

type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	GeocodeCache     *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outbound calls to third-party services by outcome.",
		}, []string{"upstream", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound call latency per third-party service.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"upstream"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocode cache lookups by result (hit_local, hit_redis, miss).",
		}, []string{"result"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.HTTPRequests,
			m.HTTPDuration,
			m.UpstreamRequests,
			m.UpstreamDuration,
			m.GeocodeCache,
		)
	}
	return m
}

// Nop returns unregistered collectors, for tests and the CLI.
func Nop() *Metrics {
	return New(nil)
}
