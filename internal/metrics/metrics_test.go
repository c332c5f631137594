package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"travelapi/internal/metrics"
)

func TestNewRegistersCollectors(t *testing.T) {
	rq := require.New(t)
	reg := prometheus.NewRegistry()

	m := metrics.New(reg)
	m.UpstreamRequests.WithLabelValues("sncf", "ok").Inc()
	m.GeocodeCache.WithLabelValues("miss").Add(2)

	rq.InDelta(1, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("sncf", "ok")), 0)
	rq.InDelta(2, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("miss")), 0)

	families, err := reg.Gather()
	rq.NoError(err)
	rq.Len(families, 2)
}

func TestNopDoesNotPanicOnReuse(t *testing.T) {
	a := metrics.Nop()
	b := metrics.Nop()
	a.HTTPRequests.WithLabelValues("/health", "200").Inc()
	b.HTTPRequests.WithLabelValues("/health", "200").Inc()
}
