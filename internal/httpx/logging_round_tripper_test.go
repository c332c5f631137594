package httpx_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"travelapi/internal/contextx"
	"travelapi/internal/httpx"
	"travelapi/internal/logx"
	"travelapi/internal/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestLoggingRoundTripper(t *testing.T) {
	rq := require.New(t)

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	}))
	defer httpServer.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := contextx.WithLogger(context.Background(), log)

	client := &http.Client{Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, "ors")}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpServer.URL+"/geocode/search?api_key=secret&text=Paris", http.NoBody)
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)
	defer resp.Body.Close()
	rq.Equal(http.StatusNotFound, resp.StatusCode)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	rq.Len(lines, 2)

	var request, response map[string]any
	rq.NoError(json.Unmarshal(lines[0], &request))
	rq.NoError(json.Unmarshal(lines[1], &response))

	rq.Equal("ors", request[logx.FieldUpstream])
	rq.Contains(request[logx.FieldRequestBody], "api_key=[MASKED]")
	rq.NotContains(request[logx.FieldRequestBody], "secret")
	rq.Contains(response[logx.FieldResponseBody], "404 Not Found")
	rq.InDelta(404, response[logx.FieldResponseStatus], 0)
	rq.Len(request[logx.FieldRequestID], 20)
}

func TestNewClientRecordsMetrics(t *testing.T) {
	rq := require.New(t)

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(200 * time.Millisecond)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer httpServer.Close()

	m := metrics.New(prometheus.NewRegistry())
	client := httpx.NewClient("sncf", httpx.ClientConfig{Timeout: 50 * time.Millisecond, Metrics: m})

	resp, err := client.Get(httpServer.URL + "/fast")
	rq.NoError(err)
	resp.Body.Close()

	_, err = client.Get(httpServer.URL + "/slow")
	rq.Error(err)

	rq.InDelta(1, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("sncf", "ok")), 0)
	failed := testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("sncf", "timeout")) +
		testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("sncf", "error"))
	rq.InDelta(1, failed, 0)
}
