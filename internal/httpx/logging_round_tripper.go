package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/xid"

	"travelapi/internal/contextx"
	"travelapi/internal/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type sensitiveDataMasker interface {
	Mask([]byte) []byte
}

// LoggingRoundTripper implements http.RoundTripper and logs every outbound
// request and response at debug level with credentials masked.
type LoggingRoundTripper struct {
	next                http.RoundTripper
	upstream            string
	sensitiveDataMasker sensitiveDataMasker
	logFieldMaxLen      int
}

func NewLoggingRoundTripper(next http.RoundTripper, upstream string, opts ...Option) LoggingRoundTripper {
	rt := LoggingRoundTripper{
		next:                next,
		upstream:            upstream,
		sensitiveDataMasker: logx.NewSensitiveDataMasker(),
	}
	for _, opt := range opts {
		opt(&rt)
	}
	return rt
}

func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID := xid.New().String()
	log := logger(ctx).With(
		slog.String(logx.FieldUpstream, rt.upstream),
		slog.String(logx.FieldRequestID, requestID),
	)

	reqBytes, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		log.Error("httputil.DumpRequestOut", logx.Error(err))
	}
	log.Debug(logx.FieldHTTPRequest,
		slog.String(logx.FieldRequestBody, rt.truncate(rt.sensitiveDataMasker.Mask(reqBytes))),
	)

	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		log.Warn("upstream call failed",
			logx.Error(err),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	respBytes, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Error("httputil.DumpResponse", logx.Error(err))
	}
	log.Debug(logx.FieldHTTPResponse,
		slog.Int(logx.FieldResponseStatus, resp.StatusCode),
		slog.String(logx.FieldResponseBody, rt.truncate(rt.sensitiveDataMasker.Mask(respBytes))),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)
	return resp, nil
}

func (rt LoggingRoundTripper) truncate(b []byte) string {
	if rt.logFieldMaxLen > 0 && len(b) > rt.logFieldMaxLen {
		b = b[:rt.logFieldMaxLen]
	}
	return string(b)
}
