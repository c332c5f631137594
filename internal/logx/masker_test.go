package logx_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"travelapi/internal/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)
	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "ORS api key in query",
			input:  "GET /geocode/search?api_key=5b3ce359&text=Paris HTTP/1.1",
			output: "GET /geocode/search?api_key=[MASKED]&text=Paris HTTP/1.1",
		},
		{
			name:   "OpenWeather appid",
			input:  "GET /data/2.5/weather?appid=8e13&q=Nice&units=metric HTTP/1.1",
			output: "GET /data/2.5/weather?appid=[MASKED]&q=Nice&units=metric HTTP/1.1",
		},
		{
			name:   "Basic auth header",
			input:  "Authorization: Basic Y2U3NzpwYXNz\r\nAccept: */*",
			output: "Authorization: Basic [MASKED]\r\nAccept: */*",
		},
		{
			name:   "Raw key header",
			input:  "Authorization: fsq3abcdef\r\n",
			output: "Authorization: [MASKED]\r\n",
		},
		{
			name:   "Password in JSON",
			input:  `{"user":"bo","password":"abc123"}`,
			output: `{"user":"bo","password":"[MASKED]"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.output, string(masker.Mask([]byte(tc.input))))
		})
	}
}

func TestNewLogger(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	logger := logx.NewLogger(&buf, "json", "warn")
	logger.Info("hidden")
	logger.Warn("shown", slog.String("k", "v"))

	rq.NotContains(buf.String(), "hidden")
	rq.Contains(buf.String(), `"msg":"shown"`)
	rq.Equal(slog.LevelDebug, logx.ParseLevel("DEBUG"))
	rq.Equal(slog.LevelInfo, logx.ParseLevel("nonsense"))
}
