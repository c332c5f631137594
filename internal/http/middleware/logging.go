// README: Logging middleware: binds a request-scoped logger and logs the outcome.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"travelapi/internal/contextx"
	"travelapi/internal/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logging expects TraceID to run first. base may be nil, then slog.Default is used.
func Logging(base *slog.Logger) gin.HandlerFunc {
	if base == nil {
		base = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		traceID, _ := contextx.TraceIDFromContext(ctx)
		l := base.With(
			logx.Stringer(logx.FieldTraceID, traceID),
			slog.String(logx.FieldHTTPMethod, c.Request.Method),
			logx.Stringer(logx.FieldURL, c.Request.URL),
			slog.String(logx.FieldIP, c.ClientIP()),
		)
		c.Request = c.Request.WithContext(contextx.WithLogger(ctx, l))

		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		l.Log(ctx, level, logx.FieldHTTPResponse,
			slog.String(logx.FieldRoute, c.FullPath()),
			slog.Int(logx.FieldResponseStatus, c.Writer.Status()),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
		)
	}
}
