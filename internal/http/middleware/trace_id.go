// README: Trace id per request, taken from X-Trace-Id or generated.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"

	"travelapi/internal/contextx"
)

const HeaderTraceID = "X-Trace-Id"

func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = xid.New().String()
		}

		ctx := contextx.WithTraceID(c.Request.Context(), contextx.TraceID(traceID))
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, traceID)

		c.Next()
	}
}
