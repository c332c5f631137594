// README: Recovery middleware: a panicking handler answers 500 and logs the stack.
package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"travelapi/internal/apperr"
	"travelapi/internal/logx"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := c.Request.Context()
				logger(ctx).Error(
					"panic in handler",
					slog.Any(logx.FieldError, rec),
					slog.String(logx.FieldStack, string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal error",
					"kind":  apperr.KindInternal,
				})
			}
		}()
		c.Next()
	}
}
