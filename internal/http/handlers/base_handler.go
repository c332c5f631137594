// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapi/internal/apperr"
	"travelapi/internal/contextx"
	"travelapi/internal/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type errorResponse struct {
	Error          string      `json:"error"`
	Kind           apperr.Kind `json:"kind"`
	UpstreamStatus int         `json:"upstream_status,omitempty"`
	TraceID        string      `json:"trace_id,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	if status >= http.StatusInternalServerError {
		logger(ctx).Error("request failed", logx.Error(err))
	} else {
		logger(ctx).Info("request rejected", logx.Error(err))
	}

	resp := errorResponse{
		Error:          apperr.PublicMessage(err),
		Kind:           kind,
		UpstreamStatus: apperr.UpstreamStatusOf(err),
	}
	if traceID, terr := contextx.TraceIDFromContext(ctx); terr == nil {
		resp.TraceID = traceID.String()
	}
	writeJSON(c, status, resp)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindNotFound, apperr.KindNoAirport, apperr.KindNoResults:
		return http.StatusNotFound
	case apperr.KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// bindQuery decodes query parameters; a malformed value is InvalidInput.
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		writeError(c, apperr.InvalidInput("invalid query parameters: %v", err))
		return false
	}
	return true
}
