// README: Transport option handlers: one mode per path, or a mixed list.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"travelapi/internal/apperr"
	"travelapi/internal/modules/transport"
	"travelapi/internal/types"
)

type TransportHandler struct {
	transport *transport.Service
}

func NewTransportHandler(svc *transport.Service) *TransportHandler {
	return &TransportHandler{transport: svc}
}

// Quote serves GET /api/transport/:mode.
func (h *TransportHandler) Quote(c *gin.Context) {
	mode, err := types.ParseMode(c.Param("mode"))
	if err != nil {
		writeError(c, apperr.InvalidInput("%v", err))
		return
	}
	var q transport.Query
	if !bindQuery(c, &q) {
		return
	}

	options, err := h.transport.Quote(c.Request.Context(), mode, q)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, options)
}

// QuoteAll serves GET /api/transport?modes=car,train. Without modes every
// configured mode is queried.
func (h *TransportHandler) QuoteAll(c *gin.Context) {
	var q transport.Query
	if !bindQuery(c, &q) {
		return
	}

	modes := h.transport.Modes()
	if raw := strings.TrimSpace(c.Query("modes")); raw != "" {
		modes = nil
		for _, part := range lo.Uniq(strings.Split(raw, ",")) {
			mode, err := types.ParseMode(strings.TrimSpace(part))
			if err != nil {
				writeError(c, apperr.InvalidInput("%v", err))
				return
			}
			modes = append(modes, mode)
		}
	}

	options, err := h.transport.QuoteAll(c.Request.Context(), modes, q)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, options)
}
