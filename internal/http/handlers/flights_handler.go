// README: Live flight feed handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapi/internal/modules/flights"
)

type FlightsHandler struct {
	flights *flights.Service
}

func NewFlightsHandler(svc *flights.Service) *FlightsHandler {
	return &FlightsHandler{flights: svc}
}

func (h *FlightsHandler) Departures(c *gin.Context) { h.list(c, h.flights.Departures) }
func (h *FlightsHandler) Arrivals(c *gin.Context)   { h.list(c, h.flights.Arrivals) }

func (h *FlightsHandler) list(c *gin.Context, fetch func(context.Context, flights.Query) ([]flights.Flight, error)) {
	var q flights.Query
	if !bindQuery(c, &q) {
		return
	}
	found, err := fetch(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, found)
}
