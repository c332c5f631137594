package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapi/internal/modules/weather"
)

type WeatherHandler struct {
	weather *weather.Service
}

func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

func (h *WeatherHandler) Get(c *gin.Context) {
	var q weather.Query
	if !bindQuery(c, &q) {
		return
	}
	report, err := h.weather.Lookup(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, report)
}
