package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapi/internal/modules/places"
)

type PlacesHandler struct {
	places *places.Service
}

func NewPlacesHandler(svc *places.Service) *PlacesHandler {
	return &PlacesHandler{places: svc}
}

func (h *PlacesHandler) Attractions(c *gin.Context) { h.search(c, places.KindAttraction) }
func (h *PlacesHandler) Hotels(c *gin.Context)      { h.search(c, places.KindHotel) }
func (h *PlacesHandler) Restaurants(c *gin.Context) { h.search(c, places.KindRestaurant) }

func (h *PlacesHandler) search(c *gin.Context, kind places.Kind) {
	var q places.Query
	if !bindQuery(c, &q) {
		return
	}
	found, err := h.places.Search(c.Request.Context(), kind, q)
	if err != nil {
		writeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, found)
}
