// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"travelapi/internal/http/handlers"
	"travelapi/internal/http/middleware"
	"travelapi/internal/metrics"
	"travelapi/internal/modules/flights"
	"travelapi/internal/modules/places"
	"travelapi/internal/modules/transport"
	"travelapi/internal/modules/weather"
)

// RouterDeps holds the services behind the API. A nil service leaves its
// routes unregistered.
type RouterDeps struct {
	Transport *transport.Service
	Places    *places.Service
	Weather   *weather.Service
	Flights   *flights.Service

	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceID(), middleware.Logging(deps.Logger), middleware.Recovery())
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	api := r.Group("/api")

	if deps.Transport != nil {
		transportHandler := handlers.NewTransportHandler(deps.Transport)
		api.GET("/transport", transportHandler.QuoteAll)
		api.GET("/transport/:mode", transportHandler.Quote)
	}

	if deps.Places != nil {
		placesHandler := handlers.NewPlacesHandler(deps.Places)
		api.GET("/attractions", placesHandler.Attractions)
		api.GET("/hotels", placesHandler.Hotels)
		api.GET("/restaurants", placesHandler.Restaurants)
	}

	if deps.Weather != nil {
		api.GET("/weather", handlers.NewWeatherHandler(deps.Weather).Get)
	}

	if deps.Flights != nil {
		flightsHandler := handlers.NewFlightsHandler(deps.Flights)
		api.GET("/flights/departure", flightsHandler.Departures)
		api.GET("/flights/arrival", flightsHandler.Arrivals)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}
