// README: Composition root: builds upstream clients, caches and module services from Config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"travelapi/internal/config"
	"travelapi/internal/contextx"
	"travelapi/internal/httpx"
	"travelapi/internal/infra"
	"travelapi/internal/logx"
	"travelapi/internal/maps"
	"travelapi/internal/metrics"
	"travelapi/internal/modules/airport"
	"travelapi/internal/modules/flights"
	"travelapi/internal/modules/location"
	"travelapi/internal/modules/places"
	"travelapi/internal/modules/pricing"
	"travelapi/internal/modules/transport"
	"travelapi/internal/modules/weather"
	"travelapi/internal/providers/foursquare"
	"travelapi/internal/providers/nominatim"
	"travelapi/internal/providers/opensky"
	"travelapi/internal/providers/openweather"
	"travelapi/internal/providers/ors"
	"travelapi/internal/providers/sncf"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// App holds the wired services. Close releases the optional Redis and
// Postgres connections.
type App struct {
	Transport *transport.Service
	Places    *places.Service
	Weather   *weather.Service
	Flights   *flights.Service
	Airports  *airport.Store
	Metrics   *metrics.Metrics

	closers []func()
}

// New wires every service. reg may be nil, then metrics are collected but
// not exported.
func New(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*App, error) {
	a := &App{Metrics: metrics.New(reg)}

	client := func(upstream string) *http.Client {
		return httpx.NewClient(upstream, httpx.ClientConfig{
			Timeout:        cfg.Upstream.Timeout,
			LogFieldMaxLen: cfg.Upstream.LogFieldMaxLen,
			Metrics:        a.Metrics,
		})
	}

	rdb, err := a.redis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	geocodeStore := location.NewStore(rdb, cfg.Cache.GeocodeTTL)

	airports, err := a.airports(ctx, cfg.Airports)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Airports = airports

	osm := nominatim.New(cfg.Nominatim, cfg.Upstream.UserAgent, client(nominatim.Name))
	orsClient := ors.New(cfg.ORS, client(ors.Name))

	carChain := location.Chain{
		{Name: ors.Name, Geocoder: orsClient},
		{Name: nominatim.Name, Geocoder: osm},
	}
	routers := RouteChain{{Name: ors.Name, Router: orsClient}}

	if cfg.Google.MapsAPIKey != "" {
		googleClient := client(maps.Name)
		placesSvc, err := maps.NewPlacesService(cfg.Google.MapsAPIKey, googleClient)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("maps.NewPlacesService: %w", err)
		}
		routeSvc, err := maps.NewRouteService(cfg.Google.MapsAPIKey, googleClient)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("maps.NewRouteService: %w", err)
		}
		carChain = append(carChain, location.Provider{Name: maps.Name, Geocoder: placesSvc})
		routers = append(routers, NamedRouter{Name: maps.Name, Router: routeSvc})
	}

	carGeocoder := location.NewService("car", carChain, geocodeStore, a.Metrics)
	osmGeocoder := location.NewService("osm", location.Chain{{Name: nominatim.Name, Geocoder: osm}}, geocodeStore, a.Metrics)

	fares := pricing.NewService(nil)
	a.Transport = transport.NewService(nil,
		transport.NewCarSource(carGeocoder, routers, fares),
		transport.NewTrainSource(osmGeocoder, sncf.New(cfg.SNCF, client(sncf.Name)), fares),
		transport.NewFlightSource(airports, fares),
	)
	a.Places = places.NewService(osmGeocoder, foursquare.New(cfg.Foursquare, client(foursquare.Name)))
	a.Weather = weather.NewService(openweather.New(cfg.OpenWeather, client(openweather.Name)))
	a.Flights = flights.NewService(opensky.New(cfg.OpenSky, client(opensky.Name)), airports)

	return a, nil
}

func (a *App) redis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil //nolint:nilnil
	}
	rdb, err := infra.NewRedis(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("infra.NewRedis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	return rdb, nil
}

// airports prefers the Postgres table when a DSN is configured.
func (a *App) airports(ctx context.Context, cfg config.Airports) (*airport.Store, error) {
	if cfg.DSN == "" {
		store, err := airport.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("airport.LoadEmbedded: %w", err)
		}
		return store, nil
	}

	pool, err := infra.NewDB(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("infra.NewDB: %w", err)
	}
	defer pool.Close()

	store, err := airport.LoadFromDB(ctx, pool, cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("airport.LoadFromDB: %w", err)
	}
	logger(ctx).Info("airports loaded from database", slog.Int("count", store.Len()))
	return store, nil
}

func (a *App) Close() {
	for _, closeFn := range a.closers {
		closeFn()
	}
	a.closers = nil
}

// LogMissingKeys warns about upstreams that will reject every call.
func LogMissingKeys(ctx context.Context, cfg config.Config) {
	missing := map[string]string{
		ors.Name:         cfg.ORS.APIKey,
		sncf.Name:        cfg.SNCF.APIKey,
		foursquare.Name:  cfg.Foursquare.APIKey,
		openweather.Name: cfg.OpenWeather.APIKey,
	}
	for name, key := range missing {
		if key == "" {
			logger(ctx).Warn("api key not configured", slog.String(logx.FieldUpstream, name))
		}
	}
}
