// README: Entry point; loads config, wires services, serves the API until SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"travelapi/internal/app"
	"travelapi/internal/config"
	"travelapi/internal/contextx"
	apihttp "travelapi/internal/http"
	"travelapi/internal/logx"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := logx.NewLogger(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("travel-api stopped", logx.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(ctx, cfg, reg)
	if err != nil {
		return err
	}
	defer a.Close()
	app.LogMissingKeys(ctx, cfg)

	gin.SetMode(gin.ReleaseMode)
	router := apihttp.NewRouter(apihttp.RouterDeps{
		Transport: a.Transport,
		Places:    a.Places,
		Weather:   a.Weather,
		Flights:   a.Flights,
		Logger:    log,
		Metrics:   a.Metrics,
		Gatherer:  reg,
	})

	return apihttp.NewServer(cfg.HTTP, router).Run(ctx)
}
