// README: Config loader: optional .env, then environment variables with defaults.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP        HTTP
	Log         Log
	Upstream    Upstream
	ORS         ORS
	Nominatim   Nominatim
	SNCF        SNCF
	Google      Google
	Foursquare  Foursquare
	OpenWeather OpenWeather
	OpenSky     OpenSky
	Redis       Redis
	Airports    Airports
	Cache       Cache
}

type HTTP struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type Cache struct {
	GeocodeTTL time.Duration `env:"GEOCODE_CACHE_TTL" envDefault:"24h"`
}

// Load reads the configuration once at startup. The result is passed by value
// into constructors and never mutated afterwards.
func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
