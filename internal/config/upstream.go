package config

import "time"

type Upstream struct {
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	UserAgent      string        `env:"UPSTREAM_USER_AGENT" envDefault:"travelapi/1.0"`
	LogFieldMaxLen int           `env:"UPSTREAM_LOG_BODY_LIMIT" envDefault:"4096"`
}

type ORS struct {
	APIKey         string `env:"ORS_API_KEY" json:"-"`
	BaseURL        string `env:"ORS_BASE_URL" envDefault:"https://api.openrouteservice.org"`
	GeocodeCountry string `env:"ORS_GEOCODE_COUNTRY" envDefault:"France"`
}

type Nominatim struct {
	BaseURL string `env:"NOMINATIM_BASE_URL" envDefault:"https://nominatim.openstreetmap.org"`
}

type SNCF struct {
	APIKey  string `env:"SNCF_API_KEY" json:"-"`
	BaseURL string `env:"SNCF_BASE_URL" envDefault:"https://api.sncf.com/v1"`
}

type Google struct {
	MapsAPIKey string `env:"GOOGLE_MAPS_API_KEY" json:"-"`
}

type Foursquare struct {
	APIKey  string `env:"FOURSQUARE_API_KEY" json:"-"`
	BaseURL string `env:"FOURSQUARE_BASE_URL" envDefault:"https://api.foursquare.com/v3"`
}

type OpenWeather struct {
	APIKey  string `env:"OPENWEATHER_API_KEY" json:"-"`
	BaseURL string `env:"OPENWEATHER_BASE_URL" envDefault:"https://api.openweathermap.org/data/2.5"`
}

type OpenSky struct {
	User     string `env:"OPENSKY_USER"`
	Password string `env:"OPENSKY_PASSWORD" json:"-"`
	BaseURL  string `env:"OPENSKY_BASE_URL" envDefault:"https://opensky-network.org/api"`
}
