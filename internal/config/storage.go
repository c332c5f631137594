package config

// Redis is optional; an empty address keeps the geocode cache in-process only.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD" json:"-"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Airports switches the airport dataset to a Postgres table when DSN is set.
type Airports struct {
	DSN   string `env:"AIRPORTS_DSN" json:"-"`
	Table string `env:"AIRPORTS_TABLE" envDefault:"airports"`
}
