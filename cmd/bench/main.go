// README: Smoke and load runner against a running travel API; prints PASS/FAIL per case.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case statusPass:
			pass++
		case statusFail:
			fail++
		case statusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if fail > 0 || (cfg.Strict && skipped > 0) {
		cancel()
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	DSN         string
	Table       string
	RedisAddr   string
	Date        string
	Live        bool
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("TRAVELAPI_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("AIRPORTS_DSN"), "Postgres DSN of the airports table (optional)")
	flag.StringVar(&cfg.Table, "airports-table", envOrDefault("AIRPORTS_TABLE", "airports"), "Airports table, optionally schema-qualified")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("REDIS_ADDR"), "Redis address of the geocode cache (optional)")
	flag.StringVar(&cfg.Date, "date", envOrDefault("TRAVELAPI_BENCH_DATE", time.Now().AddDate(0, 0, 14).Format("2006-01-02")), "Travel date used by quote cases")
	flag.BoolVar(&cfg.Live, "live", envOrDefaultBool("TRAVELAPI_BENCH_LIVE", false), "Run cases that call third-party APIs")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("TRAVELAPI_BENCH_STRICT", false), "Fail on skipped cases")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("TRAVELAPI_BENCH_TIMEOUT", 2*time.Minute), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("TRAVELAPI_BENCH_CONCURRENCY", 20), "Concurrency for perf cases")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("TRAVELAPI_BENCH_DURATION", 10*time.Second), "Duration for perf cases")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
