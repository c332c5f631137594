// README: Bench cases: environment checks, endpoint contracts, live quotes and throughput.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Live bool
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		var res Result
		if tc.Live && !r.cfg.Live {
			res = Result{Status: statusSkip, Note: "needs -live"}
		} else {
			res = tc.Run(ctx, r)
		}
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

// countQuery quotes table the same way the server does when it loads airports.
func countQuery(table string) string {
	return "SELECT count(*) FROM " + pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	date := r.cfg.Date
	route := func(path string, params map[string]string) string {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		return base + path + "?" + q.Encode()
	}

	return []TestCase{
		{
			Name: "Env: Postgres airports table",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "dsn not configured"}
				}
				var n int
				if err := r.db.QueryRow(ctx, countQuery(r.cfg.Table)).Scan(&n); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("rows=%d", n)}
			},
		},
		{
			Name: "Env: Redis geocode cache",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				keys, err := r.redis.Keys(ctx, "travelapi:geocode:*").Result()
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass, Note: fmt.Sprintf("cached=%d", len(keys))}
			},
		},

		httpCase("API: health", base+"/health", http.StatusOK),
		httpCase("API: metrics exposed", base+"/metrics", http.StatusOK),

		// Validation happens before any upstream call, so these run offline.
		httpCase("Transport: missing origin -> 400",
			route("/api/transport/car", map[string]string{"destination": "Nice", "date": date}), http.StatusBadRequest),
		httpCase("Transport: unknown mode -> 400",
			route("/api/transport/boat", map[string]string{"origin": "Paris", "destination": "Nice"}), http.StatusBadRequest),
		httpCase("Transport: malformed date -> 400",
			route("/api/transport/flight", map[string]string{"origin": "Paris", "destination": "Nice", "date": "01/05/2026"}), http.StatusBadRequest),
		httpCase("Flight: city without airport -> 404",
			route("/api/transport/flight", map[string]string{"origin": "Atlantis", "destination": "Nice", "date": date}), http.StatusNotFound),
		optionsCase("Flight: Paris -> Nice priced",
			route("/api/transport/flight", map[string]string{"origin": "Paris", "destination": "Nice", "date": date}), false),
		httpCase("Weather: bad date -> 400",
			route("/api/weather", map[string]string{"city": "Nice", "date": "tomorrow"}), http.StatusBadRequest),
		httpCase("Flights: end before begin -> 400",
			route("/api/flights/departure", map[string]string{"airport": "CDG", "begin": "200", "end": "100"}), http.StatusBadRequest),

		optionsCase("Live: car Paris -> Lyon",
			route("/api/transport/car", map[string]string{"origin": "Paris", "destination": "Lyon", "date": date}), true),
		optionsCase("Live: train Paris -> Nice",
			route("/api/transport/train", map[string]string{"origin": "Paris", "destination": "Nice", "date": date}), true),
		optionsCase("Live: mixed Paris -> Marseille",
			route("/api/transport", map[string]string{"origin": "Paris", "destination": "Marseille", "date": date}), true),
		liveStatusCase("Live: weather Nice", route("/api/weather", map[string]string{"city": "Nice"})),
		liveStatusCase("Live: attractions Nice", route("/api/attractions", map[string]string{"city": "Nice", "limit": "3"})),

		{
			Name: "Perf: flight quote throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, route("/api/transport/flight",
					map[string]string{"origin": "Paris", "destination": "Rome", "date": date}))
			},
		},
		{
			Name: "Perf: cached car quote throughput",
			Live: true,
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, route("/api/transport/car",
					map[string]string{"origin": "Paris", "destination": "Lyon", "date": date}))
			},
		},
	}
}

func get(ctx context.Context, r *Runner, target string) (int, []byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, time.Since(start), err
}

func httpCase(name, target string, okStatuses ...int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			status, _, latency, err := get(ctx, r, target)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if slices.Contains(okStatuses, status) {
				return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
		},
	}
}

func liveStatusCase(name, target string) TestCase {
	tc := httpCase(name, target, http.StatusOK)
	tc.Live = true
	return tc
}

// optionsCase expects a non-empty list where every entry carries the shared keys.
func optionsCase(name, target string, live bool) TestCase {
	return TestCase{
		Name: name,
		Live: live,
		Run: func(ctx context.Context, r *Runner) Result {
			status, body, latency, err := get(ctx, r, target)
			if err != nil {
				return Result{Status: statusFail, Note: err.Error()}
			}
			if status != http.StatusOK {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
			}
			var options []map[string]any
			if err := json.Unmarshal(body, &options); err != nil {
				return Result{Status: statusFail, Latency: latency, Note: err.Error()}
			}
			if len(options) == 0 {
				return Result{Status: statusFail, Latency: latency, Note: "empty list"}
			}
			for _, o := range options {
				for _, key := range []string{"from", "to", "date", "time", "duration", "type", "price", "distance"} {
					if _, ok := o[key]; !ok {
						return Result{Status: statusFail, Latency: latency, Note: "missing key " + key}
					}
				}
			}
			return Result{Status: statusPass, Latency: latency, Note: fmt.Sprintf("options=%d first.price=%v", len(options), options[0]["price"])}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, target string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for range r.cfg.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, _, err := get(ctx, r, target)
				if err != nil || status >= http.StatusInternalServerError {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}
