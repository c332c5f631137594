package location_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"travelapi/internal/apperr"
	"travelapi/internal/metrics"
	"travelapi/internal/modules/location"
	"travelapi/internal/types"
)

var nice = types.Point{Lat: 43.7102, Lng: 7.2620}

type countingGeocoder struct {
	calls atomic.Int32
	point types.Point
	err   error
	delay time.Duration
}

func (g *countingGeocoder) Geocode(ctx context.Context, _ string) (types.Point, error) {
	g.calls.Add(1)
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return types.Point{}, ctx.Err()
		}
	}
	return g.point, g.err
}

func TestChainFallsThrough(t *testing.T) {
	rq := require.New(t)

	first := &countingGeocoder{err: apperr.NotFound("nothing")}
	second := &countingGeocoder{point: nice}
	third := &countingGeocoder{point: types.Point{Lat: 1, Lng: 1}}

	chain := location.Chain{{Name: "ors", Geocoder: first}, {Name: "nominatim", Geocoder: second}, {Name: "google", Geocoder: third}}
	p, err := chain.Geocode(context.Background(), "Nice")
	rq.NoError(err)
	rq.Equal(nice, p)
	rq.EqualValues(1, first.calls.Load())
	rq.EqualValues(1, second.calls.Load())
	rq.EqualValues(0, third.calls.Load())
}

func TestChainAllMissIsNotFound(t *testing.T) {
	chain := location.Chain{
		{Name: "ors", Geocoder: &countingGeocoder{err: apperr.NotFound("nothing")}},
		{Name: "nominatim", Geocoder: &countingGeocoder{err: apperr.UpstreamStatus("nominatim", 503)}},
	}
	_, err := chain.Geocode(context.Background(), "Atlantis")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestChainTimeout(t *testing.T) {
	chain := location.Chain{
		{Name: "ors", Geocoder: &countingGeocoder{err: apperr.FromTransport("ors", context.DeadlineExceeded)}},
		{Name: "nominatim", Geocoder: &countingGeocoder{err: apperr.NotFound("nothing")}},
	}
	_, err := chain.Geocode(context.Background(), "Nice")
	require.ErrorIs(t, err, apperr.ErrUpstreamTimeout)
}

func TestChainStopsWhenContextDone(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	slow := &countingGeocoder{delay: time.Second}
	next := &countingGeocoder{point: nice}
	_, err := location.Chain{{Name: "ors", Geocoder: slow}, {Name: "nominatim", Geocoder: next}}.Geocode(ctx, "Nice")
	rq.ErrorIs(err, apperr.ErrUpstreamTimeout)
	rq.EqualValues(0, next.calls.Load())
}

func TestServiceCachesHits(t *testing.T) {
	rq := require.New(t)

	m := metrics.New(prometheus.NewRegistry())
	g := &countingGeocoder{point: nice}
	svc := location.NewService("car", g, location.NewStore(nil, time.Hour), m)

	for range 3 {
		p, err := svc.Resolve(context.Background(), "  Nice ")
		rq.NoError(err)
		rq.Equal(nice, p)
	}
	_, err := svc.Resolve(context.Background(), "nice")
	rq.NoError(err)

	rq.EqualValues(1, g.calls.Load())
	rq.InDelta(1, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("miss")), 0)
	rq.InDelta(3, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("hit_local")), 0)
}

func TestServiceDoesNotCacheMisses(t *testing.T) {
	rq := require.New(t)

	g := &countingGeocoder{err: apperr.NotFound("nothing")}
	svc := location.NewService("car", g, location.NewStore(nil, time.Hour), nil)

	for range 2 {
		_, err := svc.Resolve(context.Background(), "Atlantis")
		rq.ErrorIs(err, apperr.ErrNotFound)
	}
	rq.EqualValues(2, g.calls.Load())
}

func TestServiceCollapsesConcurrentLookups(t *testing.T) {
	rq := require.New(t)

	g := &countingGeocoder{point: nice, delay: 50 * time.Millisecond}
	svc := location.NewService("train", g, location.NewStore(nil, time.Hour), nil)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Resolve(context.Background(), "Nice")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		rq.NoError(err)
	}
	rq.EqualValues(1, g.calls.Load())
}

type gatedGeocoder struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (g *gatedGeocoder) Geocode(ctx context.Context, _ string) (types.Point, error) {
	if g.calls.Add(1) == 1 {
		close(g.started)
	}
	select {
	case <-g.release:
		return nice, nil
	case <-ctx.Done():
		return types.Point{}, ctx.Err()
	}
}

func TestServiceCancelledCallerDoesNotFailOthers(t *testing.T) {
	rq := require.New(t)

	g := &gatedGeocoder{started: make(chan struct{}), release: make(chan struct{})}
	svc := location.NewService("car", g, location.NewStore(nil, time.Minute), nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Resolve(ctxA, "Paris")
		errA <- err
	}()
	<-g.started

	type result struct {
		p   types.Point
		err error
	}
	resB := make(chan result, 1)
	go func() {
		p, err := svc.Resolve(context.Background(), "Paris")
		resB <- result{p, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	rq.ErrorIs(<-errA, context.Canceled)

	close(g.release)
	b := <-resB
	rq.NoError(b.err)
	rq.Equal(nice, b.p)
}

func TestServiceRejectsEmptyName(t *testing.T) {
	g := &countingGeocoder{point: nice}
	svc := location.NewService("car", g, nil, nil)

	_, err := svc.Resolve(context.Background(), "  ")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	require.EqualValues(t, 0, g.calls.Load())
}

func TestStoreRedisSecondLevel(t *testing.T) {
	addr := os.Getenv("TRAVELAPI_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRAVELAPI_REDIS_ADDR not set; skipping integration test")
	}
	rq := require.New(t)

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	key := location.Key("test", time.Now().Format(time.RFC3339Nano))

	writer := location.NewStore(rdb, time.Minute)
	rq.NoError(writer.Set(ctx, key, nice))

	reader := location.NewStore(rdb, time.Minute)
	p, result, err := reader.Get(ctx, key)
	rq.NoError(err)
	rq.Equal(location.CacheHitRedis, result)
	rq.Equal(nice, p)

	_, result, err = reader.Get(ctx, key)
	rq.NoError(err)
	rq.Equal(location.CacheHitLocal, result)
}
