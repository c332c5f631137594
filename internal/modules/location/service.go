// README: Geocoding service: cache lookup, collapsed concurrent misses, provider chain.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"travelapi/internal/apperr"
	"travelapi/internal/logx"
	"travelapi/internal/metrics"
	"travelapi/internal/types"
)

// sharedLookupTimeout bounds a collapsed lookup that no longer follows the
// first caller's context.
const sharedLookupTimeout = 30 * time.Second

type Service struct {
	namespace string
	geocoder  Geocoder
	store     *Store
	metrics   *metrics.Metrics
	group     singleflight.Group
}

// NewService wraps a geocoder (usually a Chain). namespace separates cache
// entries of chains that may answer differently for the same name.
func NewService(namespace string, geocoder Geocoder, store *Store, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.Nop()
	}
	return &Service{namespace: namespace, geocoder: geocoder, store: store, metrics: m}
}

// Resolve returns coordinates for name. Only successful lookups are cached.
func (s *Service) Resolve(ctx context.Context, name string) (types.Point, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Point{}, apperr.InvalidInput("place name is required")
	}
	key := Key(s.namespace, name)

	if s.store != nil {
		p, result, err := s.store.Get(ctx, key)
		if err != nil {
			logger(ctx).Warn("geocode cache read failed", logx.Error(err))
		}
		s.metrics.GeocodeCache.WithLabelValues(string(result)).Inc()
		if result != CacheMiss {
			return p, nil
		}
	}

	// The shared lookup must outlive any single caller: each waiter gives up
	// on its own context instead of cancelling the others.
	ch := s.group.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		p, err := s.geocoder.Geocode(lookupCtx, name)
		if err != nil {
			return nil, err
		}
		if s.store != nil {
			if err := s.store.Set(lookupCtx, key, p); err != nil {
				logger(ctx).Warn("geocode cache write failed", logx.Error(err))
			}
		}
		return p, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return types.Point{}, fmt.Errorf("geocode %q: %w", name, apperr.FromTransport("geocoder", ctx.Err()))
	}
	if res.Err != nil {
		return types.Point{}, fmt.Errorf("geocode %q: %w", name, res.Err)
	}

	p := res.Val.(types.Point) //nolint:forcetypeassert
	logger(ctx).Debug("geocoded", slog.String("place", name), logx.Stringer("point", p))
	return p, nil
}
