// README: Geocoder contract and the ordered provider fallback chain.
package location

import (
	"context"
	"errors"
	"log/slog"

	"travelapi/internal/apperr"
	"travelapi/internal/contextx"
	"travelapi/internal/logx"
	"travelapi/internal/types"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Geocoder resolves a free-text place name to the first matching coordinate.
// Implementations return an apperr NotFound when the service has no result.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (types.Point, error)
}

type GeocoderFunc func(ctx context.Context, name string) (types.Point, error)

func (f GeocoderFunc) Geocode(ctx context.Context, name string) (types.Point, error) {
	return f(ctx, name)
}

type Provider struct {
	Name     string
	Geocoder Geocoder
}

// Chain tries providers in order and returns the first hit.
type Chain []Provider

// Geocode walks the chain without retries. When every provider fails the
// result is NotFound, unless the deadline expired, which is UpstreamTimeout.
func (c Chain) Geocode(ctx context.Context, name string) (types.Point, error) {
	var timedOut error
	for _, p := range c {
		if p.Geocoder == nil {
			continue
		}
		point, err := p.Geocoder.Geocode(ctx, name)
		if err == nil {
			return point, nil
		}

		logger(ctx).Info("geocoder miss",
			slog.String(logx.FieldUpstream, p.Name),
			slog.String("place", name),
			logx.Error(err),
		)
		if apperr.KindOf(err) == apperr.KindUpstreamTimeout || apperr.IsTimeout(err) {
			timedOut = err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.Point{}, apperr.FromTransport(p.Name, errors.Join(ctxErr, err))
		}
	}

	if timedOut != nil {
		return types.Point{}, apperr.Wrap(timedOut, apperr.KindUpstreamTimeout, "geocoding timed out for "+name)
	}
	return types.Point{}, apperr.NotFound("could not resolve coordinates for %q", name)
}
