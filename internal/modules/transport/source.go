package transport

import (
	"context"
	"errors"

	"travelapi/internal/apperr"
	"travelapi/internal/types"
)

// Source quotes one transport mode. Every failure it returns is classified
// with an apperr kind.
type Source interface {
	Mode() types.Mode
	Quote(ctx context.Context, req Request) ([]Option, error)
}

// Resolver turns a place name into coordinates; location.Service implements it.
type Resolver interface {
	Resolve(ctx context.Context, name string) (types.Point, error)
}

// unresolved reports a geocoding failure as NotFound unless it was a timeout.
func unresolved(name string, err error) error {
	var e *apperr.Error
	if errors.As(err, &e) && (e.Kind == apperr.KindUpstreamTimeout || e.Kind == apperr.KindNotFound) {
		return err
	}
	if apperr.IsTimeout(err) {
		return apperr.FromTransport("geocoder", err)
	}
	return apperr.Wrap(err, apperr.KindNotFound, "could not resolve coordinates for "+name)
}
