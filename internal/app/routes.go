package app

import (
	"context"
	"log/slog"

	"travelapi/internal/apperr"
	"travelapi/internal/logx"
	"travelapi/internal/modules/transport"
	"travelapi/internal/types"
)

type NamedRouter struct {
	Name   string
	Router transport.Router
}

// RouteChain asks routers in order and returns the first route. A timeout
// stops the walk since later routers share the same deadline.
type RouteChain []NamedRouter

func (c RouteChain) Route(ctx context.Context, from, to types.Point) (types.Route, error) {
	var firstErr error
	for _, r := range c {
		route, err := r.Router.Route(ctx, from, to)
		if err == nil {
			return route, nil
		}
		logger(ctx).Warn("router failed", slog.String(logx.FieldUpstream, r.Name), logx.Error(err))
		if firstErr == nil {
			firstErr = err
		}
		if apperr.KindOf(err) == apperr.KindUpstreamTimeout || ctx.Err() != nil {
			return types.Route{}, apperr.FromTransport(r.Name, err)
		}
	}
	if firstErr == nil {
		return types.Route{}, apperr.New(apperr.KindUpstreamFailure, "no router configured")
	}
	return types.Route{}, firstErr
}
