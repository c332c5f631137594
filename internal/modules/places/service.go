// README: Venue search: geocode the city, search nearby, enrich, fetch photos with bounded fan-out.
package places

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"travelapi/internal/apperr"
	"travelapi/internal/contextx"
	"travelapi/internal/logx"
	"travelapi/internal/modules/enrichment"
	"travelapi/internal/providers/foursquare"
	"travelapi/internal/types"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const photoFetchLimit = 4

type Resolver interface {
	Resolve(ctx context.Context, name string) (types.Point, error)
}

type Directory interface {
	Search(ctx context.Context, params foursquare.SearchParams) ([]foursquare.Place, error)
	Details(ctx context.Context, id string) (foursquare.Place, error)
	Photos(ctx context.Context, id string) ([]foursquare.Photo, error)
}

type Service struct {
	geocoder  Resolver
	directory Directory
	validate  *validator.Validate
}

func NewService(geocoder Resolver, directory Directory) *Service {
	return &Service{
		geocoder:  geocoder,
		directory: directory,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) Search(ctx context.Context, kind Kind, q Query) ([]Place, error) {
	cfg, ok := kinds[kind]
	if !ok {
		return nil, apperr.InvalidInput("unknown place kind %q", kind)
	}
	q.City = strings.TrimSpace(q.City)
	if err := s.validate.Struct(q); err != nil {
		return nil, apperr.InvalidInput("invalid query: %v", err)
	}

	center, err := s.geocoder.Resolve(ctx, q.City)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUpstreamTimeout {
			return nil, err
		}
		return nil, apperr.Wrap(err, apperr.KindNotFound, "could not resolve coordinates for "+q.City)
	}

	params := foursquare.SearchParams{
		Near:       center,
		Radius:     lo.Ternary(q.Radius > 0, q.Radius, defaultRadius),
		Limit:      lo.Ternary(q.Limit > 0, q.Limit, cfg.defaultLimit),
		Categories: lo.Ternary(q.Categories != "", q.Categories, cfg.categories),
	}
	if kind == KindAttraction {
		params.Query = q.Query
	}

	found, err := s.directory.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search %ss: %w", kind, err)
	}

	out := make([]Place, len(found))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(photoFetchLimit)
	for i, venue := range found {
		g.Go(func() error {
			out[i] = s.build(gctx, cfg, venue)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build %ss: %w", kind, err)
	}

	logger(ctx).Debug("places search", slog.String("kind", string(kind)), slog.Int("results", len(out)))
	return out, nil
}

// build never fails: missing photos or details degrade to placeholders.
func (s *Service) build(ctx context.Context, cfg kindConfig, venue foursquare.Place) Place {
	if cfg.withDetails {
		details, err := s.directory.Details(ctx, venue.ID)
		if err != nil {
			logger(ctx).Warn("place details failed", slog.String("id", venue.ID), logx.Error(err))
		} else {
			details.ID = venue.ID
			if details.Distance == nil {
				details.Distance = venue.Distance
			}
			venue = details
		}
	}

	derived := enrichment.Derive(venue.ID, cfg.prices)
	p := Place{
		ID:       venue.ID,
		Name:     lo.CoalesceOrEmpty(venue.Name, noName),
		Location: lo.CoalesceOrEmpty(venue.Location.FormattedAddress, venue.Location.Address, noAddress),
		Distance: unknown,
		Rating:   derived.Rating,
		Price:    derived.Price,
		Currency: types.CurrencyEUR,
		Categories: lo.Map(venue.Categories, func(c foursquare.Category, _ int) string {
			return c.Name
		}),
		Photos: []string{noPhoto},
	}
	if venue.Distance != nil {
		p.Distance = *venue.Distance
	}
	if cfg.withDetails {
		p.Phone = lo.CoalesceOrEmpty(venue.Tel, "No phone available")
		p.Website = lo.CoalesceOrEmpty(venue.Website, "No website available")
	}

	photos, err := s.directory.Photos(ctx, venue.ID)
	if err != nil {
		logger(ctx).Warn("place photos failed", slog.String("id", venue.ID), logx.Error(err))
		return p
	}
	if len(photos) > 0 {
		p.Photos = lo.Map(photos, func(ph foursquare.Photo, _ int) string { return ph.URL() })
	}
	return p
}
