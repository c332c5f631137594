// README: Transport service: validates once, dispatches to mode sources, composes mixed lists.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"travelapi/internal/apperr"
	"travelapi/internal/contextx"
	"travelapi/internal/logx"
	"travelapi/internal/types"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Service struct {
	sources  map[types.Mode]Source
	validate *validator.Validate
	now      func() time.Time
}

// NewService registers sources by mode. now supplies "today" for train
// queries without a date; nil means time.Now.
func NewService(now func() time.Time, sources ...Source) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		sources: lo.SliceToMap(sources, func(s Source) (types.Mode, Source) {
			return s.Mode(), s
		}),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}
}

// Modes lists the registered modes in display order.
func (s *Service) Modes() []types.Mode {
	return lo.Filter(types.Modes(), func(m types.Mode, _ int) bool {
		_, ok := s.sources[m]
		return ok
	})
}

// Quote validates q and asks the mode's source. Invalid input is rejected
// before any upstream call.
func (s *Service) Quote(ctx context.Context, mode types.Mode, q Query) ([]Option, error) {
	source, ok := s.sources[mode]
	if !ok {
		return nil, apperr.InvalidInput("unsupported transport mode %q", mode)
	}

	q = q.normalized()
	if err := validate(s.validate, q); err != nil {
		return nil, err
	}
	req, err := parse(q, mode, s.now())
	if err != nil {
		return nil, err
	}

	options, err := source.Quote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mode, err)
	}
	return options, nil
}

// QuoteAll quotes several modes concurrently and concatenates the results in
// mode order. A failing mode is logged and skipped; the first error is only
// returned when every mode failed.
func (s *Service) QuoteAll(ctx context.Context, modes []types.Mode, q Query) ([]Option, error) {
	if len(modes) == 0 {
		modes = s.Modes()
	}
	modes = lo.Uniq(modes)

	q = q.normalized()
	if err := validate(s.validate, q); err != nil {
		return nil, err
	}

	results := make([][]Option, len(modes))
	errs := make([]error, len(modes))

	var g errgroup.Group
	for i, mode := range modes {
		g.Go(func() error {
			results[i], errs[i] = s.Quote(ctx, mode, q)
			return nil
		})
	}
	_ = g.Wait()

	var options []Option
	for i, mode := range modes {
		if errs[i] != nil {
			logger(ctx).Warn("mode skipped",
				slog.String(logx.FieldMode, string(mode)),
				slog.String("kind", string(apperr.KindOf(errs[i]))),
				logx.Error(errs[i]),
			)
			continue
		}
		options = append(options, results[i]...)
	}

	if len(options) == 0 {
		if err, ok := lo.Find(errs, func(err error) bool { return err != nil }); ok {
			return nil, err
		}
		return []Option{}, nil
	}
	return options, nil
}
