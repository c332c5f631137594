package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"travelapi/internal/app"
	"travelapi/internal/config"
	"travelapi/internal/contextx"
	"travelapi/internal/logx"
	"travelapi/internal/modules/airport"
	"travelapi/internal/modules/transport"
	"travelapi/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type quoter interface {
	Quote(ctx context.Context, mode types.Mode, q transport.Query) ([]transport.Option, error)
	QuoteAll(ctx context.Context, modes []types.Mode, q transport.Query) ([]transport.Option, error)
}

type airportLookup interface {
	Lookup(query string) (airport.Airport, error)
}

type services struct {
	transport quoter
	airports  airportLookup
	close     func()
}

type loader func(ctx context.Context, verbose bool) (services, error)

func loadServices(ctx context.Context, verbose bool) (services, error) {
	cfg, err := config.Load()
	if err != nil {
		return services{}, err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	} else if !strings.EqualFold(level, "debug") {
		level = "warn"
	}
	slog.SetDefault(logx.NewLogger(os.Stderr, "text", level))

	a, err := app.New(contextx.WithLogger(ctx, slog.Default()), cfg, nil)
	if err != nil {
		return services{}, fmt.Errorf("app.New: %w", err)
	}
	return services{transport: a.Transport, airports: a.Airports, close: a.Close}, nil
}

func newRootCmd(load loader) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "tripctl",
		Short:         "Compare car, train and flight options between two places",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log upstream calls")

	root.AddCommand(newQuoteCmd(load, &verbose), newAirportCmd(load, &verbose))
	return root
}

func newQuoteCmd(load loader, verbose *bool) *cobra.Command {
	var (
		q     transport.Query
		modes []string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print normalized transport options as JSON",
		Example: `  tripctl quote --from Paris --to Nice --date 2026-05-01 --mode train
  tripctl quote --from Paris --to Lyon --date 2026-05-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed := make([]types.Mode, 0, len(modes))
			for _, m := range modes {
				mode, err := types.ParseMode(strings.TrimSpace(m))
				if err != nil {
					return err
				}
				parsed = append(parsed, mode)
			}

			svc, err := load(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			if svc.close != nil {
				defer svc.close()
			}

			var options []transport.Option
			if len(parsed) == 1 {
				options, err = svc.transport.Quote(cmd.Context(), parsed[0], q)
			} else {
				options, err = svc.transport.QuoteAll(cmd.Context(), parsed, q)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), options)
		},
	}

	cmd.Flags().StringVarP(&q.Origin, "from", "f", "", "Origin city or station")
	cmd.Flags().StringVarP(&q.Destination, "to", "t", "", "Destination city or station")
	cmd.Flags().StringVarP(&q.Date, "date", "d", "", "Travel date YYYY-MM-DD, train also accepts \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().StringSliceVarP(&modes, "mode", "m", nil, "car, train or flight; repeat or comma-separate for several, empty for all")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newAirportCmd(load loader, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "airport <city|name|code>",
		Short: "Show the airport a flight quote would use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := load(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			if svc.close != nil {
				defer svc.close()
			}
			a, err := svc.airports.Lookup(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json.Encode: %w", err)
	}
	return nil
}
