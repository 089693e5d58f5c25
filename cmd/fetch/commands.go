package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"marketdata/internal/aggregate"
	"marketdata/internal/config"
	"marketdata/internal/provider"
)

// buildFunc turns configuration into a service; replaced in tests.
type buildFunc func(config.Config, *slog.Logger) *aggregate.Service

type app struct {
	build   buildFunc
	svc     *aggregate.Service
	asJSON  bool
	timeout time.Duration
}

// newRootCmd creates the root command
func newRootCmd(build buildFunc) *cobra.Command {
	a := &app{build: build}
	var configPath string
	var debug bool

	root := &cobra.Command{
		Use:           "fetch",
		Short:         "One-shot market data retrieval",
		Long:          "fetch walks the same provider chains as the server and prints one record.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if debug {
				cfg.Log.Level = "debug"
			}
			a.timeout = time.Duration(cfg.Server.RequestTimeoutSec) * time.Second
			a.svc = a.build(cfg, cfg.Log.NewLogger(cmd.ErrOrStderr()))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "configuration file path (json or yaml)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print the canonical JSON record")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log every attempt and cache lookup")

	root.AddCommand(
		a.stockCmd(),
		a.fxCmd(),
		a.fundamentalsCmd(),
		a.indicatorsCmd(),
		a.overviewCmd(),
		a.listingCmd(),
	)
	return root
}

func (a *app) stockCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stock MARKET TICKER",
		Short: "Daily bars and price summary for a us or kr ticker",
		Example: `  fetch stock us AAPL --period 1y
  fetch stock kr 005930`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := parseMarket(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			q, err := a.svc.Stock(ctx, market, args[1], provider.ParsePeriod(period))
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), q, func() string { return renderQuote(q) })
		},
	}
	cmd.Flags().StringVar(&period, "period", string(provider.DefaultPeriod), "1d, 5d, 1mo, 3mo, 6mo, 1y, 2y or 5y")
	return cmd
}

func (a *app) fxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fx",
		Short: "Current USD/KRW rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			r, err := a.svc.ExchangeRate(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), r, func() string { return renderRate(r) })
		},
	}
}

func (a *app) fundamentalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fundamentals MARKET TICKER",
		Short: "Valuation ratios (best effort)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := parseMarket(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			f, err := a.svc.Fundamentals(ctx, market, args[1])
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), f, func() string { return renderFundamentals(f) })
		},
	}
}

func (a *app) indicatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indicators MARKET TICKER",
		Short: "RSI, MACD, Bollinger bands and SMAs over one year of closes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			market, err := parseMarket(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			s, err := a.svc.Indicators(ctx, market, args[1])
			if err != nil {
				return err
			}
			ticker, _ := aggregate.NormalizeTicker(market, args[1])
			return a.print(cmd.OutOrStdout(), s, func() string { return renderIndicators(ticker, s) })
		},
	}
}

func (a *app) overviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Headline indices and USD/KRW",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			o, err := a.svc.Overview(ctx)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), o, func() string { return renderOverview(o) })
		},
	}
}

func (a *app) listingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listing [CODE...]",
		Short: "KRX company names, all or for the given codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx(cmd)
			defer cancel()
			names, err := a.svc.Listing(ctx)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				picked := make(map[string]string, len(args))
				for _, code := range args {
					if name, ok := names[code]; ok {
						picked[code] = name
					}
				}
				names = picked
			}
			return a.print(cmd.OutOrStdout(), names, func() string { return renderListing(names) })
		},
	}
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	if a.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.timeout)
}

func (a *app) print(w io.Writer, v any, human func() string) error {
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, human())
	return err
}

func parseMarket(s string) (provider.Market, error) {
	m, ok := provider.ParseMarket(s)
	if !ok {
		return "", fmt.Errorf("%w: %q (want us or kr)", aggregate.ErrInvalidMarket, s)
	}
	return m, nil
}

func sortedCodes(names map[string]string) []string {
	codes := make([]string, 0, len(names))
	for c := range names {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
