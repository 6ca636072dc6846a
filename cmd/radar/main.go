package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"token-radar/internal/alert"
	"token-radar/internal/analysis"
	"token-radar/internal/config"
	"token-radar/internal/connectors"
	"token-radar/internal/connectors/stub"
	"token-radar/internal/discovery"
	"token-radar/internal/domain"
	"token-radar/internal/observability"
	"token-radar/internal/prefilter"
	"token-radar/internal/reporting"
	"token-radar/internal/routing"
	"token-radar/internal/scan"
	"token-radar/internal/scoring"
	"token-radar/internal/session"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "radar",
		Short:         "Solana token conviction radar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(scanCmd(ctx, logger))
	root.AddCommand(adviseCmd())

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func scanCmd(ctx context.Context, logger zerolog.Logger) *cobra.Command {
	var (
		configPath  string
		loop        bool
		interval    time.Duration
		useStub     bool
		outputDir   string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run discovery, analysis, and scoring cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			runner, cleanup, err := buildRunner(ctx, cfg, useStub, metricsAddr, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			onCycle := func(result *scan.CycleResult) {
				if err := emitReport(result, outputDir); err != nil {
					logger.Warn().Err(err).Msg("report output failed")
				}
			}

			if loop {
				err := runner.Run(ctx, interval, onCycle)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			result, err := runner.RunCycle(ctx)
			if err != nil {
				return err
			}
			onCycle(result)
			logger.Info().
				Int("scored", len(result.Breakdowns)).
				Dur("duration", result.Duration).
				Msg("cycle complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML config (defaults apply when empty)")
	cmd.Flags().BoolVar(&loop, "loop", false, "run cycles continuously")
	cmd.Flags().DurationVar(&interval, "interval", 10*time.Minute, "cycle interval in loop mode")
	cmd.Flags().BoolVar(&useStub, "stub", false, "use deterministic stub data sources")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "write markdown and CSV reports here instead of stdout")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	return cmd
}

func adviseCmd() *cobra.Command {
	var (
		current    float64
		scoresPath string
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Suggest an alert threshold from observed scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			observed, err := readScores(scoresPath)
			if err != nil {
				return err
			}
			s := scoring.Advise(observed, current)
			fmt.Printf("current:    %.1f\n", s.Current)
			fmt.Printf("suggested:  %.1f\n", s.Suggested)
			fmt.Printf("samples:    %d\n", s.SampleSize)
			fmt.Printf("p50/p75/p90: %.1f / %.1f / %.1f\n", s.P50, s.P75, s.P90)
			fmt.Printf("rationale:  %s\n", s.Rationale)
			return nil
		},
	}

	cmd.Flags().Float64Var(&current, "current", 70, "current alert threshold")
	cmd.Flags().StringVar(&scoresPath, "scores", "", "file with one observed score per line (required)")
	_ = cmd.MarkFlagRequired("scores")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}

func buildRunner(ctx context.Context, cfg *config.Config, useStub bool, metricsAddr string, logger zerolog.Logger) (*scan.Runner, func(), error) {
	var (
		market   connectors.MarketDataSource
		dex      connectors.DexStatsSource
		security connectors.SecuritySource
		routes   connectors.RoutingSource
		source   discovery.Source
		cleanup  = func() {}
	)

	if useStub {
		sources := stub.NewSources()
		market, dex, security, routes = sources, sources, sources, sources
		source = discovery.NewStaticSource(demoCandidates())
	} else {
		market = connectors.NewBirdeyeClient(cfg.Connectors.Birdeye)
		dex = connectors.NewDexScreenerClient(cfg.Connectors.DexScreener)
		security = connectors.NewRugCheckClient(cfg.Connectors.RugCheck)
		routes = connectors.NewJupiterClient(cfg.Connectors.Jupiter)

		if cfg.Connectors.FeedURL == "" {
			return nil, nil, fmt.Errorf("connectors.feed_url is required without --stub")
		}
		feed, err := discovery.NewFeedSource(ctx, cfg.Connectors.FeedURL, nil, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect discovery feed: %w", err)
		}
		source = feed
		cleanup = feed.Close
	}

	strategy, err := scoring.FromConfig(cfg.Scoring.Strategy, cfg.Scoring.Rules)
	if err != nil {
		return nil, nil, err
	}

	var metrics *observability.Metrics
	if metricsAddr != "" {
		metrics = observability.NewMetrics("token_radar")
		go func() {
			if err := http.ListenAndServe(metricsAddr, observability.Handler()); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	sess := session.New()
	runner := scan.NewRunner(scan.Options{
		Source: source,
		Filter: prefilter.New(cfg.PreFilter),
		Orchestrator: analysis.New(analysis.Options{
			Market:      market,
			Dex:         dex,
			Security:    security,
			Width:       cfg.Orchestrator.Width,
			StepTimeout: cfg.Orchestrator.StepTimeout,
			Session:     sess,
			Metrics:     metrics,
			Logger:      logger,
		}),
		Engine:              scoring.NewEngine(strategy),
		Keeper:              routing.NewKeeper(routes, cfg.Routing.RefreshInterval),
		Sink:                alert.NewLogSink(logger),
		Session:             sess,
		Metrics:             metrics,
		ConvictionThreshold: cfg.Alert.ConvictionThreshold,
		MinConfidence:       cfg.Alert.MinConfidence,
		CycleDeadline:       cfg.Orchestrator.CycleDeadline,
		Logger:              logger,
	})
	return runner, cleanup, nil
}

func emitReport(result *scan.CycleResult, outputDir string) error {
	markdown := reporting.RenderMarkdown(result.Report)
	if outputDir == "" {
		fmt.Println(markdown)
		return nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	base := fmt.Sprintf("cycle_%03d", result.Cycle)
	if err := os.WriteFile(filepath.Join(outputDir, base+".md"), []byte(markdown), 0o644); err != nil {
		return err
	}
	csv := reporting.RenderCSV(result.Report.Rows)
	return os.WriteFile(filepath.Join(outputDir, base+".csv"), []byte(csv), 0o644)
}

func readScores(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scores file: %w", err)
	}
	defer f.Close()

	var observed []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("parse score %q: %w", line, err)
		}
		observed = append(observed, v)
	}
	return observed, scanner.Err()
}

// demoCandidates is a fixed candidate set for stub runs.
func demoCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			Address:            "So11111111111111111111111111111111111111112",
			Symbol:             "WSOL",
			Platforms:          []string{"dexscreener", "jupiter", "rugcheck", "birdeye"},
			CrossPlatformScore: 92,
			MarketCap:          4_500_000,
			Volume24h:          820_000,
			Liquidity:          1_200_000,
		},
		{
			Address:            "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			Symbol:             "USDC",
			Platforms:          []string{"dexscreener", "jupiter", "birdeye"},
			CrossPlatformScore: 88,
			MarketCap:          9_000_000,
			Volume24h:          650_000,
			Liquidity:          2_400_000,
		},
		{
			Address:            "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263",
			Symbol:             "BONK",
			Platforms:          []string{"dexscreener", "rugcheck"},
			CrossPlatformScore: 74,
			MarketCap:          1_800_000,
			Volume24h:          240_000,
			Liquidity:          380_000,
		},
		{
			Address:            "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",
			Symbol:             "JUP",
			Platforms:          []string{"jupiter", "birdeye", "dexscreener"},
			CrossPlatformScore: 81,
			MarketCap:          3_200_000,
			Volume24h:          410_000,
			Liquidity:          900_000,
		},
		{
			Address:            "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
			Symbol:             "USDT",
			Platforms:          []string{"dexscreener"},
			CrossPlatformScore: 45,
			MarketCap:          22_000,
			Volume24h:          4_000,
			Liquidity:          15_000,
		},
	}
}
