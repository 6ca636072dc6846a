// Package config loads and validates the application configuration.
// Invalid thresholds are fatal at startup, before any cycle runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"token-radar/internal/connectors"
	"token-radar/internal/prefilter"
	"token-radar/internal/scoring"
)

// ErrInvalid marks configuration validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	PreFilter    prefilter.Config   `yaml:"prefilter"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Scoring      ScoringConfig      `yaml:"scoring"`
	Alert        AlertConfig        `yaml:"alert"`
	Connectors   ConnectorsConfig   `yaml:"connectors"`
	Routing      RoutingConfig      `yaml:"routing"`
}

// OrchestratorConfig configures the analysis worker pool.
type OrchestratorConfig struct {
	Width         int           `yaml:"width"`
	StepTimeout   time.Duration `yaml:"step_timeout"`
	CycleDeadline time.Duration `yaml:"cycle_deadline"` // 0 disables the overall deadline
}

// ScoringConfig selects the strategy and its rule constants.
type ScoringConfig struct {
	Strategy string                   `yaml:"strategy"`
	Rules    scoring.InteractionRules `yaml:"rules"`
}

// AlertConfig gates alert delivery.
type AlertConfig struct {
	ConvictionThreshold float64 `yaml:"conviction_threshold"`
	MinConfidence       float64 `yaml:"min_confidence"`
}

// ConnectorsConfig holds per-provider client settings.
type ConnectorsConfig struct {
	Birdeye     connectors.ClientConfig `yaml:"birdeye"`
	DexScreener connectors.ClientConfig `yaml:"dexscreener"`
	RugCheck    connectors.ClientConfig `yaml:"rugcheck"`
	Jupiter     connectors.ClientConfig `yaml:"jupiter"`
	FeedURL     string                  `yaml:"feed_url"`
}

// RoutingConfig configures the snapshot refresh cadence.
type RoutingConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PreFilter: prefilter.Config{
			MinMarketCap:                    30_000,
			MaxMarketCap:                    50_000_000,
			MinVolume:                       10_000,
			MinValidatedPlatforms:           2,
			MaxSurvivors:                    25,
			MissedOpportunityScoreThreshold: 80,
		},
		Orchestrator: OrchestratorConfig{
			Width:         3,
			StepTimeout:   10 * time.Second,
			CycleDeadline: 5 * time.Minute,
		},
		Scoring: ScoringConfig{
			Strategy: scoring.StrategyInteraction,
			Rules:    scoring.DefaultInteractionRules(),
		},
		Alert: AlertConfig{
			ConvictionThreshold: 70,
			MinConfidence:       0.4,
		},
		Connectors: ConnectorsConfig{
			Birdeye:     connectors.ClientConfig{BaseURL: "https://public-api.birdeye.so"},
			DexScreener: connectors.ClientConfig{BaseURL: "https://api.dexscreener.com"},
			RugCheck:    connectors.ClientConfig{BaseURL: "https://api.rugcheck.xyz"},
			Jupiter:     connectors.ClientConfig{BaseURL: "https://quote-api.jup.ag"},
		},
		Routing: RoutingConfig{
			RefreshInterval: 30 * time.Minute,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every threshold. Returns an ErrInvalid-wrapped error for
// the first problem found.
func (c *Config) Validate() error {
	if c.PreFilter.MinMarketCap < 0 {
		return fmt.Errorf("%w: prefilter min_market_cap must be >= 0", ErrInvalid)
	}
	if c.PreFilter.MaxMarketCap > 0 && c.PreFilter.MaxMarketCap <= c.PreFilter.MinMarketCap {
		return fmt.Errorf("%w: prefilter max_market_cap must exceed min_market_cap", ErrInvalid)
	}
	if c.PreFilter.MinVolume < 0 {
		return fmt.Errorf("%w: prefilter min_volume must be >= 0", ErrInvalid)
	}
	if c.PreFilter.MaxSurvivors < 1 {
		return fmt.Errorf("%w: prefilter max_survivors must be >= 1", ErrInvalid)
	}
	if c.Orchestrator.Width < 1 {
		return fmt.Errorf("%w: orchestrator width must be >= 1", ErrInvalid)
	}
	if c.Orchestrator.StepTimeout <= 0 {
		return fmt.Errorf("%w: orchestrator step_timeout must be positive", ErrInvalid)
	}

	switch c.Scoring.Strategy {
	case scoring.StrategyInteraction, scoring.StrategyAdditive, scoring.StrategyEarlyDiscovery:
	default:
		return fmt.Errorf("%w: unknown scoring strategy %q", ErrInvalid, c.Scoring.Strategy)
	}

	r := c.Scoring.Rules
	if r.MinAmplification < 1 || r.MaxAmplification < r.MinAmplification {
		return fmt.Errorf("%w: amplification bounds must satisfy 1 <= min <= max", ErrInvalid)
	}
	if r.ManipulationCeiling < 0 || r.ManipulationCeiling > 100 {
		return fmt.Errorf("%w: manipulation_ceiling must be in [0,100]", ErrInvalid)
	}
	if r.RugCeiling < 0 || r.RugCeiling > 100 {
		return fmt.Errorf("%w: rug_ceiling must be in [0,100]", ErrInvalid)
	}
	for name, m := range map[string]float64{
		"thin_liquidity_modifier":    r.ThinLiqModifier,
		"volume_validation_modifier": r.VolumeValidationModifier,
		"whale_security_modifier":    r.WhaleSecurityModifier,
		"price_liquidity_modifier":   r.PriceLiquidityModifier,
	} {
		if m <= 0 || m >= 1 {
			return fmt.Errorf("%w: %s must be in (0,1)", ErrInvalid, name)
		}
	}

	if c.Alert.ConvictionThreshold < 0 || c.Alert.ConvictionThreshold > 100 {
		return fmt.Errorf("%w: alert conviction_threshold must be in [0,100]", ErrInvalid)
	}
	if c.Alert.MinConfidence < 0 || c.Alert.MinConfidence > 1 {
		return fmt.Errorf("%w: alert min_confidence must be in [0,1]", ErrInvalid)
	}
	if c.Routing.RefreshInterval <= 0 {
		return fmt.Errorf("%w: routing refresh_interval must be positive", ErrInvalid)
	}
	return nil
}
