package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-radar/internal/scoring"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, scoring.StrategyInteraction, cfg.Scoring.Strategy)
	assert.Equal(t, 3, cfg.Orchestrator.Width)
	assert.Equal(t, scoring.DefaultInteractionRules(), cfg.Scoring.Rules)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Orchestrator.Width = 0 }},
		{"negative step timeout", func(c *Config) { c.Orchestrator.StepTimeout = -time.Second }},
		{"negative min market cap", func(c *Config) { c.PreFilter.MinMarketCap = -1 }},
		{"max below min market cap", func(c *Config) {
			c.PreFilter.MinMarketCap = 100
			c.PreFilter.MaxMarketCap = 50
		}},
		{"zero survivor cap", func(c *Config) { c.PreFilter.MaxSurvivors = 0 }},
		{"unknown strategy", func(c *Config) { c.Scoring.Strategy = "adaptive" }},
		{"amplification floor below 1", func(c *Config) { c.Scoring.Rules.MinAmplification = 0.9 }},
		{"max amplification below min", func(c *Config) {
			c.Scoring.Rules.MinAmplification = 1.3
			c.Scoring.Rules.MaxAmplification = 1.2
		}},
		{"ceiling above 100", func(c *Config) { c.Scoring.Rules.ManipulationCeiling = 150 }},
		{"contradiction modifier above 1", func(c *Config) { c.Scoring.Rules.ThinLiqModifier = 1.5 }},
		{"conviction threshold above 100", func(c *Config) { c.Alert.ConvictionThreshold = 101 }},
		{"confidence floor above 1", func(c *Config) { c.Alert.MinConfidence = 1.5 }},
		{"zero routing interval", func(c *Config) { c.Routing.RefreshInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	yaml := `
prefilter:
  min_market_cap: 75000
  max_survivors: 10
orchestrator:
  width: 5
scoring:
  strategy: early-discovery
alert:
  conviction_threshold: 85
`
	path := filepath.Join(t.TempDir(), "radar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float64(75_000), cfg.PreFilter.MinMarketCap)
	assert.Equal(t, 10, cfg.PreFilter.MaxSurvivors)
	assert.Equal(t, 5, cfg.Orchestrator.Width)
	assert.Equal(t, scoring.StrategyEarlyDiscovery, cfg.Scoring.Strategy)
	assert.Equal(t, float64(85), cfg.Alert.ConvictionThreshold)

	// Untouched sections keep their defaults.
	assert.Equal(t, float64(10_000), cfg.PreFilter.MinVolume)
	assert.Equal(t, scoring.DefaultInteractionRules(), cfg.Scoring.Rules)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radar.yaml")
	require.NoError(t, os.WriteFile(path, []byte("orchestrator:\n  width: -2\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
