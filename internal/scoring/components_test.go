package scoring

import (
	"errors"
	"testing"

	"token-radar/internal/domain"
)

func emptyRecord(platforms ...string) *domain.AnalysisRecord {
	return domain.NewAnalysisRecord(domain.Candidate{
		Address:   "TokenAddr",
		Symbol:    "TKN",
		Platforms: platforms,
	})
}

func TestScoreComponents_MissingStepsContributeZero(t *testing.T) {
	rec := emptyRecord("dexscreener", "jupiter")
	for _, step := range domain.AnalysisSteps() {
		rec.RecordStep(step, nil, errors.New("failed"))
	}

	c := scoreComponents(rec, 0)

	if c.Base != 16 {
		t.Errorf("expected base 16 for 2 platforms, got %f", c.Base)
	}
	for name, v := range map[string]float64{
		"overview": c.Overview, "whale": c.Whale, "volume_price": c.VolumePrice,
		"security": c.Security, "dex": c.DexLiquidity, "vlr": c.VLR, "routing": c.Routing,
	} {
		if v != 0 {
			t.Errorf("%s component should be 0 with no data, got %f", name, v)
		}
	}
}

func TestScoreComponents_BoundsHoldForAbsurdInputs(t *testing.T) {
	rec := emptyRecord("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	rec.RecordStep(domain.StepOverview, &domain.TokenOverview{
		MarketCap:      1e12,
		Liquidity:      1e12,
		PriceChange1h:  5000,
		PriceChange24h: 90000,
		Holders:        10_000_000,
	}, nil)
	rec.RecordStep(domain.StepWhale, &domain.HolderDistribution{
		Top10Pct:        40,
		SmartMoneyCount: 500,
		SmartMoneyScore: 99,
	}, nil)
	rec.RecordStep(domain.StepVolumePrice, &domain.VolumePriceTrend{
		VolumeTrend: domain.TrendRising,
		Momentum:    domain.MomentumBullish,
	}, nil)
	rec.RecordStep(domain.StepSecurity, &domain.SecurityReport{Score: 100_000}, nil)
	rec.RecordStep(domain.StepDexLiquidity, &domain.DexStats{
		PairCount:        99,
		DexCount:         99,
		TotalLiquidity:   1e12,
		YieldOpportunity: true,
	}, nil)
	rec.RecordStep(domain.StepVLR, &domain.VLRAnalysis{
		Class:        domain.VLRClassIdeal,
		GemPotential: "high",
	}, nil)

	c := scoreComponents(rec, 1000)

	checks := []struct {
		name string
		v    float64
		max  float64
	}{
		{"base", c.Base, baseMax},
		{"overview", c.Overview, overviewMax},
		{"whale", c.Whale, whaleMax},
		{"volume_price", c.VolumePrice, volumePriceMax},
		{"security", c.Security, securityMax},
		{"dex", c.DexLiquidity, dexMax},
		{"vlr", c.VLR, vlrMax},
		{"routing", c.Routing, routingMax},
	}
	for _, check := range checks {
		if check.v < 0 || check.v > check.max {
			t.Errorf("%s component %f outside [0, %f]", check.name, check.v, check.max)
		}
	}
}

func TestScoreSecurity_RiskFactorsNeverGoNegative(t *testing.T) {
	rec := emptyRecord()
	rec.RecordStep(domain.StepSecurity, &domain.SecurityReport{
		Score:       10,
		RiskFactors: []string{"a", "b", "c", "d", "e", "f"},
	}, nil)

	if got := scoreSecurity(rec); got != 0 {
		t.Errorf("expected security floor of 0, got %f", got)
	}
}

func TestScoreWhale_ConcentrationTiers(t *testing.T) {
	tests := []struct {
		top10 float64
		smart int
		want  float64
	}{
		{40, 0, 10},
		{40, 3, 15},
		{10, 0, 6},
		{75, 0, 3},
		{95, 0, 0},
	}
	for _, tt := range tests {
		rec := emptyRecord()
		rec.RecordStep(domain.StepWhale, &domain.HolderDistribution{
			Top10Pct:        tt.top10,
			SmartMoneyCount: tt.smart,
		}, nil)
		if got := scoreWhale(rec); got != tt.want {
			t.Errorf("top10=%.0f smart=%d: got %f, want %f", tt.top10, tt.smart, got, tt.want)
		}
	}
}

func TestScoreDexLiquidity_NoPoolScoresZero(t *testing.T) {
	rec := emptyRecord()
	rec.RecordStep(domain.StepDexLiquidity, &domain.DexStats{PairCount: 0}, nil)

	if got := scoreDexLiquidity(rec); got != 0 {
		t.Errorf("expected 0 for a token with no pool, got %f", got)
	}
}
