package scoring

import (
	"errors"
	"reflect"
	"testing"

	"token-radar/internal/domain"
)

// healthyRecord builds a fully populated record with reinforcing smart-money
// and validation signals and no danger or contradiction triggers.
func healthyRecord() *domain.AnalysisRecord {
	rec := domain.NewAnalysisRecord(domain.Candidate{
		Address:   "HealthyTokenAddr",
		Symbol:    "GOOD",
		Platforms: []string{"dexscreener", "jupiter", "rugcheck", "birdeye"},
	})
	rec.RecordStep(domain.StepOverview, &domain.TokenOverview{
		MarketCap:      60_000,
		Liquidity:      30_000,
		PriceChange24h: 5,
		Holders:        150,
		AgeHours:       100,
	}, nil)
	rec.RecordStep(domain.StepWhale, &domain.HolderDistribution{
		Top10Pct:        65,
		SmartMoneyScore: 0.8,
	}, nil)
	rec.RecordStep(domain.StepVolumePrice, &domain.VolumePriceTrend{
		VolumeTrend:  domain.TrendRising,
		Momentum:     domain.MomentumNeutral,
		VolumeChange: 80,
	}, nil)
	rec.RecordStep(domain.StepCommunity, &domain.TransactionActivity{Buys24h: 40, Sells24h: 20}, nil)
	rec.RecordStep(domain.StepSecurity, &domain.SecurityReport{Score: 85}, nil)
	rec.RecordStep(domain.StepDexLiquidity, &domain.DexStats{
		PairCount:      1,
		DexCount:       1,
		TotalLiquidity: 30_000,
	}, nil)
	rec.RecordStep(domain.StepVLR, &domain.VLRAnalysis{
		Ratio:        2,
		Class:        domain.VLRClassIdeal,
		GemPotential: "medium",
		RiskLabel:    "low",
	}, nil)
	return rec
}

// manipulatedRecord builds a record matching the wash-trading signature:
// extreme volume/liquidity ratio against a thin pool.
func manipulatedRecord() *domain.AnalysisRecord {
	rec := domain.NewAnalysisRecord(domain.Candidate{
		Address:   "ManipulatedTokenAddr",
		Symbol:    "WASH",
		Platforms: []string{"dexscreener", "jupiter", "rugcheck", "birdeye"},
	})
	rec.RecordStep(domain.StepOverview, &domain.TokenOverview{
		MarketCap:      500_000,
		Liquidity:      40_000,
		Volume24h:      640_000,
		PriceChange1h:  8,
		PriceChange24h: 30,
		Holders:        2000,
	}, nil)
	rec.RecordStep(domain.StepWhale, &domain.HolderDistribution{Top10Pct: 40, SmartMoneyCount: 1}, nil)
	rec.RecordStep(domain.StepVolumePrice, &domain.VolumePriceTrend{
		VolumeTrend: domain.TrendRising,
		Momentum:    domain.MomentumBullish,
	}, nil)
	rec.RecordStep(domain.StepSecurity, &domain.SecurityReport{Score: 80}, nil)
	rec.RecordStep(domain.StepDexLiquidity, &domain.DexStats{
		PairCount:      2,
		DexCount:       2,
		TotalLiquidity: 40_000,
	}, nil)
	rec.RecordStep(domain.StepVLR, &domain.VLRAnalysis{
		Ratio:        16,
		Class:        domain.VLRClassExtreme,
		GemPotential: "low",
		RiskLabel:    "high",
	}, nil)
	return rec
}

func failedRecord() *domain.AnalysisRecord {
	rec := domain.NewAnalysisRecord(domain.Candidate{
		Address:   "DeadTokenAddr",
		Symbol:    "DEAD",
		Platforms: []string{"dexscreener", "jupiter"},
	})
	for _, step := range domain.AnalysisSteps() {
		rec.RecordStep(step, nil, errors.New("provider outage"))
	}
	return rec
}

func TestEngine_Deterministic(t *testing.T) {
	engine := NewEngine(NewInteractionStrategy(DefaultInteractionRules()))
	rec := healthyRecord()

	first := engine.Score(rec, nil)
	second := engine.Score(rec, nil)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different breakdowns")
	}
}

func TestEngine_AmplificationLiftsScoreAboveAdditive(t *testing.T) {
	rec := healthyRecord()

	additive := NewEngine(NewAdditiveStrategy()).Score(rec, nil)
	interaction := NewEngine(NewInteractionStrategy(DefaultInteractionRules())).Score(rec, nil)

	if _, ok := findByRule(interaction.Findings, "smart_money_volume_surge"); !ok {
		t.Fatal("expected smart_money_volume_surge amplification")
	}
	if _, ok := findByRule(interaction.Findings, "validated_and_secure"); !ok {
		t.Fatal("expected validated_and_secure amplification")
	}
	if interaction.FinalScore <= additive.FinalScore {
		t.Errorf("amplified score %f not above additive %f",
			interaction.FinalScore, additive.FinalScore)
	}
	if interaction.FinalScore > 100 {
		t.Errorf("score %f exceeds 100", interaction.FinalScore)
	}
}

func TestEngine_ManipulationCapsScore(t *testing.T) {
	engine := NewEngine(NewInteractionStrategy(DefaultInteractionRules()))

	bd := engine.Score(manipulatedRecord(), nil)

	danger, ok := findByRule(bd.Findings, "vlr_manipulation")
	if !ok {
		t.Fatal("expected vlr_manipulation finding")
	}
	if danger.Risk != domain.RiskCritical {
		t.Errorf("expected CRITICAL risk, got %s", danger.Risk)
	}
	if bd.FinalScore > 10 {
		t.Errorf("score %f exceeds the manipulation ceiling of 10", bd.FinalScore)
	}
	if bd.DegradedMode {
		t.Error("a capped score is not degraded mode")
	}
}

func TestEngine_FullyFailedRecordDegrades(t *testing.T) {
	engine := NewEngine(NewInteractionStrategy(DefaultInteractionRules()))
	rec := failedRecord()

	bd := engine.Score(rec, nil)

	if !bd.DegradedMode {
		t.Fatal("expected degraded mode")
	}
	if bd.Factors != nil || bd.Findings != nil {
		t.Error("degraded breakdown must not carry factors or findings")
	}
	// Only the platform base component can score without step data.
	if bd.FinalScore != 16 {
		t.Errorf("expected base-only score 16, got %f", bd.FinalScore)
	}
	if bd.Confidence != 0 {
		t.Errorf("expected confidence 0 with no data, got %f", bd.Confidence)
	}
	if bd.DataCompleteness != 0 {
		t.Errorf("expected completeness 0, got %f", bd.DataCompleteness)
	}
}

func TestEngine_ScoreAlwaysBounded(t *testing.T) {
	engine := NewEngine(NewInteractionStrategy(DefaultInteractionRules()))

	for _, rec := range []*domain.AnalysisRecord{
		healthyRecord(), manipulatedRecord(), failedRecord(),
	} {
		bd := engine.Score(rec, nil)
		if bd.FinalScore < 0 || bd.FinalScore > 100 {
			t.Errorf("%s: score %f outside [0,100]", bd.Address, bd.FinalScore)
		}
		if bd.Confidence < 0 || bd.Confidence > 1 {
			t.Errorf("%s: confidence %f outside [0,1]", bd.Address, bd.Confidence)
		}
		if bd.Strategy != StrategyInteraction {
			t.Errorf("%s: strategy label missing", bd.Address)
		}
	}
}

func TestEngine_ConfidenceAdjustments(t *testing.T) {
	engine := NewEngine(NewInteractionStrategy(DefaultInteractionRules()))

	// Manipulated record: full data (1.0) minus the danger penalty, minus a
	// contradiction if one fires alongside.
	bd := engine.Score(manipulatedRecord(), nil)
	if bd.Confidence >= 1 {
		t.Errorf("danger finding should reduce confidence below 1, got %f", bd.Confidence)
	}

	healthy := engine.Score(healthyRecord(), nil)
	if healthy.Confidence != 1 {
		t.Errorf("full data plus amplifications should saturate confidence, got %f",
			healthy.Confidence)
	}
}

func TestEngine_RoutingSnapshotContributes(t *testing.T) {
	engine := NewEngine(NewAdditiveStrategy())
	rec := healthyRecord()

	snap := &domain.RoutingSnapshot{
		Routes: map[string]domain.RouteAvailability{
			rec.Candidate.Address: {
				Direct:     map[string]bool{"raydium": true, "orca": true},
				Aggregator: true,
			},
		},
	}

	withRouting := engine.Score(rec, snap)
	withoutRouting := engine.Score(rec, nil)

	if withRouting.Components.Routing != 18 {
		t.Errorf("expected max routing component 18, got %f", withRouting.Components.Routing)
	}
	if withRouting.FinalScore <= withoutRouting.FinalScore {
		t.Error("routing availability did not contribute to the score")
	}
}
