package scoring

import "token-radar/internal/domain"

// Component bounds.
const (
	baseMax         = 40.0
	basePerPlatform = 8.0
	overviewMax     = 20.0
	whaleMax        = 15.0
	volumePriceMax  = 15.0
	securityMax     = 10.0
	dexMax          = 10.0
	vlrMax          = 15.0
	routingMax      = 18.0
)

// scoreComponents computes the traditional per-category component scores.
// Each component stays within its documented bound for any input, including
// missing or failed steps (which contribute zero).
func scoreComponents(rec *domain.AnalysisRecord, routing float64) domain.ComponentScores {
	return domain.ComponentScores{
		Base:         clampRange(basePerPlatform*float64(rec.Candidate.PlatformCount()), 0, baseMax),
		Overview:     scoreOverview(rec),
		Whale:        scoreWhale(rec),
		VolumePrice:  scoreVolumePrice(rec),
		Security:     scoreSecurity(rec),
		DexLiquidity: scoreDexLiquidity(rec),
		VLR:          scoreVLR(rec),
		Routing:      clampRange(routing, 0, routingMax),
	}
}

func scoreOverview(rec *domain.AnalysisRecord) float64 {
	data, ok := rec.StepData(domain.StepOverview)
	if !ok {
		return 0
	}
	ov := data.(*domain.TokenOverview)

	score := 0.0
	switch {
	case ov.MarketCap >= 1_000_000:
		score += 5
	case ov.MarketCap >= 250_000:
		score += 3
	case ov.MarketCap >= 50_000:
		score += 1
	}
	switch {
	case ov.Liquidity >= 500_000:
		score += 5
	case ov.Liquidity >= 100_000:
		score += 3
	case ov.Liquidity >= 20_000:
		score += 1
	}
	if ov.PriceChange1h > 0 {
		score += 2
		if ov.PriceChange1h > 10 {
			score += 1
		}
	}
	if ov.PriceChange24h > 0 {
		score += 2
		if ov.PriceChange24h > 25 {
			score += 1
		}
	}
	switch {
	case ov.Holders >= 1000:
		score += 4
	case ov.Holders >= 100:
		score += 2
	}
	return clampRange(score, 0, overviewMax)
}

// scoreWhale rewards the 20-60% concentration sweet spot. A token nobody
// large holds is illiquid; one whales own outright is a dump risk.
func scoreWhale(rec *domain.AnalysisRecord) float64 {
	data, ok := rec.StepData(domain.StepWhale)
	if !ok {
		return 0
	}
	dist := data.(*domain.HolderDistribution)

	score := 0.0
	switch {
	case dist.Top10Pct >= 20 && dist.Top10Pct <= 60:
		score = 10
	case dist.Top10Pct < 20:
		score = 6
	case dist.Top10Pct <= 80:
		score = 3
	}
	if dist.SmartMoneyDetected() {
		score += 5
	}
	return clampRange(score, 0, whaleMax)
}

func scoreVolumePrice(rec *domain.AnalysisRecord) float64 {
	data, ok := rec.StepData(domain.StepVolumePrice)
	if !ok {
		return 0
	}
	trend := data.(*domain.VolumePriceTrend)

	score := 0.0
	switch {
	case trend.VolumeTrend == domain.TrendRising && trend.Momentum == domain.MomentumBullish:
		score = 15
	case trend.VolumeTrend == domain.TrendRising && trend.Momentum == domain.MomentumNeutral:
		score = 10
	case trend.VolumeTrend == domain.TrendStable && trend.Momentum == domain.MomentumBullish:
		score = 10
	case trend.VolumeTrend == domain.TrendStable && trend.Momentum == domain.MomentumNeutral:
		score = 6
	default:
		score = 2
	}
	return clampRange(score, 0, volumePriceMax)
}

func scoreSecurity(rec *domain.AnalysisRecord) float64 {
	data, ok := rec.StepData(domain.StepSecurity)
	if !ok {
		return 0
	}
	report := data.(*domain.SecurityReport)

	score := report.Score / 10
	score -= 2 * float64(len(report.RiskFactors))
	return clampRange(score, 0, securityMax)
}

func scoreDexLiquidity(rec *domain.AnalysisRecord) float64 {
	data, ok := rec.StepData(domain.StepDexLiquidity)
	if !ok {
		return 0
	}
	stats := data.(*domain.DexStats)
	if stats.PairCount == 0 {
		return 0
	}

	score := 3.0 // pool exists at all
	switch {
	case stats.TotalLiquidity >= 100_000:
		score += 3
	case stats.TotalLiquidity >= 10_000:
		score += 2
	default:
		score += 1
	}
	if stats.DexCount >= 2 {
		score += 2
	}
	if stats.YieldOpportunity {
		score += 2
	}
	return clampRange(score, 0, dexMax)
}

func scoreVLR(rec *domain.AnalysisRecord) float64 {
	data, ok := rec.StepData(domain.StepVLR)
	if !ok {
		return 0
	}
	vlr := data.(*domain.VLRAnalysis)

	score := 0.0
	switch vlr.Class {
	case domain.VLRClassIdeal:
		score = 10
	case domain.VLRClassElevated:
		score = 6
	case domain.VLRClassStagnant:
		score = 2
	case domain.VLRClassExtreme:
		score = 0
	}
	switch vlr.GemPotential {
	case "high":
		score += 5
	case "medium":
		score += 3
	}
	if vlr.RiskLabel == "high" {
		score -= 3
	}
	return clampRange(score, 0, vlrMax)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
