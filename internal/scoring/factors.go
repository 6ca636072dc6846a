package scoring

import (
	"errors"

	"token-radar/internal/domain"
)

// ErrNoAnalysisData indicates an analysis record with zero successful steps,
// so factor extraction has nothing to work from.
var ErrNoAnalysisData = errors.New("no successful analysis steps")

// Normalization denominators for factor extraction.
const (
	vlrNorm       = 20.0
	liquidityNorm = 1_000_000.0
	platformNorm  = 5.0
	priceNorm     = 50.0  // percent change treated as fully bullish
	volumeNorm    = 100.0 // percent change treated as a full surge
	ageNormHours  = 168.0 // one week; younger scores higher
)

// extractFactors derives the normalized factor set from an analysis record.
// Missing steps contribute zero-valued factors; only a record with no
// successful step at all is an error. Every normalized field is clamped to
// [0,1] regardless of raw magnitude.
func extractFactors(rec *domain.AnalysisRecord) (*domain.FactorValues, error) {
	if rec.Failed() {
		return nil, ErrNoAnalysisData
	}

	f := &domain.FactorValues{}
	f.Raw.PlatformCount = rec.Candidate.PlatformCount()
	f.CrossPlatformValidation = domain.Clamp01(float64(f.Raw.PlatformCount) / platformNorm)

	if data, ok := rec.StepData(domain.StepOverview); ok {
		ov := data.(*domain.TokenOverview)
		f.Raw.LiquidityUSD = ov.Liquidity
		f.Raw.PriceChange24h = ov.PriceChange24h
		f.Raw.VolumeChange = ov.VolumeChange24h
		f.Raw.AgeHours = ov.AgeHours

		f.Liquidity = domain.Clamp01(ov.Liquidity / liquidityNorm)
		f.PriceMomentum = domain.Clamp01(ov.PriceChange24h / priceNorm)
		f.VolumeMomentum = domain.Clamp01(ov.VolumeChange24h / volumeNorm)
		f.AgeFactor = domain.Clamp01(1 - ov.AgeHours/ageNormHours)
	}

	// The derived trend is a better volume-momentum source than the raw 24h
	// change when the volume/price step succeeded.
	if data, ok := rec.StepData(domain.StepVolumePrice); ok {
		trend := data.(*domain.VolumePriceTrend)
		f.Raw.VolumeChange = trend.VolumeChange
		f.VolumeMomentum = domain.Clamp01(trend.VolumeChange / volumeNorm)
	}

	if data, ok := rec.StepData(domain.StepWhale); ok {
		dist := data.(*domain.HolderDistribution)
		f.Raw.SmartMoney = dist.SmartMoneyScore
		f.Raw.Top10Pct = dist.Top10Pct
		f.SmartMoneyScore = domain.Clamp01(dist.SmartMoneyScore)
		f.WhaleConcentration = domain.Clamp01(dist.Top10Pct / 100)
	}

	if data, ok := rec.StepData(domain.StepSecurity); ok {
		report := data.(*domain.SecurityReport)
		f.Raw.SecurityScore = report.Score
		f.SecurityScore = domain.Clamp01(report.Score / 100)
	}

	if data, ok := rec.StepData(domain.StepVLR); ok {
		vlr := data.(*domain.VLRAnalysis)
		f.Raw.VLR = vlr.Ratio
		f.VLRRatio = domain.Clamp01(vlr.Ratio / vlrNorm)
	}

	// Fall back to discovery-reported liquidity when the overview is missing.
	if f.Raw.LiquidityUSD == 0 && rec.Candidate.Liquidity > 0 {
		f.Raw.LiquidityUSD = rec.Candidate.Liquidity
		f.Liquidity = domain.Clamp01(rec.Candidate.Liquidity / liquidityNorm)
	}

	return f, nil
}
