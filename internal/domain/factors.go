package domain

// RawFactors carries the unnormalized source values behind FactorValues,
// kept for diagnostics and explanations.
type RawFactors struct {
	VLR            float64
	LiquidityUSD   float64
	SmartMoney     float64
	VolumeChange   float64 // percent
	SecurityScore  float64 // 0..100
	Top10Pct       float64 // percent
	PriceChange24h float64 // percent
	PlatformCount  int
	AgeHours       float64
}

// FactorValues is the fixed factor set the interaction rules operate on.
// Every field except Raw is normalized and clamped to [0,1] regardless of
// how extreme the raw input is.
type FactorValues struct {
	VLRRatio                float64
	Liquidity               float64
	SmartMoneyScore         float64
	VolumeMomentum          float64
	SecurityScore           float64
	WhaleConcentration      float64
	PriceMomentum           float64
	CrossPlatformValidation float64
	AgeFactor               float64

	Raw RawFactors
}

// Clamp01 bounds v to [0,1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if v != v || v < 0 { // v != v catches NaN
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
