package domain

// Typed records produced at the connector boundary. Every external payload is
// mapped to one of these before it enters the pipeline, so parsing fragility
// stays inside the connector adapters.

// TokenOverview is the market-data provider's summary for a token.
type TokenOverview struct {
	Address         string
	Symbol          string
	Name            string
	PriceUSD        float64
	MarketCap       float64 // USD
	Liquidity       float64 // USD
	Volume24h       float64 // USD
	VolumeChange24h float64 // percent
	PriceChange1h   float64 // percent
	PriceChange24h  float64 // percent
	Holders         int
	AgeHours        float64 // time since first trade
}

// HolderStake is one entry in the holder distribution.
type HolderStake struct {
	Address string
	Pct     float64 // share of supply, percent
}

// HolderDistribution describes supply concentration among top holders.
type HolderDistribution struct {
	TotalHolders    int
	TopHolders      []HolderStake
	Top10Pct        float64 // combined share of the top 10 holders, percent
	SmartMoneyCount int     // known smart-money wallets among top holders
	SmartMoneyScore float64 // 0..1
}

// SmartMoneyDetected reports whether any known smart-money wallet holds the token.
func (h *HolderDistribution) SmartMoneyDetected() bool {
	return h.SmartMoneyCount > 0
}

// TransactionActivity summarizes recent trades for a token.
type TransactionActivity struct {
	Buys24h       int
	Sells24h      int
	UniqueWallets int
	BuySellRatio  float64 // buys/sells, 0 when no sells
}

// Candle is one OHLCV bar.
type Candle struct {
	OpenTimeMs int64
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     float64
}

// OHLCVSeries holds candles for one timeframe, oldest first.
type OHLCVSeries struct {
	Timeframe string
	Candles   []Candle
}

// Volume/price trend labels derived from an OHLCV series.
const (
	TrendRising  = "rising"
	TrendStable  = "stable"
	TrendFalling = "falling"

	MomentumBullish = "bullish"
	MomentumNeutral = "neutral"
	MomentumBearish = "bearish"
)

// VolumePriceTrend is the derived form of an OHLCV series: volume direction
// plus price momentum over the fetched window.
type VolumePriceTrend struct {
	VolumeTrend    string  // rising | stable | falling
	Momentum       string  // bullish | neutral | bearish
	VolumeChange   float64 // percent, last half of window vs first half
	PriceChangePct float64 // percent, close vs open of window
}

// DexStats describes a token's DEX liquidity footprint.
type DexStats struct {
	PairCount         int
	DexCount          int // distinct DEXes with a pool
	TotalLiquidity    float64
	BestPoolLiquidity float64
	YieldOpportunity  bool // an incentivized pool exists
}

// SecurityReport is the security checker's verdict for a token.
type SecurityReport struct {
	Score       float64 // 0..100, higher is safer
	RiskFactors []string
	MintRevoked bool
	LPLocked    bool
}

// VLR classification labels. VLR is trading volume divided by available
// liquidity, used as a manipulation/activity heuristic.
type VLRClass string

const (
	VLRClassStagnant VLRClass = "stagnant" // too little activity for the pool
	VLRClassIdeal    VLRClass = "ideal"    // healthy organic activity
	VLRClassElevated VLRClass = "elevated" // hot but plausible
	VLRClassExtreme  VLRClass = "extreme"  // manipulation territory
)

// VLRAnalysis is the derived volume/liquidity-ratio record.
type VLRAnalysis struct {
	Ratio        float64
	Class        VLRClass
	GemPotential string // high | medium | low
	RiskLabel    string // low | medium | high
}

// ClassifyVLR buckets a raw volume/liquidity ratio.
func ClassifyVLR(ratio float64) VLRClass {
	switch {
	case ratio >= 10:
		return VLRClassExtreme
	case ratio >= 4:
		return VLRClassElevated
	case ratio >= 0.5:
		return VLRClassIdeal
	default:
		return VLRClassStagnant
	}
}
