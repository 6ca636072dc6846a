// Package stub provides deterministic in-memory data sources for tests and
// offline runs. Values are derived from the token address, so repeated runs
// over the same candidate list produce identical analysis records.
package stub

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"token-radar/internal/connectors"
	"token-radar/internal/domain"
)

// Sources implements every connector interface with address-seeded data.
// Per-step failure injection lets tests exercise partial-data paths.
type Sources struct {
	mu sync.Mutex

	// failSteps maps a step label (overview, holders, transactions, ohlcv,
	// dex_stats, security_report, routing_snapshot) to the error returned.
	failSteps map[string]error

	// calls counts invocations per (address, op) for cache dedup assertions.
	calls map[string]int
}

// NewSources creates a deterministic stub for all connector interfaces.
func NewSources() *Sources {
	return &Sources{
		failSteps: make(map[string]error),
		calls:     make(map[string]int),
	}
}

// FailOp makes every call of the given op return err.
func (s *Sources) FailOp(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSteps[op] = err
}

// Calls returns how many times op was invoked for address.
func (s *Sources) Calls(address, op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[address+"/"+op]
}

func (s *Sources) enter(address, op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[address+"/"+op]++
	if err, ok := s.failSteps[op]; ok {
		return err
	}
	return nil
}

// seed derives a stable pseudo-random value in [0,1) from the address.
func seed(address, salt string) float64 {
	h := fnv.New64a()
	h.Write([]byte(address))
	h.Write([]byte(salt))
	return float64(h.Sum64()%10000) / 10000
}

// FetchOverview returns an address-seeded market overview.
func (s *Sources) FetchOverview(_ context.Context, address string) (*domain.TokenOverview, error) {
	if err := s.enter(address, "overview"); err != nil {
		return nil, err
	}
	base := seed(address, "overview")
	return &domain.TokenOverview{
		Address:         address,
		Symbol:          "STUB",
		PriceUSD:        0.001 + base,
		MarketCap:       100_000 + base*2_000_000,
		Liquidity:       20_000 + base*500_000,
		Volume24h:       50_000 + base*1_000_000,
		VolumeChange24h: (base - 0.3) * 100,
		PriceChange1h:   (base - 0.4) * 20,
		PriceChange24h:  (base - 0.4) * 60,
		Holders:         int(100 + base*5000),
		AgeHours:        1 + base*200,
	}, nil
}

// FetchHolders returns an address-seeded holder distribution.
func (s *Sources) FetchHolders(_ context.Context, address string, limit int) (*domain.HolderDistribution, error) {
	if err := s.enter(address, "holders"); err != nil {
		return nil, err
	}
	base := seed(address, "holders")
	smart := 0
	if base > 0.5 {
		smart = 2
	}
	return &domain.HolderDistribution{
		TotalHolders:    int(200 + base*3000),
		Top10Pct:        20 + base*50,
		SmartMoneyCount: smart,
		SmartMoneyScore: domain.Clamp01(base),
	}, nil
}

// FetchTransactions returns address-seeded trade activity.
func (s *Sources) FetchTransactions(_ context.Context, address string, limit int) (*domain.TransactionActivity, error) {
	if err := s.enter(address, "transactions"); err != nil {
		return nil, err
	}
	base := seed(address, "transactions")
	buys := int(10 + base*90)
	sells := int(5 + (1-base)*60)
	ratio := 0.0
	if sells > 0 {
		ratio = float64(buys) / float64(sells)
	}
	return &domain.TransactionActivity{
		Buys24h:       buys,
		Sells24h:      sells,
		UniqueWallets: int(8 + base*120),
		BuySellRatio:  ratio,
	}, nil
}

// FetchOHLCV returns a short address-seeded candle series.
func (s *Sources) FetchOHLCV(_ context.Context, address, timeframe string) (*domain.OHLCVSeries, error) {
	if err := s.enter(address, "ohlcv"); err != nil {
		return nil, err
	}
	base := seed(address, "ohlcv")
	series := &domain.OHLCVSeries{Timeframe: timeframe}
	price := 0.01 + base
	for i := 0; i < 12; i++ {
		drift := (base - 0.4) * 0.01 * float64(i)
		series.Candles = append(series.Candles, domain.Candle{
			OpenTimeMs: int64(i) * 3_600_000,
			Open:       price + drift,
			High:       price + drift + 0.002,
			Low:        price + drift - 0.002,
			Close:      price + drift + 0.001,
			Volume:     1000 + base*float64(i)*500,
		})
	}
	return series, nil
}

// FetchDexStats returns address-seeded DEX stats.
func (s *Sources) FetchDexStats(_ context.Context, address string) (*domain.DexStats, error) {
	if err := s.enter(address, "dex_stats"); err != nil {
		return nil, err
	}
	base := seed(address, "dex")
	pairs := int(1 + base*4)
	return &domain.DexStats{
		PairCount:         pairs,
		DexCount:          1 + pairs/2,
		TotalLiquidity:    15_000 + base*400_000,
		BestPoolLiquidity: 10_000 + base*250_000,
		YieldOpportunity:  base > 0.7,
	}, nil
}

// FetchSecurityReport returns an address-seeded security verdict.
func (s *Sources) FetchSecurityReport(_ context.Context, address string) (*domain.SecurityReport, error) {
	if err := s.enter(address, "security_report"); err != nil {
		return nil, err
	}
	base := seed(address, "security")
	var risks []string
	if base < 0.25 {
		risks = append(risks, "mutable_metadata", "top_holder_concentration")
	}
	return &domain.SecurityReport{
		Score:       40 + base*60,
		RiskFactors: risks,
		MintRevoked: base > 0.3,
		LPLocked:    base > 0.4,
	}, nil
}

// FetchRoutingSnapshot returns address-seeded route availability.
func (s *Sources) FetchRoutingSnapshot(_ context.Context, addresses []string) (*domain.RoutingSnapshot, error) {
	if err := s.enter("", "routing_snapshot"); err != nil {
		return nil, err
	}
	snap := &domain.RoutingSnapshot{
		TakenAt: time.Unix(0, 0).UTC(),
		Routes:  make(map[string]domain.RouteAvailability, len(addresses)),
	}
	for _, addr := range addresses {
		base := seed(addr, "routing")
		direct := map[string]bool{
			"raydium": base > 0.3,
			"orca":    base > 0.6,
			"meteora": base > 0.8,
		}
		snap.Routes[addr] = domain.RouteAvailability{
			Direct:     direct,
			Aggregator: base > 0.1,
		}
	}
	return snap, nil
}

var (
	_ connectors.MarketDataSource = (*Sources)(nil)
	_ connectors.DexStatsSource   = (*Sources)(nil)
	_ connectors.SecuritySource   = (*Sources)(nil)
	_ connectors.RoutingSource    = (*Sources)(nil)
)
