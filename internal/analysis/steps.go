package analysis

import (
	"context"

	"token-radar/internal/cache"
	"token-radar/internal/domain"
)

// Each step checks the cache first and, on miss, calls the connector and
// stores the result. Writes are first-winner-wins, so after a Set the value
// is re-read: a concurrent worker may have stored its result first and every
// reader of the key must see the same value for the rest of the cycle.

func (o *Orchestrator) stepOverview(ctx context.Context, store *cache.Cache, address string) (any, error) {
	return o.overview(ctx, store, address)
}

func (o *Orchestrator) stepWhale(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindHolders); ok {
		return v, nil
	}
	dist, err := o.market.FetchHolders(ctx, address, 20)
	if err != nil {
		return nil, err
	}
	store.Set(address, cache.KindHolders, dist)
	v, _ := store.Get(address, cache.KindHolders)
	return v, nil
}

func (o *Orchestrator) stepVolumePrice(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindVolumeTrend); ok {
		return v, nil
	}
	series, err := o.ohlcv(ctx, store, address)
	if err != nil {
		return nil, err
	}
	trend := deriveVolumePriceTrend(series)
	store.Set(address, cache.KindVolumeTrend, trend)
	v, _ := store.Get(address, cache.KindVolumeTrend)
	return v, nil
}

func (o *Orchestrator) stepCommunity(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindTransactions); ok {
		return v, nil
	}
	activity, err := o.market.FetchTransactions(ctx, address, 50)
	if err != nil {
		return nil, err
	}
	store.Set(address, cache.KindTransactions, activity)
	v, _ := store.Get(address, cache.KindTransactions)
	return v, nil
}

func (o *Orchestrator) stepSecurity(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindSecurity); ok {
		return v, nil
	}
	report, err := o.security.FetchSecurityReport(ctx, address)
	if err != nil {
		return nil, err
	}
	store.Set(address, cache.KindSecurity, report)
	v, _ := store.Get(address, cache.KindSecurity)
	return v, nil
}

func (o *Orchestrator) stepDexLiquidity(ctx context.Context, store *cache.Cache, address string) (any, error) {
	return o.dexStats(ctx, store, address)
}

// stepVLR derives the volume/liquidity-ratio record from the overview and
// DEX stats. Both dependencies are usually already cached by earlier steps.
func (o *Orchestrator) stepVLR(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindVLR); ok {
		return v, nil
	}

	overview, err := o.overview(ctx, store, address)
	if err != nil {
		return nil, err
	}
	ov := overview.(*domain.TokenOverview)

	liquidity := ov.Liquidity
	if stats, err := o.dexStats(ctx, store, address); err == nil {
		if ds := stats.(*domain.DexStats); ds.TotalLiquidity > 0 {
			liquidity = ds.TotalLiquidity
		}
	}

	vlr := deriveVLR(ov, liquidity)
	store.Set(address, cache.KindVLR, vlr)
	v, _ := store.Get(address, cache.KindVLR)
	return v, nil
}

// overview is the cache-aware overview fetch shared by steps.
func (o *Orchestrator) overview(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindOverview); ok {
		return v, nil
	}
	ov, err := o.market.FetchOverview(ctx, address)
	if err != nil {
		return nil, err
	}
	store.Set(address, cache.KindOverview, ov)
	v, _ := store.Get(address, cache.KindOverview)
	return v, nil
}

// dexStats is the cache-aware DEX stats fetch shared by steps.
func (o *Orchestrator) dexStats(ctx context.Context, store *cache.Cache, address string) (any, error) {
	if v, ok := store.Get(address, cache.KindDexStats); ok {
		return v, nil
	}
	stats, err := o.dex.FetchDexStats(ctx, address)
	if err != nil {
		return nil, err
	}
	store.Set(address, cache.KindDexStats, stats)
	v, _ := store.Get(address, cache.KindDexStats)
	return v, nil
}

// ohlcv is the cache-aware candle fetch backing the volume/price step.
func (o *Orchestrator) ohlcv(ctx context.Context, store *cache.Cache, address string) (*domain.OHLCVSeries, error) {
	if v, ok := store.Get(address, cache.KindOHLCV); ok {
		return v.(*domain.OHLCVSeries), nil
	}
	series, err := o.market.FetchOHLCV(ctx, address, "1h")
	if err != nil {
		return nil, err
	}
	store.Set(address, cache.KindOHLCV, series)
	v, _ := store.Get(address, cache.KindOHLCV)
	return v.(*domain.OHLCVSeries), nil
}

// deriveVolumePriceTrend labels volume direction and price momentum over the
// candle window: volume compares the second half of the window against the
// first, momentum compares last close against first open.
func deriveVolumePriceTrend(series *domain.OHLCVSeries) *domain.VolumePriceTrend {
	trend := &domain.VolumePriceTrend{
		VolumeTrend: domain.TrendStable,
		Momentum:    domain.MomentumNeutral,
	}
	n := len(series.Candles)
	if n < 2 {
		return trend
	}

	half := n / 2
	var firstVol, secondVol float64
	for i, candle := range series.Candles {
		if i < half {
			firstVol += candle.Volume
		} else {
			secondVol += candle.Volume
		}
	}
	if firstVol > 0 {
		trend.VolumeChange = (secondVol - firstVol) / firstVol * 100
	}
	switch {
	case trend.VolumeChange > 15:
		trend.VolumeTrend = domain.TrendRising
	case trend.VolumeChange < -15:
		trend.VolumeTrend = domain.TrendFalling
	}

	open := series.Candles[0].Open
	closing := series.Candles[n-1].Close
	if open > 0 {
		trend.PriceChangePct = (closing - open) / open * 100
	}
	switch {
	case trend.PriceChangePct > 5:
		trend.Momentum = domain.MomentumBullish
	case trend.PriceChangePct < -5:
		trend.Momentum = domain.MomentumBearish
	}

	return trend
}

// deriveVLR builds the VLR record from the overview and the best known
// liquidity figure.
func deriveVLR(ov *domain.TokenOverview, liquidity float64) *domain.VLRAnalysis {
	ratio := 0.0
	if liquidity > 0 {
		ratio = ov.Volume24h / liquidity
	}
	class := domain.ClassifyVLR(ratio)

	gem := "low"
	switch class {
	case domain.VLRClassIdeal:
		if ov.PriceChange24h > 0 && ov.Holders > 500 {
			gem = "high"
		} else {
			gem = "medium"
		}
	case domain.VLRClassElevated:
		gem = "medium"
	}

	risk := "low"
	switch class {
	case domain.VLRClassExtreme:
		risk = "high"
	case domain.VLRClassElevated:
		risk = "medium"
	}

	return &domain.VLRAnalysis{
		Ratio:        ratio,
		Class:        class,
		GemPotential: gem,
		RiskLabel:    risk,
	}
}
