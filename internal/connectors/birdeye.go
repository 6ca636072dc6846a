package connectors

import (
	"context"
	"strconv"
	"time"

	"token-radar/internal/domain"
)

const birdeyeName = "birdeye"

// BirdeyeClient implements MarketDataSource against a Birdeye-style API.
type BirdeyeClient struct {
	client *providerClient
}

// NewBirdeyeClient creates a market-data adapter.
func NewBirdeyeClient(cfg ClientConfig) *BirdeyeClient {
	return &BirdeyeClient{client: newProviderClient(birdeyeName, cfg)}
}

// Payload shapes. Pointers distinguish absent fields from zero values so
// malformed responses are caught here, not downstream.
type birdeyeEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data"`
}

type birdeyeOverview struct {
	Address         string   `json:"address"`
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	MarketCap       float64  `json:"mc"`
	Liquidity       float64  `json:"liquidity"`
	Volume24h       float64  `json:"v24hUSD"`
	VolumeChange24h float64  `json:"v24hChangePercent"`
	PriceChange1h   float64  `json:"priceChange1hPercent"`
	PriceChange24h  float64  `json:"priceChange24hPercent"`
	Holders         int      `json:"holder"`
	CreatedUnixTime int64    `json:"createdUnixTime"`
}

type birdeyeHolders struct {
	TotalHolders int `json:"totalHolders"`
	Items        []struct {
		Owner      string  `json:"owner"`
		Percentage float64 `json:"percentage"`
		SmartMoney bool    `json:"isSmartMoney"`
	} `json:"items"`
}

type birdeyeTxs struct {
	Items []struct {
		Side  string `json:"side"` // buy | sell
		Owner string `json:"owner"`
	} `json:"items"`
}

type birdeyeOHLCV struct {
	Items []struct {
		UnixTime int64   `json:"unixTime"`
		O        float64 `json:"o"`
		H        float64 `json:"h"`
		L        float64 `json:"l"`
		C        float64 `json:"c"`
		V        float64 `json:"v"`
	} `json:"items"`
}

// FetchOverview returns the typed market overview for a token.
func (b *BirdeyeClient) FetchOverview(ctx context.Context, address string) (*domain.TokenOverview, error) {
	const op = "overview"

	var env birdeyeEnvelope[birdeyeOverview]
	err := b.client.getJSON(ctx, op, "/defi/token_overview", map[string]string{"address": address}, &env)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, malformed(birdeyeName, op, "missing data envelope")
	}
	d := env.Data
	if d.Price == nil {
		return nil, malformed(birdeyeName, op, "missing price")
	}

	ageHours := 0.0
	if d.CreatedUnixTime > 0 {
		ageHours = time.Since(time.Unix(d.CreatedUnixTime, 0)).Hours()
	}

	return &domain.TokenOverview{
		Address:         address,
		Symbol:          d.Symbol,
		Name:            d.Name,
		PriceUSD:        *d.Price,
		MarketCap:       d.MarketCap,
		Liquidity:       d.Liquidity,
		Volume24h:       d.Volume24h,
		VolumeChange24h: d.VolumeChange24h,
		PriceChange1h:   d.PriceChange1h,
		PriceChange24h:  d.PriceChange24h,
		Holders:         d.Holders,
		AgeHours:        ageHours,
	}, nil
}

// FetchHolders returns the holder distribution for a token.
func (b *BirdeyeClient) FetchHolders(ctx context.Context, address string, limit int) (*domain.HolderDistribution, error) {
	const op = "holders"
	if limit <= 0 {
		limit = 20
	}

	var env birdeyeEnvelope[birdeyeHolders]
	err := b.client.getJSON(ctx, op, "/defi/token_holders", map[string]string{
		"address": address,
		"limit":   strconv.Itoa(limit),
	}, &env)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, malformed(birdeyeName, op, "missing data envelope")
	}

	dist := &domain.HolderDistribution{TotalHolders: env.Data.TotalHolders}
	smartScoreSum := 0.0
	for i, item := range env.Data.Items {
		dist.TopHolders = append(dist.TopHolders, domain.HolderStake{
			Address: item.Owner,
			Pct:     item.Percentage,
		})
		if i < 10 {
			dist.Top10Pct += item.Percentage
		}
		if item.SmartMoney {
			dist.SmartMoneyCount++
			smartScoreSum += item.Percentage
		}
	}
	// Smart-money score: share of inspected supply held by smart wallets.
	dist.SmartMoneyScore = domain.Clamp01(smartScoreSum / 100 * 5)

	return dist, nil
}

// FetchTransactions returns recent trade activity for a token.
func (b *BirdeyeClient) FetchTransactions(ctx context.Context, address string, limit int) (*domain.TransactionActivity, error) {
	const op = "transactions"
	if limit <= 0 {
		limit = 50
	}

	var env birdeyeEnvelope[birdeyeTxs]
	err := b.client.getJSON(ctx, op, "/defi/txs/token", map[string]string{
		"address": address,
		"limit":   strconv.Itoa(limit),
	}, &env)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, malformed(birdeyeName, op, "missing data envelope")
	}

	act := &domain.TransactionActivity{}
	wallets := make(map[string]struct{})
	for _, item := range env.Data.Items {
		switch item.Side {
		case "buy":
			act.Buys24h++
		case "sell":
			act.Sells24h++
		}
		if item.Owner != "" {
			wallets[item.Owner] = struct{}{}
		}
	}
	act.UniqueWallets = len(wallets)
	if act.Sells24h > 0 {
		act.BuySellRatio = float64(act.Buys24h) / float64(act.Sells24h)
	}

	return act, nil
}

// FetchOHLCV returns candles for a token and timeframe, oldest first.
func (b *BirdeyeClient) FetchOHLCV(ctx context.Context, address, timeframe string) (*domain.OHLCVSeries, error) {
	const op = "ohlcv"
	if timeframe == "" {
		timeframe = "1h"
	}

	var env birdeyeEnvelope[birdeyeOHLCV]
	err := b.client.getJSON(ctx, op, "/defi/ohlcv", map[string]string{
		"address": address,
		"type":    timeframe,
	}, &env)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Data == nil {
		return nil, malformed(birdeyeName, op, "missing data envelope")
	}
	if len(env.Data.Items) == 0 {
		return nil, malformed(birdeyeName, op, "empty candle list")
	}

	series := &domain.OHLCVSeries{Timeframe: timeframe}
	for _, item := range env.Data.Items {
		series.Candles = append(series.Candles, domain.Candle{
			OpenTimeMs: item.UnixTime * 1000,
			Open:       item.O,
			High:       item.H,
			Low:        item.L,
			Close:      item.C,
			Volume:     item.V,
		})
	}
	return series, nil
}

var _ MarketDataSource = (*BirdeyeClient)(nil)
