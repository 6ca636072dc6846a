// Package connectors defines the external data-source boundary and the
// concrete provider adapters behind it. Every adapter maps provider payloads
// to typed records at this boundary; untyped data never flows into the
// pipeline. Each call may fail, time out, or be rate-limited independently.
package connectors

import (
	"context"

	"token-radar/internal/domain"
)

// MarketDataSource provides token market data (overview, holders,
// transactions, OHLCV candles).
type MarketDataSource interface {
	FetchOverview(ctx context.Context, address string) (*domain.TokenOverview, error)
	FetchHolders(ctx context.Context, address string, limit int) (*domain.HolderDistribution, error)
	FetchTransactions(ctx context.Context, address string, limit int) (*domain.TransactionActivity, error)
	FetchOHLCV(ctx context.Context, address, timeframe string) (*domain.OHLCVSeries, error)
}

// DexStatsSource provides DEX liquidity statistics.
type DexStatsSource interface {
	FetchDexStats(ctx context.Context, address string) (*domain.DexStats, error)
}

// SecuritySource provides security checker verdicts.
type SecuritySource interface {
	FetchSecurityReport(ctx context.Context, address string) (*domain.SecurityReport, error)
}

// RoutingSource provides the route availability matrix for a set of tokens.
type RoutingSource interface {
	FetchRoutingSnapshot(ctx context.Context, addresses []string) (*domain.RoutingSnapshot, error)
}
