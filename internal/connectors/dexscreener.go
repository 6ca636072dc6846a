package connectors

import (
	"context"

	"token-radar/internal/domain"
)

const dexscreenerName = "dexscreener"

// DexScreenerClient implements DexStatsSource against a DexScreener-style
// pairs API.
type DexScreenerClient struct {
	client *providerClient
}

// NewDexScreenerClient creates a DEX liquidity stats adapter.
func NewDexScreenerClient(cfg ClientConfig) *DexScreenerClient {
	return &DexScreenerClient{client: newProviderClient(dexscreenerName, cfg)}
}

type dexscreenerPairs struct {
	Pairs []struct {
		DexID     string `json:"dexId"`
		Liquidity *struct {
			USD float64 `json:"usd"`
		} `json:"liquidity"`
		Labels []string `json:"labels"`
	} `json:"pairs"`
}

// FetchDexStats aggregates the token's pairs into a DexStats record.
// A token with no pairs is valid data (zero stats), not an error.
func (d *DexScreenerClient) FetchDexStats(ctx context.Context, address string) (*domain.DexStats, error) {
	const op = "dex_stats"

	var payload dexscreenerPairs
	err := d.client.getJSON(ctx, op, "/latest/dex/tokens/"+address, nil, &payload)
	if err != nil {
		return nil, err
	}

	stats := &domain.DexStats{}
	dexes := make(map[string]struct{})
	for _, pair := range payload.Pairs {
		if pair.DexID == "" {
			return nil, malformed(dexscreenerName, op, "pair without dexId")
		}
		stats.PairCount++
		dexes[pair.DexID] = struct{}{}

		if pair.Liquidity != nil {
			stats.TotalLiquidity += pair.Liquidity.USD
			if pair.Liquidity.USD > stats.BestPoolLiquidity {
				stats.BestPoolLiquidity = pair.Liquidity.USD
			}
		}
		for _, label := range pair.Labels {
			if label == "incentivized" || label == "farm" {
				stats.YieldOpportunity = true
			}
		}
	}
	stats.DexCount = len(dexes)

	return stats, nil
}

var _ DexStatsSource = (*DexScreenerClient)(nil)
