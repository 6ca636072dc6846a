package domain

// Candidate represents a token surfaced by upstream discovery for conviction scoring.
// Produced once per cycle by the discovery component; treated as immutable afterward.
type Candidate struct {
	Address            string   // token mint address
	Symbol             string   // ticker symbol as reported by discovery
	Platforms          []string // provider IDs the token was seen on
	CrossPlatformScore float64  // discovery-side score across platforms
	MarketCap          float64  // USD
	Volume24h          float64  // USD
	Liquidity          float64  // USD
}

// HasPlatform reports whether the candidate was seen on the given provider.
func (c *Candidate) HasPlatform(id string) bool {
	for _, p := range c.Platforms {
		if p == id {
			return true
		}
	}
	return false
}

// PlatformCount returns the number of distinct platforms the candidate was seen on.
func (c *Candidate) PlatformCount() int {
	seen := make(map[string]struct{}, len(c.Platforms))
	for _, p := range c.Platforms {
		seen[p] = struct{}{}
	}
	return len(seen)
}
