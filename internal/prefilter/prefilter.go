// Package prefilter validates and trims the raw candidate list before the
// expensive analysis stage runs.
package prefilter

import (
	"sort"

	"github.com/mr-tron/base58"

	"token-radar/internal/domain"
)

// Rejection reasons recorded in Stats.Reasons. A candidate may carry several.
const (
	ReasonInvalidAddress     = "invalid_address"
	ReasonMarketCapTooLow    = "market_cap_too_low"
	ReasonMarketCapTooHigh   = "market_cap_too_high"
	ReasonVolumeTooLow       = "volume_too_low"
	ReasonPlatformValidation = "insufficient_platform_validation"
	ReasonCapLimit           = "cap-limit"
)

// Non-financial validator platforms: presence in the candidate's platform set
// counts as validation even without financial metrics. These are the security
// checker, the routing aggregator, and the pool-existence attester.
var nonFinancialValidators = map[string]struct{}{
	"rugcheck":    {},
	"jupiter":     {},
	"dexscreener": {},
}

// Config holds the pre-filter thresholds.
type Config struct {
	MinMarketCap          float64 `yaml:"min_market_cap"`
	MaxMarketCap          float64 `yaml:"max_market_cap"`
	MinVolume             float64 `yaml:"min_volume"`
	MinValidatedPlatforms int     `yaml:"min_validated_platforms"`
	MaxSurvivors          int     `yaml:"max_survivors"`

	// MissedOpportunityScoreThreshold flags filtered candidates whose
	// cross-platform score was at least this high.
	MissedOpportunityScoreThreshold float64 `yaml:"missed_opportunity_score_threshold"`
}

// MissedOpportunity records a filtered candidate that scored well upstream.
type MissedOpportunity struct {
	Candidate domain.Candidate
	Reason    string
	Score     float64
}

// Stats accumulates per-cycle filter statistics.
type Stats struct {
	Evaluated int
	Passed    int
	Filtered  int
	PassRate  float64

	Reasons             map[string]int
	MissedOpportunities []MissedOpportunity

	AvgScorePassed   float64
	AvgScoreFiltered float64
}

// PreFilter applies the configured thresholds to a candidate list.
type PreFilter struct {
	cfg Config
}

// New creates a PreFilter with the given thresholds.
func New(cfg Config) *PreFilter {
	return &PreFilter{cfg: cfg}
}

// Apply evaluates every candidate and returns the survivors plus statistics.
// Survivors are sorted by CrossPlatformScore descending, tie-broken by
// lexicographic address ascending, and truncated to MaxSurvivors. Identical
// inputs and config always yield identical ordering and statistics.
func (f *PreFilter) Apply(candidates []domain.Candidate) ([]domain.Candidate, *Stats) {
	stats := &Stats{
		Evaluated: len(candidates),
		Reasons:   make(map[string]int),
	}

	var survivors []domain.Candidate
	var passedSum, filteredSum float64

	for _, c := range candidates {
		reasons := f.evaluate(&c)
		if len(reasons) == 0 {
			survivors = append(survivors, c)
			passedSum += c.CrossPlatformScore
			continue
		}
		filteredSum += c.CrossPlatformScore
		f.reject(stats, c, reasons)
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].CrossPlatformScore != survivors[j].CrossPlatformScore {
			return survivors[i].CrossPlatformScore > survivors[j].CrossPlatformScore
		}
		return survivors[i].Address < survivors[j].Address
	})

	if f.cfg.MaxSurvivors > 0 && len(survivors) > f.cfg.MaxSurvivors {
		for _, c := range survivors[f.cfg.MaxSurvivors:] {
			passedSum -= c.CrossPlatformScore
			filteredSum += c.CrossPlatformScore
			f.reject(stats, c, []string{ReasonCapLimit})
		}
		survivors = survivors[:f.cfg.MaxSurvivors]
	}

	stats.Passed = len(survivors)
	stats.Filtered = stats.Evaluated - stats.Passed
	if stats.Evaluated > 0 {
		stats.PassRate = float64(stats.Passed) / float64(stats.Evaluated)
	}
	if stats.Passed > 0 {
		stats.AvgScorePassed = passedSum / float64(stats.Passed)
	}
	if stats.Filtered > 0 {
		stats.AvgScoreFiltered = filteredSum / float64(stats.Filtered)
	}

	return survivors, stats
}

// evaluate returns every applicable rejection reason, or nil for a pass.
func (f *PreFilter) evaluate(c *domain.Candidate) []string {
	var reasons []string

	if !validAddress(c.Address) {
		// Malformed addresses skip the financial checks entirely.
		return []string{ReasonInvalidAddress}
	}
	if c.MarketCap < f.cfg.MinMarketCap {
		reasons = append(reasons, ReasonMarketCapTooLow)
	}
	if f.cfg.MaxMarketCap > 0 && c.MarketCap > f.cfg.MaxMarketCap {
		reasons = append(reasons, ReasonMarketCapTooHigh)
	}
	if c.Volume24h < f.cfg.MinVolume {
		reasons = append(reasons, ReasonVolumeTooLow)
	}
	if f.ValidatedPlatformCount(c) < f.cfg.MinValidatedPlatforms {
		reasons = append(reasons, ReasonPlatformValidation)
	}

	return reasons
}

// ValidatedPlatformCount counts platforms that validate the candidate.
// A platform validates if the candidate carries positive financial metrics
// attributable to it, or if the platform is a known non-financial validator.
func (f *PreFilter) ValidatedPlatformCount(c *domain.Candidate) int {
	hasFinancials := c.MarketCap > 0 || c.Volume24h > 0 || c.Liquidity > 0

	count := 0
	seen := make(map[string]struct{}, len(c.Platforms))
	for _, p := range c.Platforms {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		if _, ok := nonFinancialValidators[p]; ok {
			count++
			continue
		}
		if hasFinancials {
			count++
		}
	}
	return count
}

func (f *PreFilter) reject(stats *Stats, c domain.Candidate, reasons []string) {
	for _, r := range reasons {
		stats.Reasons[r]++
	}
	if c.CrossPlatformScore >= f.cfg.MissedOpportunityScoreThreshold &&
		f.cfg.MissedOpportunityScoreThreshold > 0 {
		stats.MissedOpportunities = append(stats.MissedOpportunities, MissedOpportunity{
			Candidate: c,
			Reason:    reasons[0],
			Score:     c.CrossPlatformScore,
		})
	}
}

// validAddress checks the base58 shape of a mint address (32-byte payload).
func validAddress(addr string) bool {
	if addr == "" {
		return false
	}
	raw, err := base58.Decode(addr)
	if err != nil {
		return false
	}
	return len(raw) == 32
}
