package scoring

import (
	"errors"

	"token-radar/internal/domain"
)

// Strategy names accepted by FromConfig.
const (
	StrategyInteraction    = "interaction"
	StrategyAdditive       = "additive"
	StrategyEarlyDiscovery = "early-discovery"
)

// ErrUnknownStrategy is returned for a strategy name FromConfig does not know.
var ErrUnknownStrategy = errors.New("unknown scoring strategy")

// FromConfig creates a ScoreStrategy by name. The strategy is chosen once at
// construction; there is no runtime switching.
func FromConfig(name string, rules InteractionRules) (ScoreStrategy, error) {
	switch name {
	case StrategyInteraction:
		return NewInteractionStrategy(rules), nil
	case StrategyAdditive:
		return NewAdditiveStrategy(), nil
	case StrategyEarlyDiscovery:
		return NewEarlyDiscoveryStrategy(rules), nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// AdditiveStrategy is the plain mode: the clamped sum of traditional
// components, no factor extraction, no interaction passes.
type AdditiveStrategy struct{}

// NewAdditiveStrategy creates the plain additive strategy.
func NewAdditiveStrategy() *AdditiveStrategy {
	return &AdditiveStrategy{}
}

// Name implements ScoreStrategy.
func (s *AdditiveStrategy) Name() string { return StrategyAdditive }

// Score implements ScoreStrategy.
func (s *AdditiveStrategy) Score(rec *domain.AnalysisRecord, snap *domain.RoutingSnapshot) *domain.ScoreBreakdown {
	av, _ := snap.Lookup(rec.Candidate.Address)
	routing := ScoreRouting(av)
	components := scoreComponents(rec, routing.Points)

	return &domain.ScoreBreakdown{
		Address:          rec.Candidate.Address,
		Symbol:           rec.Candidate.Symbol,
		Components:       components,
		FinalScore:       clampRange(components.Sum(), 0, 100),
		Confidence:       domain.Clamp01(rec.SuccessRatio()),
		DataCompleteness: rec.SuccessRatio(),
	}
}

// EarlyDiscoveryStrategy reweights for very young tokens: fundamentals
// carry less signal in the first hours, momentum and freshness carry more.
type EarlyDiscoveryStrategy struct {
	rules InteractionRules
}

// NewEarlyDiscoveryStrategy creates the early-discovery strategy.
func NewEarlyDiscoveryStrategy(rules InteractionRules) *EarlyDiscoveryStrategy {
	return &EarlyDiscoveryStrategy{rules: rules}
}

// Name implements ScoreStrategy.
func (s *EarlyDiscoveryStrategy) Name() string { return StrategyEarlyDiscovery }

// Score implements ScoreStrategy.
func (s *EarlyDiscoveryStrategy) Score(rec *domain.AnalysisRecord, snap *domain.RoutingSnapshot) *domain.ScoreBreakdown {
	return scoreWithInteractions(rec, snap, s.rules, adjustForEarlyDiscovery)
}

// adjustForEarlyDiscovery shifts weight from slow-moving fundamentals to
// freshness and momentum. Component bounds still hold.
func adjustForEarlyDiscovery(c *domain.ComponentScores, f *domain.FactorValues) {
	c.Overview = clampRange(c.Overview*0.5, 0, overviewMax)
	c.Whale = clampRange(c.Whale*0.5, 0, whaleMax)
	c.VolumePrice = clampRange(c.VolumePrice*1.2, 0, volumePriceMax)
	c.VLR = clampRange(c.VLR+f.AgeFactor*5, 0, vlrMax)
}

var (
	_ ScoreStrategy = (*InteractionStrategy)(nil)
	_ ScoreStrategy = (*AdditiveStrategy)(nil)
	_ ScoreStrategy = (*EarlyDiscoveryStrategy)(nil)
)
