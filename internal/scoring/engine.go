package scoring

import (
	"fmt"
	"math"

	"token-radar/internal/domain"
)

// ScoringDependencyError wraps an internal failure of factor extraction or
// interaction detection. It is always recovered into degraded mode, never
// propagated.
type ScoringDependencyError struct {
	Stage string
	Err   error
}

func (e *ScoringDependencyError) Error() string {
	return fmt.Sprintf("scoring dependency %s: %v", e.Stage, e.Err)
}

func (e *ScoringDependencyError) Unwrap() error { return e.Err }

// ScoreStrategy computes a ScoreBreakdown from an analysis record and the
// latest routing snapshot. Implementations are pure and deterministic.
type ScoreStrategy interface {
	Name() string
	Score(rec *domain.AnalysisRecord, snap *domain.RoutingSnapshot) *domain.ScoreBreakdown
}

// Engine wraps the configured strategy. It guarantees a bounded breakdown
// for every record, including fully failed ones.
type Engine struct {
	strategy ScoreStrategy
}

// NewEngine creates an engine around the given strategy.
func NewEngine(strategy ScoreStrategy) *Engine {
	return &Engine{strategy: strategy}
}

// Strategy returns the configured strategy name.
func (e *Engine) Strategy() string { return e.strategy.Name() }

// Score computes the breakdown for one record. Never fails: the worst case
// is a degraded-mode breakdown built from the component sum alone.
func (e *Engine) Score(rec *domain.AnalysisRecord, snap *domain.RoutingSnapshot) *domain.ScoreBreakdown {
	bd := e.strategy.Score(rec, snap)
	bd.Strategy = e.strategy.Name()
	return bd
}

// InteractionStrategy is the full pipeline: traditional components, factor
// extraction, three interaction passes, multiplicative aggregation.
type InteractionStrategy struct {
	rules InteractionRules
}

// NewInteractionStrategy creates the interaction-based strategy.
func NewInteractionStrategy(rules InteractionRules) *InteractionStrategy {
	return &InteractionStrategy{rules: rules}
}

// Name implements ScoreStrategy.
func (s *InteractionStrategy) Name() string { return StrategyInteraction }

// Score implements ScoreStrategy.
func (s *InteractionStrategy) Score(rec *domain.AnalysisRecord, snap *domain.RoutingSnapshot) *domain.ScoreBreakdown {
	return scoreWithInteractions(rec, snap, s.rules, nil)
}

// scoreWithInteractions is shared by the interaction and early-discovery
// strategies; adjust, when set, reweights components before aggregation.
func scoreWithInteractions(
	rec *domain.AnalysisRecord,
	snap *domain.RoutingSnapshot,
	rules InteractionRules,
	adjust func(*domain.ComponentScores, *domain.FactorValues),
) *domain.ScoreBreakdown {
	av, _ := snap.Lookup(rec.Candidate.Address)
	routing := ScoreRouting(av)
	components := scoreComponents(rec, routing.Points)

	bd := &domain.ScoreBreakdown{
		Address:          rec.Candidate.Address,
		Symbol:           rec.Candidate.Symbol,
		Components:       components,
		DataCompleteness: rec.SuccessRatio(),
	}

	factors, err := safeExtractFactors(rec)
	if err != nil {
		return degrade(bd)
	}
	findings, err := safeDetectFindings(factors, rules)
	if err != nil {
		return degrade(bd)
	}

	if adjust != nil {
		adjust(&bd.Components, factors)
	}

	sortFindings(findings)
	bd.Factors = factors
	bd.Findings = findings
	bd.FinalScore = aggregate(bd.Components, findings)
	bd.Confidence = confidence(rec, findings)
	return bd
}

// degrade finalizes the guaranteed worst case: the plain clamped component
// sum. This path must never fail.
func degrade(bd *domain.ScoreBreakdown) *domain.ScoreBreakdown {
	bd.DegradedMode = true
	bd.Factors = nil
	bd.Findings = nil
	bd.FinalScore = clampRange(bd.Components.Sum(), 0, 100)
	bd.Confidence = domain.Clamp01(bd.DataCompleteness)
	return bd
}

// aggregate applies the findings to the component sum: every multiplicative
// modifier in deterministic order, then the critical ceiling, which always
// wins over any amplification. Result clamped to [0,100].
func aggregate(components domain.ComponentScores, findings []domain.InteractionFinding) float64 {
	sum := components.Sum()

	score := sum
	ceiling := math.Inf(1)
	hasCritical := false
	for _, f := range findings {
		if f.IsCriticalOverride() {
			hasCritical = true
			if f.OverrideCeiling < ceiling {
				ceiling = f.OverrideCeiling
			}
			continue
		}
		if f.ScoreModifier > 0 {
			score *= f.ScoreModifier
		}
	}

	if hasCritical {
		score = math.Min(sum, ceiling)
	}
	return clampRange(score, 0, 100)
}

// Confidence adjustments per finding.
const (
	confidencePerAmplification = 0.05
	confidencePerContradiction = 0.10
	confidencePerDanger        = 0.15
)

// confidence starts from the data-completeness ratio, adjusted upward by
// corroborating findings and downward by contradictions and dangers.
func confidence(rec *domain.AnalysisRecord, findings []domain.InteractionFinding) float64 {
	c := rec.SuccessRatio()
	for _, f := range findings {
		switch f.Type {
		case domain.FindingAmplification:
			c += confidencePerAmplification
		case domain.FindingContradiction:
			c -= confidencePerContradiction
		case domain.FindingDangerOverride:
			c -= confidencePerDanger
		}
	}
	return domain.Clamp01(c)
}

// safeExtractFactors recovers panics from factor extraction into a
// ScoringDependencyError so the caller can fall back to degraded mode.
func safeExtractFactors(rec *domain.AnalysisRecord) (factors *domain.FactorValues, err error) {
	defer func() {
		if r := recover(); r != nil {
			factors = nil
			err = &ScoringDependencyError{Stage: "factor extraction", Err: fmt.Errorf("%v", r)}
		}
	}()
	factors, extractErr := extractFactors(rec)
	if extractErr != nil {
		return nil, &ScoringDependencyError{Stage: "factor extraction", Err: extractErr}
	}
	return factors, nil
}

// safeDetectFindings recovers panics from the interaction passes.
func safeDetectFindings(factors *domain.FactorValues, rules InteractionRules) (findings []domain.InteractionFinding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = &ScoringDependencyError{Stage: "interaction detection", Err: fmt.Errorf("%v", r)}
		}
	}()
	return detectFindings(factors, rules), nil
}
