package domain

// FindingType distinguishes the three interaction passes.
type FindingType string

const (
	FindingDangerOverride FindingType = "DANGER_OVERRIDE"
	FindingAmplification  FindingType = "AMPLIFICATION"
	FindingContradiction  FindingType = "CONTRADICTION"
)

// RiskLevel grades an interaction finding.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// InteractionFinding is one detected factor combination. Immutable once
// emitted. Either ScoreModifier (multiplicative, non-critical findings) or
// OverrideCeiling (critical danger findings) is meaningful, never both.
type InteractionFinding struct {
	Type            FindingType
	Rule            string // stable rule identifier, used for deterministic ordering
	Risk            RiskLevel
	ScoreModifier   float64 // multiplicative; 0 when OverrideCeiling applies
	OverrideCeiling float64 // hard score cap; only set for critical danger findings
	Explanation     string
}

// IsCriticalOverride reports whether the finding carries a hard score ceiling.
func (f InteractionFinding) IsCriticalOverride() bool {
	return f.Type == FindingDangerOverride && f.Risk == RiskCritical
}
