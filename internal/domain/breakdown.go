package domain

// ComponentScores are the traditional additive components, each bounded to
// its documented range.
type ComponentScores struct {
	Base         float64 // 0-40
	Overview     float64 // 0-20
	Whale        float64 // 0-15
	VolumePrice  float64 // 0-15
	Security     float64 // 0-10
	DexLiquidity float64 // 0-10
	VLR          float64 // 0-15
	Routing      float64 // 0-18
}

// Sum returns the plain additive total of all components.
func (c ComponentScores) Sum() float64 {
	return c.Base + c.Overview + c.Whale + c.VolumePrice +
		c.Security + c.DexLiquidity + c.VLR + c.Routing
}

// ScoreBreakdown is the terminal scoring output for one candidate.
// Owned by the caller after return.
type ScoreBreakdown struct {
	Address    string
	Symbol     string
	Strategy   string
	Components ComponentScores
	Factors    *FactorValues // nil in degraded mode
	Findings   []InteractionFinding
	FinalScore float64 // always in [0,100]
	Confidence float64 // always in [0,1]

	// DegradedMode is set when factor extraction or interaction detection
	// could not run and the score fell back to the clamped component sum.
	DegradedMode bool

	// DataCompleteness is successCount/totalSteps of the analysis record.
	DataCompleteness float64
}
