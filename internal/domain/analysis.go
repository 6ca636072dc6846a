package domain

// StepName identifies one analysis step in the per-candidate sequence.
type StepName string

// Analysis steps, in execution order.
const (
	StepOverview     StepName = "overview"
	StepWhale        StepName = "whale_holder"
	StepVolumePrice  StepName = "volume_price"
	StepCommunity    StepName = "community_signal"
	StepSecurity     StepName = "security"
	StepDexLiquidity StepName = "dex_liquidity"
	StepVLR          StepName = "vlr_derived"
)

// AnalysisSteps returns the fixed step sequence executed for every candidate.
func AnalysisSteps() []StepName {
	return []StepName{
		StepOverview,
		StepWhale,
		StepVolumePrice,
		StepCommunity,
		StepSecurity,
		StepDexLiquidity,
		StepVLR,
	}
}

// TotalAnalysisSteps is the length of the fixed step sequence.
const TotalAnalysisSteps = 7

// StepResult holds the outcome of a single analysis step.
// Exactly one of Data and Err is set.
type StepResult struct {
	Data any
	Err  error
}

// AnalysisRecord is the per-candidate output of the orchestrator.
// It is written only by the worker handling the candidate and is
// read-only afterward.
type AnalysisRecord struct {
	Candidate    Candidate
	StepResults  map[StepName]StepResult
	SuccessCount int
	TotalSteps   int
}

// NewAnalysisRecord creates an empty record for the candidate.
func NewAnalysisRecord(c Candidate) *AnalysisRecord {
	return &AnalysisRecord{
		Candidate:   c,
		StepResults: make(map[StepName]StepResult, TotalAnalysisSteps),
		TotalSteps:  TotalAnalysisSteps,
	}
}

// RecordStep stores a step outcome and updates the success count.
func (r *AnalysisRecord) RecordStep(name StepName, data any, err error) {
	r.StepResults[name] = StepResult{Data: data, Err: err}
	if err == nil {
		r.SuccessCount++
	}
}

// StepData returns the data of a successful step, or (nil, false) if the
// step failed or never ran.
func (r *AnalysisRecord) StepData(name StepName) (any, bool) {
	res, ok := r.StepResults[name]
	if !ok || res.Err != nil {
		return nil, false
	}
	return res.Data, true
}

// Failed reports whether every step failed for this candidate.
func (r *AnalysisRecord) Failed() bool {
	return r.SuccessCount == 0
}

// SuccessRatio returns successCount/totalSteps, the data-completeness ratio.
func (r *AnalysisRecord) SuccessRatio() float64 {
	if r.TotalSteps == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalSteps)
}
