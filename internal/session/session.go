// Package session holds cross-cycle run statistics. The context is passed
// explicitly into the orchestrator and scoring calls; there is no package
// level singleton.
package session

import "sync"

// Stats is a point-in-time copy of session counters.
type Stats struct {
	CyclesRun           int
	CandidatesEvaluated int
	CandidatesPassed    int
	CandidatesAnalyzed  int
	StepsSucceeded      int
	StepsFailed         int
	AlertsFired         int

	ScoresObserved []float64
}

// Context accumulates session statistics with concurrency-safe updates.
type Context struct {
	mu    sync.Mutex
	stats Stats
}

// New creates an empty session context.
func New() *Context {
	return &Context{}
}

// RecordCycle increments the cycle counter.
func (c *Context) RecordCycle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CyclesRun++
}

// RecordPreFilter records one pre-filter pass.
func (c *Context) RecordPreFilter(evaluated, passed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CandidatesEvaluated += evaluated
	c.stats.CandidatesPassed += passed
}

// RecordStep records one analysis step outcome.
func (c *Context) RecordStep(ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok {
		c.stats.StepsSucceeded++
	} else {
		c.stats.StepsFailed++
	}
}

// RecordCandidateAnalyzed counts one completed analysis record.
func (c *Context) RecordCandidateAnalyzed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.CandidatesAnalyzed++
}

// RecordScore records a final conviction score.
func (c *Context) RecordScore(score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.ScoresObserved = append(c.stats.ScoresObserved, score)
}

// RecordAlert counts one fired alert.
func (c *Context) RecordAlert() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.AlertsFired++
}

// Snapshot returns a copy of the current statistics.
func (c *Context) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.stats
	out.ScoresObserved = make([]float64, len(c.stats.ScoresObserved))
	copy(out.ScoresObserved, c.stats.ScoresObserved)
	return out
}
