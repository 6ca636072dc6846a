package session

import (
	"sync"
	"testing"
)

func TestContext_Counters(t *testing.T) {
	c := New()

	c.RecordCycle()
	c.RecordCycle()
	c.RecordPreFilter(30, 8)
	c.RecordPreFilter(10, 2)
	c.RecordCandidateAnalyzed()
	c.RecordStep(true)
	c.RecordStep(true)
	c.RecordStep(false)
	c.RecordScore(72.5)
	c.RecordScore(13)
	c.RecordAlert()

	s := c.Snapshot()
	if s.CyclesRun != 2 {
		t.Errorf("cycles = %d, want 2", s.CyclesRun)
	}
	if s.CandidatesEvaluated != 40 || s.CandidatesPassed != 10 {
		t.Errorf("prefilter counters = %d/%d, want 40/10", s.CandidatesEvaluated, s.CandidatesPassed)
	}
	if s.CandidatesAnalyzed != 1 {
		t.Errorf("analyzed = %d, want 1", s.CandidatesAnalyzed)
	}
	if s.StepsSucceeded != 2 || s.StepsFailed != 1 {
		t.Errorf("steps = %d/%d, want 2/1", s.StepsSucceeded, s.StepsFailed)
	}
	if s.AlertsFired != 1 {
		t.Errorf("alerts = %d, want 1", s.AlertsFired)
	}
	if len(s.ScoresObserved) != 2 || s.ScoresObserved[0] != 72.5 {
		t.Errorf("scores = %v", s.ScoresObserved)
	}
}

func TestContext_SnapshotIsACopy(t *testing.T) {
	c := New()
	c.RecordScore(50)

	snap := c.Snapshot()
	snap.ScoresObserved[0] = 999
	snap.CyclesRun = 42

	fresh := c.Snapshot()
	if fresh.ScoresObserved[0] != 50 {
		t.Error("mutating a snapshot leaked into the session")
	}
	if fresh.CyclesRun != 0 {
		t.Error("snapshot shares counter state with the session")
	}
}

func TestContext_ConcurrentUpdates(t *testing.T) {
	c := New()
	const workers = 10
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.RecordStep(j%2 == 0)
				c.RecordScore(float64(j))
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	if s.StepsSucceeded+s.StepsFailed != workers*perWorker {
		t.Errorf("step total = %d, want %d", s.StepsSucceeded+s.StepsFailed, workers*perWorker)
	}
	if len(s.ScoresObserved) != workers*perWorker {
		t.Errorf("scores recorded = %d, want %d", len(s.ScoresObserved), workers*perWorker)
	}
}
