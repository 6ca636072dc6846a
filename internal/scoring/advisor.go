package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Threshold advisor bounds: a conviction threshold outside this range is
// either alerting on noise or never alerting at all.
const (
	advisorMinThreshold = 30.0
	advisorMaxThreshold = 95.0
	advisorMinSample    = 10
)

// ThresholdSuggestion is the advisor's output. Purely advisory; nothing in
// the engine reads it back.
type ThresholdSuggestion struct {
	Current    float64
	Suggested  float64
	SampleSize int
	P50        float64
	P75        float64
	P90        float64
	Rationale  string
}

// Advise suggests an alert threshold from the observed score distribution.
// Pure function: no state, no clock, deterministic for identical inputs. The
// caller decides whether to apply the suggestion; the scoring engine never
// adjusts its own configuration.
func Advise(observed []float64, current float64) ThresholdSuggestion {
	s := ThresholdSuggestion{
		Current:    current,
		Suggested:  current,
		SampleSize: len(observed),
	}
	if len(observed) < advisorMinSample {
		s.Rationale = fmt.Sprintf("sample of %d below minimum %d, keeping current threshold",
			len(observed), advisorMinSample)
		return s
	}

	sorted := make([]float64, len(observed))
	copy(sorted, observed)
	sort.Float64s(sorted)

	s.P50 = percentile(sorted, 0.50)
	s.P75 = percentile(sorted, 0.75)
	s.P90 = percentile(sorted, 0.90)

	// Aim the threshold at the top decile, smoothed toward the current value
	// so one cycle cannot swing it violently.
	target := 0.5*current + 0.5*s.P90
	s.Suggested = math.Round(clampRange(target, advisorMinThreshold, advisorMaxThreshold)*10) / 10
	s.Rationale = fmt.Sprintf("top decile of %d scores sits at %.1f", len(sorted), s.P90)
	return s
}

// percentile interpolates linearly over a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
