// Package reporting renders per-cycle scan results for the console and for
// file output.
package reporting

import (
	"sort"
	"time"

	"token-radar/internal/domain"
	"token-radar/internal/prefilter"
)

// Report is one cycle's rendered result set.
type Report struct {
	GeneratedAt time.Time
	Cycle       int
	Strategy    string

	FilterStats *prefilter.Stats

	// Rows sorted by final score descending, address ascending on ties.
	Rows []ScoreRow
}

// ScoreRow is one scored candidate in the report.
type ScoreRow struct {
	Address          string
	Symbol           string
	FinalScore       float64
	Confidence       float64
	DegradedMode     bool
	DataCompleteness float64
	Components       domain.ComponentScores
	Findings         []domain.InteractionFinding
}

// Builder assembles reports with an injectable clock for deterministic
// output.
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a report builder using the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock sets a custom clock function for deterministic output.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build assembles a report from one cycle's breakdowns and filter stats.
func (b *Builder) Build(cycle int, strategy string, breakdowns []*domain.ScoreBreakdown, stats *prefilter.Stats) *Report {
	rows := make([]ScoreRow, 0, len(breakdowns))
	for _, bd := range breakdowns {
		rows = append(rows, ScoreRow{
			Address:          bd.Address,
			Symbol:           bd.Symbol,
			FinalScore:       bd.FinalScore,
			Confidence:       bd.Confidence,
			DegradedMode:     bd.DegradedMode,
			DataCompleteness: bd.DataCompleteness,
			Components:       bd.Components,
			Findings:         bd.Findings,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FinalScore != rows[j].FinalScore {
			return rows[i].FinalScore > rows[j].FinalScore
		}
		return rows[i].Address < rows[j].Address
	})

	return &Report{
		GeneratedAt: b.now(),
		Cycle:       cycle,
		Strategy:    strategy,
		FilterStats: stats,
		Rows:        rows,
	}
}
