package reporting

import (
	"strings"
	"testing"
	"time"

	"token-radar/internal/domain"
	"token-radar/internal/prefilter"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func sampleBreakdowns() []*domain.ScoreBreakdown {
	return []*domain.ScoreBreakdown{
		{Address: "BBBB", Symbol: "MID", FinalScore: 60, Confidence: 0.8, DataCompleteness: 1},
		{Address: "AAAA", Symbol: "TOP", FinalScore: 85, Confidence: 0.9, DataCompleteness: 1,
			Findings: []domain.InteractionFinding{{
				Type: domain.FindingAmplification, Rule: "validated_and_secure",
				Risk: domain.RiskLow, ScoreModifier: 1.2,
				Explanation: "broad validation backed by a clean report",
			}},
		},
		{Address: "DDDD", Symbol: "TIE2", FinalScore: 60, Confidence: 0.5, DataCompleteness: 0.5},
		{Address: "CCCC", Symbol: "LOW", FinalScore: 12, Confidence: 0.2, DegradedMode: true},
	}
}

func sampleStats() *prefilter.Stats {
	return &prefilter.Stats{
		Evaluated: 10,
		Passed:    4,
		Filtered:  6,
		PassRate:  0.4,
		Reasons:   map[string]int{"volume_too_low": 4, "market_cap_too_low": 2},
	}
}

func TestBuilder_SortsRowsDeterministically(t *testing.T) {
	b := NewBuilder().WithClock(fixedClock)

	report := b.Build(3, "interaction", sampleBreakdowns(), sampleStats())

	if !report.GeneratedAt.Equal(fixedClock()) {
		t.Errorf("generated at %v, want fixed clock", report.GeneratedAt)
	}
	want := []string{"AAAA", "BBBB", "DDDD", "CCCC"}
	for i, addr := range want {
		if report.Rows[i].Address != addr {
			t.Errorf("row %d = %s, want %s", i, report.Rows[i].Address, addr)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	b := NewBuilder().WithClock(fixedClock)
	report := b.Build(3, "interaction", sampleBreakdowns(), sampleStats())

	md := RenderMarkdown(report)

	for _, want := range []string{
		"Cycle: 3 | Strategy: interaction",
		"| Evaluated | 10 |",
		"- market_cap_too_low: 2",
		"- volume_too_low: 4",
		"| AAAA | TOP | 85.0 |",
		"### Findings: AAAA",
		"validated_and_secure",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	// Rejection reasons render in sorted order.
	if strings.Index(md, "market_cap_too_low") > strings.Index(md, "volume_too_low") {
		t.Error("rejection reasons not sorted")
	}
}

func TestRenderMarkdown_EmptyCycle(t *testing.T) {
	b := NewBuilder().WithClock(fixedClock)
	report := b.Build(1, "additive", nil, &prefilter.Stats{Evaluated: 5, Filtered: 5})

	md := RenderMarkdown(report)

	if !strings.Contains(md, "No candidates survived the pre-filter.") {
		t.Error("empty cycle message missing")
	}
}

func TestRenderCSV(t *testing.T) {
	b := NewBuilder().WithClock(fixedClock)
	report := b.Build(3, "interaction", sampleBreakdowns(), sampleStats())

	csv := RenderCSV(report.Rows)
	lines := strings.Split(strings.TrimSpace(csv), "\n")

	if len(lines) != 5 {
		t.Fatalf("expected header + 4 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "address,symbol,final_score") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "AAAA,TOP,85.00") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[1], ",1") { // finding count column
		t.Errorf("finding count missing from row: %s", lines[1])
	}
}
