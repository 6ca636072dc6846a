package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderMarkdown renders a cycle report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Scan Cycle Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Cycle: %d | Strategy: %s\n\n", r.Cycle, r.Strategy))

	if r.FilterStats != nil {
		s := r.FilterStats
		sb.WriteString("## Pre-Filter\n\n")
		sb.WriteString("| Metric | Value |\n")
		sb.WriteString("|--------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Evaluated | %d |\n", s.Evaluated))
		sb.WriteString(fmt.Sprintf("| Passed | %d |\n", s.Passed))
		sb.WriteString(fmt.Sprintf("| Filtered | %d |\n", s.Filtered))
		sb.WriteString(fmt.Sprintf("| Pass Rate | %.1f%% |\n", s.PassRate*100))
		sb.WriteString(fmt.Sprintf("| Avg Score (passed) | %.2f |\n", s.AvgScorePassed))
		sb.WriteString(fmt.Sprintf("| Avg Score (filtered) | %.2f |\n", s.AvgScoreFiltered))
		sb.WriteString("\n")

		if len(s.Reasons) > 0 {
			sb.WriteString("### Rejection Reasons\n\n")
			reasons := make([]string, 0, len(s.Reasons))
			for reason := range s.Reasons {
				reasons = append(reasons, reason)
			}
			sort.Strings(reasons)
			for _, reason := range reasons {
				sb.WriteString(fmt.Sprintf("- %s: %d\n", reason, s.Reasons[reason]))
			}
			sb.WriteString("\n")
		}

		if len(s.MissedOpportunities) > 0 {
			sb.WriteString("### Missed Opportunities\n\n")
			sb.WriteString("| Address | Symbol | Score | Reason |\n")
			sb.WriteString("|---------|--------|-------|--------|\n")
			for _, m := range s.MissedOpportunities {
				sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %s |\n",
					m.Candidate.Address, m.Candidate.Symbol, m.Score, m.Reason))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Scored Candidates\n\n")
	if len(r.Rows) == 0 {
		sb.WriteString("No candidates survived the pre-filter.\n")
		return sb.String()
	}

	sb.WriteString("| Address | Symbol | Score | Confidence | Complete | Degraded |\n")
	sb.WriteString("|---------|--------|-------|------------|----------|----------|\n")
	for _, row := range r.Rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.1f | %.2f | %.0f%% | %t |\n",
			row.Address, row.Symbol, row.FinalScore, row.Confidence,
			row.DataCompleteness*100, row.DegradedMode))
	}
	sb.WriteString("\n")

	for _, row := range r.Rows {
		if len(row.Findings) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### Findings: %s\n\n", row.Address))
		for _, f := range row.Findings {
			sb.WriteString(fmt.Sprintf("- [%s/%s] %s: %s\n", f.Type, f.Risk, f.Rule, f.Explanation))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
