package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// WriteCheckResults prints the capacity gate outcome in a concise format suitable for CI/CD.
// JSON output is supported for pipelines; CSV falls back to text.
func WriteCheckResults(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return writeResult(cfg, func(w io.Writer) error {
		if cfg.Output == schema.JSONOut {
			return writeJSON(w, result)
		}
		return writeCheckText(w, result, duration)
	})
}

func writeCheckText(w io.Writer, result schema.CheckResult, duration time.Duration) error {
	lw := &lineWriter{w: w}
	lw.printf("Capacity Check Results:\n")

	probability := "n/a"
	if result.Probability != nil {
		probability = fmt.Sprintf("%.2f", *result.Probability)
	}
	labels := []string{"Team:", "Thresholds:", "Min probability:", "Probability:"}
	values := []any{
		teamLabel(result.Team),
		fmt.Sprintf("at_risk=%.1f, overload=%.1f, min_coverage=%d",
			result.Thresholds.AtRisk, result.Thresholds.Overload, result.Thresholds.MinCoverage),
		fmt.Sprintf("%.2f", result.MinProbability),
		probability,
	}

	// Find the longest label for consistent padding
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		lw.printf("  %-*s %v\n", maxLabelLen+1, label, values[i])
	}
	lw.printf("\nChecked %d members, %d tickets and %d coverage days in %v\n\n",
		result.MembersChecked, result.TicketsChecked, result.CoverageChecked, duration)

	if result.Passed {
		lw.printf("✅ All capacity checks passed\n")
		return lw.err
	}

	lw.printf("❌ Capacity check failed: %d violation(s) found\n", len(result.Violations))
	for _, v := range result.Violations {
		lw.printf("  - %s\n", v)
	}
	return lw.err
}
