package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// WriteWorkloadResults outputs a team summary, dispatching based on the output format configured.
func WriteWorkloadResults(summary schema.TeamSummary, cfg *contract.Config, duration time.Duration) error {
	return writeResult(cfg, func(w io.Writer) error {
		return writeWorkload(w, summary, cfg, duration)
	})
}

func writeWorkload(w io.Writer, summary schema.TeamSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, summary)
	case schema.CSVOut:
		return writeWorkloadCSV(w, summary, fmtFloat)
	default:
		return writeWorkloadTable(w, summary, cfg, fmtFloat, duration)
	}
}

// writeWorkloadTable prints ranked members with a load bar, then the team rollup.
func writeWorkloadTable(w io.Writer, summary schema.TeamSummary, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	nameWidth := GetMaxTableColumnWidth(cfg, workloadFixedWidth)

	data := make([][]string, 0, len(summary.Members))
	for i, m := range summary.Members {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			memberCell(m, nameWidth),
			fmtFloat(m.RawScore),
			contract.GetStatusLabel(m.Status, cfg.UseColors),
			workloadBar(m.RawScore, summary.Thresholds.Overload, m.Status),
		})
	}
	if err := renderTable(w, []string{"Rank", "Person", "Score", "Status", "Load"}, data); err != nil {
		return err
	}

	lw := &lineWriter{w: w}
	balance := "balanced"
	if !summary.Balanced {
		balance = "unbalanced"
	}
	lw.printf("Team %s: %d members, average workload %s%% (std dev %s, %s)\n",
		teamLabel(summary.Team), summary.TeamSize, fmtFloat(summary.AverageWorkload), fmtFloat(summary.Variance), balance)
	lw.printf("🟢 Healthy: %d  🟡 At capacity: %d  🔴 Overloaded: %d\n",
		summary.Healthy, summary.AtCapacity, summary.Overloaded)

	if len(summary.Suggestions) > 0 {
		lw.printf("\nRebalancing suggestions:\n")
		for _, s := range summary.Suggestions {
			lw.printf("  - %s (%s%%) -> %s (%s%%): %s\n", s.From, fmtFloat(s.FromLoad), s.To, fmtFloat(s.ToLoad), s.Recommendation)
		}
	}

	for _, m := range summary.Members {
		if len(m.Missing) == 0 {
			continue
		}
		lw.printf("⚠️  %s did not report: %s\n", m.PersonID, joinMetricKeys(m.Missing, ", "))
	}

	lw.printf("Analysis completed in %v. Runs backend: %s\n", duration, cfg.RunsBackend)
	return lw.err
}

// memberCell fits a member name into the person column, shortening it before truncating.
func memberCell(m schema.WorkloadScore, width int) string {
	name := m.DisplayName()
	if utf8.RuneCountInString(name) > width {
		name = schema.ShortName(name)
	}
	return contract.TruncateText(name, width)
}

// writeWorkloadCSV writes one row per member with the per-metric contributions.
func writeWorkloadCSV(w io.Writer, summary schema.TeamSummary, fmtFloat func(float64) string) error {
	header := []string{"rank", "person_id", "name", "score", "status"}
	for _, key := range schema.AllMetricKeys {
		header = append(header, string(key))
	}
	header = append(header, "missing_metrics")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, m := range summary.Members {
			row := []string{
				strconv.Itoa(i + 1),
				m.PersonID,
				m.Name,
				fmtFloat(m.RawScore),
				string(m.Status),
			}
			for _, key := range schema.AllMetricKeys {
				row = append(row, fmtFloat(m.Breakdown[key]))
			}
			row = append(row, joinMetricKeys(m.Missing, ";"))
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// workloadBar draws the load against the overload threshold with a traffic light.
func workloadBar(score, overload float64, status schema.WorkloadStatus) string {
	if overload <= 0 {
		overload = schema.DefaultOverloadThreshold
	}
	return horizontalBar(score, overload, barWidth) + " " + statusMarker(status)
}

func joinMetricKeys(keys []schema.MetricKey, sep string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, sep)
}

func teamLabel(team string) string {
	if team == "" {
		return "(unnamed)"
	}
	return team
}
