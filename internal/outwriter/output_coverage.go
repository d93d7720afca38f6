package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// WriteCoverageResults outputs the coverage timeline in the configured format.
func WriteCoverageResults(report schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	return writeResult(cfg, func(w io.Writer) error {
		return writeCoverage(w, report, cfg, duration)
	})
}

func writeCoverage(w io.Writer, report schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, report)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"date", "weekday", "available", "people_out", "severity"}, func(cw *csv.Writer) error {
			for _, d := range report.Days {
				row := []string{
					formatDate(d.Date),
					d.Date.Weekday().String(),
					strconv.Itoa(d.Available),
					strings.Join(d.PeopleOut, ";"),
					string(d.Severity),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	default:
		return writeCoverageTable(w, report, cfg, duration)
	}
}

// writeCoverageTable prints every workday with a headcount bar, then a gap count.
func writeCoverageTable(w io.Writer, report schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	lw := &lineWriter{w: w}
	lw.printf("Coverage for %d members (minimum %d available)\n", report.TeamSize, report.MinCoverage)
	if lw.err != nil {
		return lw.err
	}

	outWidth := GetMaxTableColumnWidth(cfg, coverageFixedWidth)
	data := make([][]string, 0, len(report.Days))
	for _, d := range report.Days {
		data = append(data, []string{
			formatDate(d.Date),
			d.Date.Weekday().String()[:3],
			fmt.Sprintf("%d %s", d.Available, horizontalBar(float64(d.Available), float64(report.TeamSize), 10)),
			contract.TruncateText(strings.Join(d.PeopleOut, ", "), outWidth),
			contract.GetSeverityLabel(d.Severity, cfg.UseColors),
		})
	}
	if err := renderTable(w, []string{"Date", "Day", "Available", "Out", "Severity"}, data); err != nil {
		return err
	}

	gaps := report.Gaps()
	var critical int
	for _, g := range gaps {
		if g.Severity == schema.CriticalSeverity {
			critical++
		}
	}
	if len(gaps) == 0 {
		lw.printf("✅ No coverage gaps across %d workdays\n", len(report.Days))
	} else {
		lw.printf("⚠️  %d gap day(s): %d critical, %d warning\n", len(gaps), critical, len(gaps)-critical)
	}
	lw.printf("Analysis completed in %v. Runs backend: %s\n", duration, cfg.RunsBackend)
	return lw.err
}
