package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// WriteVelocityResults outputs velocity statistics in the configured format.
func WriteVelocityResults(stats schema.VelocityStats, cfg *contract.Config, duration time.Duration) error {
	return writeResult(cfg, func(w io.Writer) error {
		return writeVelocity(w, stats, cfg, duration)
	})
}

func writeVelocity(w io.Writer, stats schema.VelocityStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, stats)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
			return cw.WriteAll(velocityRows(stats, fmtFloat))
		})
	default:
		if err := renderTable(w, []string{"Metric", "Value"}, velocityRows(stats, fmtFloat)); err != nil {
			return err
		}
		lw := &lineWriter{w: w}
		if stats.LowConfidence {
			lw.printf("⚠️  Fewer than 3 sprints of history, trend reported as stable\n")
		}
		lw.printf("Analysis completed in %v. Runs backend: %s\n", duration, cfg.RunsBackend)
		return lw.err
	}
}

// velocityRows are shared by the table and CSV renderings.
func velocityRows(stats schema.VelocityStats, fmtFloat func(float64) string) [][]string {
	return [][]string{
		{"sprints_analyzed", strconv.Itoa(stats.SprintsAnalyzed)},
		{"average", fmtFloat(stats.Average)},
		{"median", fmtFloat(stats.Median)},
		{"std_dev", fmtFloat(stats.StdDev)},
		{"min", fmtFloat(stats.Min)},
		{"max", fmtFloat(stats.Max)},
		{"confidence_low", fmtFloat(stats.ConfidenceLow)},
		{"confidence_high", fmtFloat(stats.ConfidenceHigh)},
		{"trend", string(stats.Trend)},
		{"low_confidence", strconv.FormatBool(stats.LowConfidence)},
	}
}
