package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// WriteScenarioResults outputs a what-if comparison in the configured format.
func WriteScenarioResults(result schema.ScenarioResult, cfg *contract.Config, duration time.Duration) error {
	return writeResult(cfg, func(w io.Writer) error {
		return writeScenario(w, result, cfg, duration)
	})
}

func writeScenario(w io.Writer, result schema.ScenarioResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"kind", "subject", "metric", "baseline", "modified", "delta"}, func(cw *csv.Writer) error {
			for _, row := range scenarioRows(result, fmtFloat, false) {
				if err := cw.Write(append([]string{string(result.Kind), result.Subject}, row...)); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	default:
		lw := &lineWriter{w: w}
		lw.printf("What if: %s\n", scenarioTitle(result))
		if lw.err != nil {
			return lw.err
		}
		if err := renderTable(w, []string{"Metric", "Baseline", "Modified", "Delta"}, scenarioRows(result, fmtFloat, cfg.UseColors)); err != nil {
			return err
		}
		if len(result.Notes) > 0 {
			lw.printf("Notes:\n")
			for _, n := range result.Notes {
				lw.printf("  - %s\n", n)
			}
		}
		lw.printf("Analysis completed in %v. Runs backend: %s\n", duration, cfg.RunsBackend)
		return lw.err
	}
}

// scenarioRows compares the headline numbers of the two forecasts.
func scenarioRows(result schema.ScenarioResult, fmtFloat func(float64) string, useColors bool) [][]string {
	b, m := result.Baseline, result.Modified
	return [][]string{
		{"probability", formatPercent(fmtFloat, b.Probability), formatPercent(fmtFloat, m.Probability), signedPercent(fmtFloat, result.DeltaProbability)},
		{"total_points", strconv.Itoa(b.TotalPoints), strconv.Itoa(m.TotalPoints), signedInt(m.TotalPoints - b.TotalPoints)},
		{"remaining_points", strconv.Itoa(b.RemainingPoints), strconv.Itoa(m.RemainingPoints), signedInt(m.RemainingPoints - b.RemainingPoints)},
		{"predicted_done", fmtFloat(b.PredictedDone), fmtFloat(m.PredictedDone), signedFloat(fmtFloat, m.PredictedDone-b.PredictedDone)},
		{"at_risk_tickets", strconv.Itoa(len(b.AtRiskTickets)), strconv.Itoa(len(m.AtRiskTickets)), signedInt(len(m.AtRiskTickets) - len(b.AtRiskTickets))},
		{"risk_level", contract.GetRiskLevelLabel(b.RiskLevel, useColors), contract.GetRiskLevelLabel(m.RiskLevel, useColors), ""},
	}
}

func scenarioTitle(result schema.ScenarioResult) string {
	switch result.Kind {
	case schema.RemovePersonScenario:
		return "remove " + result.Subject
	case schema.AddScopeScenario:
		return "add " + result.Subject
	default:
		return string(result.Kind)
	}
}

func signedInt(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func signedFloat(fmtFloat func(float64) string, v float64) string {
	if v > 0 {
		return "+" + fmtFloat(v)
	}
	return fmtFloat(v)
}

func signedPercent(fmtFloat func(float64) string, p float64) string {
	return signedFloat(fmtFloat, p*100) + "%"
}
