package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// WriteMetricsDefinitions displays the active scoring setup.
// This is a static display that does not read any snapshot.
func WriteMetricsDefinitions(cfg *contract.Config) error {
	model := BuildMetricsRenderModel(cfg)
	return writeResult(cfg, func(w io.Writer) error {
		return writeMetrics(w, model, cfg)
	})
}

func writeMetrics(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, model)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"metric", "weight", "max_value", "max_score", "description"}, func(cw *csv.Writer) error {
			for _, m := range model.Metrics {
				row := []string{
					string(m.Key),
					strconv.FormatFloat(m.Weight, 'f', 2, 64),
					strconv.FormatFloat(m.MaxValue, 'f', -1, 64),
					strconv.FormatFloat(m.MaxScore, 'f', 2, 64),
					m.Description,
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	default:
		return writeMetricsText(w, model)
	}
}

// writeMetricsText displays the model in human-readable text format.
func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel) error {
	lw := &lineWriter{w: w}
	lw.printf("📊 %s\n", model.Title)
	lw.printf("%s\n\n", strings.Repeat("=", len(model.Title)+3))
	lw.printf("%s\n", model.Description)
	lw.printf("Formula: score = %s\n\n", model.Formula)
	if lw.err != nil {
		return lw.err
	}

	data := make([][]string, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		data = append(data, []string{
			string(m.Key),
			strconv.FormatFloat(m.Weight, 'f', 2, 64),
			strconv.FormatFloat(m.MaxValue, 'f', -1, 64),
			strconv.FormatFloat(m.MaxScore, 'f', 1, 64) + "%",
			m.Description,
		})
	}
	if err := renderTable(w, []string{"Metric", "Weight", "Max Value", "Max Score", "Description"}, data); err != nil {
		return err
	}

	t := model.Thresholds
	lw.printf("\n🚦 Thresholds\n")
	lw.printf("   healthy < %.1f <= at_capacity < %.1f <= overloaded\n", t.AtRisk, t.Overload)
	lw.printf("   balanced when std dev < %.1f, coverage warning below %d available\n", t.BalanceVariance, t.MinCoverage)
	for _, team := range slices.Sorted(maps.Keys(model.TeamThresholds)) {
		tt := model.TeamThresholds[team]
		lw.printf("   team %s: at_risk=%.1f, overload=%.1f, balance_variance=%.1f, min_coverage=%d\n",
			team, tt.AtRisk, tt.Overload, tt.BalanceVariance, tt.MinCoverage)
	}

	r := model.RiskRules
	lw.printf("\n🎫 Ticket Risk Rules (additive, clamped to 100)\n")
	lw.printf("   todo past half of sprint: +%.0f, past 75%%: +%.0f more\n", r.TodoPastHalf, r.TodoLate)
	lw.printf("   %d+ points with < 3 days left: +%.0f, with 3-4 days left: +%.0f\n", r.LargePoints, r.LargeVeryLate, r.LargeLate)
	lw.printf("   blocked: +%.0f, unassigned: +%.0f\n", r.Blocked, r.Unassigned)

	lw.printf("\n📅 Calendar: skip weekends = %t\n", model.Calendar.SkipWeekends)
	return lw.err
}

// BuildMetricsRenderModel constructs the complete render model from the active config.
func BuildMetricsRenderModel(cfg *contract.Config) *schema.MetricsRenderModel {
	weights := cfg.ComputedWeights
	if weights == nil {
		weights = schema.GetDefaultWeights()
	}

	metrics := make([]schema.MetricDefinition, 0, len(schema.AllMetricKeys))
	for _, key := range schema.AllMetricKeys {
		w, ok := weights[key]
		if !ok {
			continue
		}
		metrics = append(metrics, schema.MetricDefinition{
			Key:         key,
			Description: schema.MetricDescriptions[key],
			Weight:      w.Weight,
			MaxValue:    w.MaxValue,
			MaxScore:    100 * w.Weight,
		})
	}

	var teams map[string]schema.Thresholds
	if len(cfg.TeamThresholds) > 0 {
		teams = make(map[string]schema.Thresholds, len(cfg.TeamThresholds))
		for team := range cfg.TeamThresholds {
			teams[team] = cfg.ThresholdsFor(team)
		}
	}

	return &schema.MetricsRenderModel{
		Title:          "Team Workload Scoring",
		Description:    "Each metric is normalized by its max value and weighted; the sum is a percentage of capacity",
		Formula:        formatFormula(metrics),
		Metrics:        metrics,
		Thresholds:     cfg.Thresholds,
		TeamThresholds: teams,
		RiskRules:      cfg.RiskRules,
		Calendar:       cfg.Calendar,
	}
}

// formatFormula formats the weighted sum, skipping zero weights.
func formatFormula(metrics []schema.MetricDefinition) string {
	var parts []string
	for _, m := range metrics {
		if m.Weight <= 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%.2f*%s/%s", m.Weight, m.Key, strconv.FormatFloat(m.MaxValue, 'f', -1, 64)))
	}
	if len(parts) == 0 {
		return "0"
	}
	return "100 * (" + strings.Join(parts, " + ") + ")"
}
