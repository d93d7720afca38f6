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

// WritePredictionResults outputs a sprint forecast in the configured format.
func WritePredictionResults(prediction schema.Prediction, cfg *contract.Config, duration time.Duration) error {
	return writeResult(cfg, func(w io.Writer) error {
		return writePrediction(w, prediction, cfg, duration)
	})
}

func writePrediction(w io.Writer, prediction schema.Prediction, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, prediction)
	case schema.CSVOut:
		return writePredictionCSV(w, prediction, fmtFloat, intFmt)
	default:
		return writePredictionText(w, prediction, cfg, fmtFloat, duration)
	}
}

// writePredictionText prints the forecast summary, the ranked ticket risks and the advice.
func writePredictionText(w io.Writer, p schema.Prediction, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	lw := &lineWriter{w: w}
	lw.printf("Sprint forecast: %s\n", sprintLabel(p.Sprint))
	lw.printf("  Progress:       %d/%d points (%s%%) %s\n", p.DonePoints, p.TotalPoints, fmtFloat(p.CompletionPct),
		horizontalBar(p.CompletionPct, 100, barWidth))
	lw.printf("  Days remaining: %d\n", p.DaysRemaining)
	lw.printf("  Daily velocity: %s points/day\n", fmtFloat(p.DailyVelocity))
	lw.printf("  Predicted done: %s points\n", fmtFloat(p.PredictedDone))
	lw.printf("  Probability:    %s\n", formatPercent(fmtFloat, p.Probability))
	lw.printf("  Risk level:     %s (on track: %s)\n\n", contract.GetRiskLevelLabel(p.RiskLevel, cfg.UseColors), yesNo(p.OnTrack))
	if lw.err != nil {
		return lw.err
	}

	if len(p.AtRiskTickets) > 0 {
		if err := writeRiskTable(w, p.AtRiskTickets, cfg, fmtFloat); err != nil {
			return err
		}
	}

	if len(p.Recommendations) > 0 {
		lw.printf("Recommendations:\n")
		for _, r := range p.Recommendations {
			lw.printf("  - %s\n", r)
		}
	}
	lw.printf("Analysis completed in %v. Runs backend: %s\n", duration, cfg.RunsBackend)
	return lw.err
}

// writeRiskTable renders incomplete tickets in descending risk order.
func writeRiskTable(w io.Writer, risks []schema.RiskScore, cfg *contract.Config, fmtFloat func(float64) string) error {
	factorWidth := GetMaxTableColumnWidth(cfg, ticketFixedWidth)
	data := make([][]string, 0, len(risks))
	for _, r := range risks {
		data = append(data, []string{
			r.TicketID,
			strconv.Itoa(r.Points),
			string(r.Status),
			assigneeLabel(r.Assignee),
			contract.ColorByScore(r.Score, fmtFloat(r.Score), cfg.UseColors),
			contract.GetRiskLevelLabel(r.Level, cfg.UseColors),
			contract.TruncateText(strings.Join(r.Factors, "; "), factorWidth),
		})
	}
	return renderTable(w, []string{"Ticket", "Points", "Status", "Assignee", "Score", "Level", "Factors"}, data)
}

// writePredictionCSV writes one row per ticket, repeating the sprint columns. A sprint
// without incomplete tickets still gets one row.
func writePredictionCSV(w io.Writer, p schema.Prediction, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"sprint", "total_points", "done_points", "days_remaining", "daily_velocity",
		"predicted_done", "probability", "risk_level", "on_track",
		"ticket_id", "ticket_points", "ticket_status", "assignee", "ticket_score", "ticket_level", "factors", "recommendation",
	}
	sprintCols := []string{
		p.Sprint,
		fmt.Sprintf(intFmt, p.TotalPoints),
		fmt.Sprintf(intFmt, p.DonePoints),
		fmt.Sprintf(intFmt, p.DaysRemaining),
		fmtFloat(p.DailyVelocity),
		fmtFloat(p.PredictedDone),
		strconv.FormatFloat(p.Probability, 'f', 4, 64),
		string(p.RiskLevel),
		strconv.FormatBool(p.OnTrack),
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if len(p.AtRiskTickets) == 0 {
			return cw.Write(append(sprintCols, "", "", "", "", "", "", "", ""))
		}
		for _, r := range p.AtRiskTickets {
			row := append(append([]string{}, sprintCols...),
				r.TicketID,
				fmt.Sprintf(intFmt, r.Points),
				string(r.Status),
				r.Assignee,
				fmtFloat(r.Score),
				string(r.Level),
				strings.Join(r.Factors, ";"),
				r.Recommendation,
			)
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func sprintLabel(name string) string {
	if name == "" {
		return "current sprint"
	}
	return name
}

func assigneeLabel(assignee string) string {
	if assignee == "" {
		return "-"
	}
	return assignee
}
