package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/teamcap/core/algo"
	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/outwriter"
	"github.com/huangsam/teamcap/internal/promfile"
	"github.com/huangsam/teamcap/schema"
)

// osExit is swapped out by tests.
var osExit = os.Exit

// ExecuteCheck runs the check command for CI/CD gating. It exits with status 1 when any
// member is overloaded, the sprint is unlikely to finish or a coverage day is critical.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	result, duration, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := outwriter.NewOutWriter().WriteCheck(result, cfg, duration); err != nil {
		return err
	}
	if !result.Passed {
		osExit(1)
	}
	return nil
}

// GetCheckResults evaluates the capacity gate. Checks whose inputs are absent from the
// snapshot (no sprint, no history, no coverage window) are skipped with a warning.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.CheckResult, time.Duration, error) {
	start := time.Now()
	in, err := loadInput(cfg)
	if err != nil {
		return schema.CheckResult{}, 0, err
	}
	logAnalysisHeader(ctx, cfg, in, checkCommand, asOfDetail(in))

	tracker := beginRun(mgr, checkCommand, in.team, cfg)
	result := schema.CheckResult{
		Team:           in.team,
		Thresholds:     in.thresholds,
		MinProbability: cfg.MinProbability,
	}

	scores := scoreMembers(cfg, in)
	summary := algo.SummarizeTeam(in.team, scores, in.thresholds)
	tracker.recordWorkload(summary.Members)
	result.MembersChecked = len(scores)
	result.Overloaded = overloadedMembers(scores)
	for _, s := range result.Overloaded {
		result.Violations = append(result.Violations,
			fmt.Sprintf("%s is overloaded (%.1f >= %.1f)", s.PersonID, s.RawScore, in.thresholds.Overload))
	}

	prediction, tickets, err := checkPrediction(cfg, in)
	switch {
	case errors.Is(err, schema.ErrInsufficientData):
		contract.LogWarn("Skipping sprint probability check", err)
	case err != nil:
		return schema.CheckResult{}, 0, err
	default:
		probability := prediction.Probability
		result.Probability = &probability
		result.TicketsChecked = tickets
		tracker.recordPrediction(schema.BaselineScenario, prediction)
		if probability < cfg.MinProbability {
			result.Violations = append(result.Violations,
				fmt.Sprintf("%s completion probability %.2f is below %.2f", sprintName(prediction), probability, cfg.MinProbability))
		}
	}

	report, err := analyzeCoverage(cfg, in)
	switch {
	case errors.Is(err, schema.ErrInsufficientData):
		contract.LogWarn("Skipping coverage check", err)
	case err != nil:
		return schema.CheckResult{}, 0, err
	default:
		result.CoverageChecked = len(report.Days)
		for _, d := range report.Days {
			if d.Severity != schema.CriticalSeverity {
				continue
			}
			result.CriticalDays = append(result.CriticalDays, d)
			result.Violations = append(result.Violations,
				fmt.Sprintf("%s has %d available (critical)", d.Date.Format(schema.DateFormat), d.Available))
		}
	}

	result.Passed = len(result.Violations) == 0
	tracker.end()

	duration := time.Since(start)
	publishMetrics(cfg, checkCommand, duration, func(r *promfile.Recorder) {
		r.RecordWorkload(summary)
		if result.Probability != nil {
			r.RecordPrediction(in.team, schema.BaselineScenario, prediction)
		}
		if result.CoverageChecked > 0 {
			r.RecordCoverage(in.team, report)
		}
		r.RecordCheck(in.team, result.Passed)
	})
	return result, duration, nil
}

// checkPrediction forecasts the sprint and returns how many tickets it holds.
func checkPrediction(cfg *contract.Config, in *analysisInput) (schema.Prediction, int, error) {
	sprint, stats, err := sprintAndVelocity(in)
	if err != nil {
		return schema.Prediction{}, 0, err
	}
	prediction, err := algo.Predict(sprint, stats, in.today, predictOptions(cfg, in))
	if err != nil {
		return schema.Prediction{}, 0, err
	}
	return prediction, len(sprint.Tickets), nil
}

func sprintName(p schema.Prediction) string {
	if p.Sprint == "" {
		return "sprint"
	}
	return p.Sprint
}
