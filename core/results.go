package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/teamcap/core/algo"
	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/promfile"
	"github.com/huangsam/teamcap/schema"
)

// Command names used for headers, run tracking and metrics.
const (
	workloadCommand     = "workload"
	velocityCommand     = "velocity"
	predictCommand      = "predict"
	removePersonCommand = "whatif remove-person"
	addScopeCommand     = "whatif add-scope"
	coverageCommand     = "coverage"
	checkCommand        = "check"
)

// GetWorkloadResults scores every member of the snapshot and summarizes the team.
func GetWorkloadResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.TeamSummary, time.Duration, error) {
	start := time.Now()
	in, err := loadInput(cfg)
	if err != nil {
		return schema.TeamSummary{}, 0, err
	}
	logAnalysisHeader(ctx, cfg, in, workloadCommand, asOfDetail(in))

	tracker := beginRun(mgr, workloadCommand, in.team, cfg)
	scores := scoreMembers(cfg, in)
	summary := algo.SummarizeTeam(in.team, scores, in.thresholds)
	tracker.recordWorkload(summary.Members)
	tracker.end()

	duration := time.Since(start)
	publishMetrics(cfg, workloadCommand, duration, func(r *promfile.Recorder) {
		r.RecordWorkload(summary)
	})
	return summary, duration, nil
}

// GetVelocityResults summarizes the velocity history of the snapshot.
func GetVelocityResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.VelocityStats, time.Duration, error) {
	start := time.Now()
	in, err := loadInput(cfg)
	if err != nil {
		return schema.VelocityStats{}, 0, err
	}
	logAnalysisHeader(ctx, cfg, in, velocityCommand, fmt.Sprintf("History: %d sprints", len(in.doc.History())))

	tracker := beginRun(mgr, velocityCommand, in.team, cfg)
	stats, err := algo.ComputeVelocity(in.doc.History())
	if err != nil {
		return schema.VelocityStats{}, 0, fmt.Errorf("velocity for team %s: %w", in.team, err)
	}
	tracker.end()

	duration := time.Since(start)
	publishMetrics(cfg, velocityCommand, duration, func(r *promfile.Recorder) {
		r.RecordVelocity(in.team, stats)
	})
	return stats, duration, nil
}

// GetPredictionResults forecasts the current sprint of the snapshot.
func GetPredictionResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.Prediction, time.Duration, error) {
	start := time.Now()
	in, err := loadInput(cfg)
	if err != nil {
		return schema.Prediction{}, 0, err
	}
	logAnalysisHeader(ctx, cfg, in, predictCommand, asOfDetail(in))

	tracker := beginRun(mgr, predictCommand, in.team, cfg)
	sprint, stats, err := sprintAndVelocity(in)
	if err != nil {
		return schema.Prediction{}, 0, err
	}
	prediction, err := algo.Predict(sprint, stats, in.today, predictOptions(cfg, in))
	if err != nil {
		return schema.Prediction{}, 0, fmt.Errorf("prediction for %s: %w", sprint.Name, err)
	}
	tracker.recordPrediction(schema.BaselineScenario, prediction)
	tracker.end()

	duration := time.Since(start)
	publishMetrics(cfg, predictCommand, duration, func(r *promfile.Recorder) {
		r.RecordPrediction(in.team, schema.BaselineScenario, prediction)
	})
	return prediction, duration, nil
}

// GetRemovePersonResults simulates losing cfg.Person for the rest of the sprint.
func GetRemovePersonResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.ScenarioResult, time.Duration, error) {
	return getScenarioResults(ctx, cfg, mgr, removePersonCommand,
		func(in *analysisInput, sprint schema.Sprint, stats schema.VelocityStats, opts algo.ScenarioOptions) (schema.ScenarioResult, error) {
			return algo.RemovePerson(sprint, cfg.Person, stats, in.today, opts)
		})
}

// GetAddScopeResults simulates adding cfg.ScopePoints of unplanned work to the sprint.
func GetAddScopeResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.ScenarioResult, time.Duration, error) {
	return getScenarioResults(ctx, cfg, mgr, addScopeCommand,
		func(in *analysisInput, sprint schema.Sprint, stats schema.VelocityStats, opts algo.ScenarioOptions) (schema.ScenarioResult, error) {
			return algo.AddScope(sprint, cfg.ScopePoints, stats, in.today, opts)
		})
}

// scenarioFunc runs one what-if simulation against the loaded snapshot.
type scenarioFunc func(in *analysisInput, sprint schema.Sprint, stats schema.VelocityStats, opts algo.ScenarioOptions) (schema.ScenarioResult, error)

// getScenarioResults shares the loading, tracking and metrics of the what-if commands.
func getScenarioResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager, command string, simulate scenarioFunc) (schema.ScenarioResult, time.Duration, error) {
	start := time.Now()
	in, err := loadInput(cfg)
	if err != nil {
		return schema.ScenarioResult{}, 0, err
	}
	logAnalysisHeader(ctx, cfg, in, command, asOfDetail(in))

	tracker := beginRun(mgr, command, in.team, cfg)
	sprint, stats, err := sprintAndVelocity(in)
	if err != nil {
		return schema.ScenarioResult{}, 0, err
	}
	opts := algo.ScenarioOptions{
		Predict: predictOptions(cfg, in),
		Team:    scoreMembers(cfg, in),
	}
	result, err := simulate(in, sprint, stats, opts)
	if err != nil {
		return schema.ScenarioResult{}, 0, err
	}
	tracker.recordPrediction(schema.BaselineScenario, result.Baseline)
	tracker.recordPrediction(result.Kind, result.Modified)
	tracker.end()

	duration := time.Since(start)
	publishMetrics(cfg, command, duration, func(r *promfile.Recorder) {
		r.RecordScenario(in.team, result)
	})
	return result, duration, nil
}

// GetCoverageResults builds the day by day coverage timeline of the snapshot.
func GetCoverageResults(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (schema.CoverageReport, time.Duration, error) {
	start := time.Now()
	in, err := loadInput(cfg)
	if err != nil {
		return schema.CoverageReport{}, 0, err
	}
	rng, _, err := coverageWindow(cfg, in)
	if err != nil {
		return schema.CoverageReport{}, 0, err
	}
	logAnalysisHeader(ctx, cfg, in, coverageCommand,
		fmt.Sprintf("Range: %s → %s", rng.Start.Format(schema.DateFormat), rng.End.Format(schema.DateFormat)))

	tracker := beginRun(mgr, coverageCommand, in.team, cfg)
	report, err := analyzeCoverage(cfg, in)
	if err != nil {
		return schema.CoverageReport{}, 0, err
	}
	tracker.end()

	duration := time.Since(start)
	publishMetrics(cfg, coverageCommand, duration, func(r *promfile.Recorder) {
		r.RecordCoverage(in.team, report)
	})
	return report, duration, nil
}
