// Package core has the orchestration behind every command: it loads the snapshot,
// runs the analytics in core/algo, tracks the run and hands results to the writers.
package core

import (
	"context"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing a command.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error

// ExecuteWorkload scores the team and prints the summary.
func ExecuteWorkload(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	summary, duration, err := GetWorkloadResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteWorkload(summary, cfg, duration)
}

// ExecuteVelocity prints the velocity statistics.
func ExecuteVelocity(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	stats, duration, err := GetVelocityResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteVelocity(stats, cfg, duration)
}

// ExecutePredict prints the sprint forecast with its ranked ticket risks.
func ExecutePredict(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	prediction, duration, err := GetPredictionResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePrediction(prediction, cfg, duration)
}

// ExecuteRemovePerson prints the remove-person what-if comparison.
func ExecuteRemovePerson(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	result, duration, err := GetRemovePersonResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScenario(result, cfg, duration)
}

// ExecuteAddScope prints the add-scope what-if comparison.
func ExecuteAddScope(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	result, duration, err := GetAddScopeResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScenario(result, cfg, duration)
}

// ExecuteCoverage prints the coverage timeline.
func ExecuteCoverage(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	report, duration, err := GetCoverageResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCoverage(report, cfg, duration)
}

// ExecuteMetrics prints the active scoring model. It needs no snapshot.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	return outwriter.NewOutWriter().WriteMetrics(cfg)
}
