// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteWorkload prints a team summary using the configured output format.
func (ow *OutWriter) WriteWorkload(summary schema.TeamSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteWorkloadResults(summary, cfg, duration)
}

// WriteVelocity prints velocity statistics using the configured output format.
func (ow *OutWriter) WriteVelocity(stats schema.VelocityStats, cfg *contract.Config, duration time.Duration) error {
	return WriteVelocityResults(stats, cfg, duration)
}

// WritePrediction prints a sprint forecast using the configured output format.
func (ow *OutWriter) WritePrediction(prediction schema.Prediction, cfg *contract.Config, duration time.Duration) error {
	return WritePredictionResults(prediction, cfg, duration)
}

// WriteScenario prints a what-if comparison using the configured output format.
func (ow *OutWriter) WriteScenario(result schema.ScenarioResult, cfg *contract.Config, duration time.Duration) error {
	return WriteScenarioResults(result, cfg, duration)
}

// WriteCoverage prints the coverage timeline using the configured output format.
func (ow *OutWriter) WriteCoverage(report schema.CoverageReport, cfg *contract.Config, duration time.Duration) error {
	return WriteCoverageResults(report, cfg, duration)
}

// WriteMetrics prints the active scoring setup using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return WriteMetricsDefinitions(cfg)
}

// WriteCheck prints the capacity gate outcome.
func (ow *OutWriter) WriteCheck(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResults(result, cfg, duration)
}
