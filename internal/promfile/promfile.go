// Package promfile records analysis results as Prometheus gauges and writes them
// in the node_exporter textfile format.
package promfile

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/huangsam/teamcap/schema"
)

// Recorder holds one gauge family per published signal on a private registry,
// so a run only ever writes its own series.
type Recorder struct {
	registry *prometheus.Registry

	workloadScore   *prometheus.GaugeVec
	statusCount     *prometheus.GaugeVec
	averageWorkload *prometheus.GaugeVec
	velocity        *prometheus.GaugeVec
	probability     *prometheus.GaugeVec
	predictedDone   *prometheus.GaugeVec
	atRiskTickets   *prometheus.GaugeVec
	coverageGaps    *prometheus.GaugeVec
	checkPassed     *prometheus.GaugeVec
	duration        *prometheus.GaugeVec
}

// New creates a recorder backed by a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		workloadScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_workload_score",
				Help: "Workload score of a person as a percentage of capacity",
			},
			[]string{"team", "person"},
		),
		statusCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_workload_status_members",
				Help: "Number of team members per workload status",
			},
			[]string{"team", "status"},
		),
		averageWorkload: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_team_average_workload",
				Help: "Average workload score of the team",
			},
			[]string{"team"},
		),
		velocity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_velocity_points",
				Help: "Historical velocity statistics in points per sprint",
			},
			[]string{"team", "stat"},
		),
		probability: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_sprint_completion_probability",
				Help: "Probability that the sprint completes all committed points",
			},
			[]string{"team", "sprint", "scenario"},
		),
		predictedDone: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_sprint_predicted_done_points",
				Help: "Points the sprint is forecast to complete",
			},
			[]string{"team", "sprint", "scenario"},
		),
		atRiskTickets: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_sprint_tickets",
				Help: "Incomplete tickets of the sprint per risk level",
			},
			[]string{"team", "sprint", "level"},
		),
		coverageGaps: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_coverage_gap_days",
				Help: "Workdays below the minimum coverage per severity",
			},
			[]string{"team", "severity"},
		),
		checkPassed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_check_passed",
				Help: "1 when the capacity check passed, 0 otherwise",
			},
			[]string{"team"},
		),
		duration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "teamcap_command_duration_seconds",
				Help: "Wall time of the last command run",
			},
			[]string{"command"},
		),
	}
}

// RecordWorkload records per-person scores and the team rollup.
func (r *Recorder) RecordWorkload(summary schema.TeamSummary) {
	for _, m := range summary.Members {
		r.workloadScore.WithLabelValues(summary.Team, m.PersonID).Set(m.RawScore)
	}
	r.statusCount.WithLabelValues(summary.Team, string(schema.HealthyStatus)).Set(float64(summary.Healthy))
	r.statusCount.WithLabelValues(summary.Team, string(schema.AtCapacityStatus)).Set(float64(summary.AtCapacity))
	r.statusCount.WithLabelValues(summary.Team, string(schema.OverloadedStatus)).Set(float64(summary.Overloaded))
	r.averageWorkload.WithLabelValues(summary.Team).Set(summary.AverageWorkload)
}

// RecordVelocity records the headline velocity statistics.
func (r *Recorder) RecordVelocity(team string, stats schema.VelocityStats) {
	r.velocity.WithLabelValues(team, "average").Set(stats.Average)
	r.velocity.WithLabelValues(team, "median").Set(stats.Median)
	r.velocity.WithLabelValues(team, "std_dev").Set(stats.StdDev)
	r.velocity.WithLabelValues(team, "confidence_low").Set(stats.ConfidenceLow)
	r.velocity.WithLabelValues(team, "confidence_high").Set(stats.ConfidenceHigh)
}

// RecordPrediction records a forecast under a scenario label. Ticket counts are only
// published for the baseline.
func (r *Recorder) RecordPrediction(team string, scenario schema.ScenarioKind, p schema.Prediction) {
	r.probability.WithLabelValues(team, p.Sprint, string(scenario)).Set(p.Probability)
	r.predictedDone.WithLabelValues(team, p.Sprint, string(scenario)).Set(p.PredictedDone)
	if scenario != schema.BaselineScenario {
		return
	}

	counts := map[schema.RiskLevel]int{
		schema.LowRisk:      0,
		schema.MediumRisk:   0,
		schema.HighRisk:     0,
		schema.CriticalRisk: 0,
	}
	for _, t := range p.AtRiskTickets {
		counts[t.Level]++
	}
	for level, n := range counts {
		r.atRiskTickets.WithLabelValues(team, p.Sprint, string(level)).Set(float64(n))
	}
}

// RecordScenario records both sides of a what-if comparison.
func (r *Recorder) RecordScenario(team string, result schema.ScenarioResult) {
	r.RecordPrediction(team, schema.BaselineScenario, result.Baseline)
	r.RecordPrediction(team, result.Kind, result.Modified)
}

// RecordCoverage records how many workdays fall short per severity.
func (r *Recorder) RecordCoverage(team string, report schema.CoverageReport) {
	var warning, critical int
	for _, d := range report.Gaps() {
		switch d.Severity {
		case schema.CriticalSeverity:
			critical++
		case schema.WarningSeverity:
			warning++
		}
	}
	r.coverageGaps.WithLabelValues(team, string(schema.WarningSeverity)).Set(float64(warning))
	r.coverageGaps.WithLabelValues(team, string(schema.CriticalSeverity)).Set(float64(critical))
}

// RecordCheck records the gate outcome.
func (r *Recorder) RecordCheck(team string, passed bool) {
	v := 0.0
	if passed {
		v = 1
	}
	r.checkPassed.WithLabelValues(team).Set(v)
}

// RecordDuration records the wall time of a command.
func (r *Recorder) RecordDuration(command string, d time.Duration) {
	r.duration.WithLabelValues(command).Set(d.Seconds())
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every recorded series to path. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
