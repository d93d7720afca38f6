package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/teamcap/core/algo"
	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/snapshot"
	"github.com/huangsam/teamcap/schema"
)

// analysisInput is a loaded snapshot with the team, reference date and thresholds
// resolved against the configuration.
type analysisInput struct {
	doc        *snapshot.Document
	team       string
	today      time.Time
	thresholds schema.Thresholds
}

// loadInput reads the snapshot named by the configuration. The --team flag wins over
// the document's own team name, and --today wins over the document's reference date.
func loadInput(cfg *contract.Config) (*analysisInput, error) {
	if cfg.SnapshotPath == "" {
		return nil, &schema.ValidationError{Field: "snapshot", Reason: "snapshot path is required"}
	}
	doc, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", cfg.SnapshotPath, err)
	}

	team := cfg.Team
	if team == "" {
		team = doc.TeamName()
	}
	today := doc.Today(time.Now())
	if !cfg.AsOf.IsZero() {
		today = schema.TruncateDay(cfg.AsOf)
	}
	return &analysisInput{
		doc:        doc,
		team:       team,
		today:      today,
		thresholds: cfg.ThresholdsFor(team),
	}, nil
}

// scoreMembers scores every member and warns about metrics the snapshot left out.
func scoreMembers(cfg *contract.Config, in *analysisInput) []schema.WorkloadScore {
	scores := algo.ScoreTeam(in.doc.Snapshots(), cfg.ComputedWeights, in.thresholds)
	for _, s := range scores {
		if len(s.Missing) == 0 {
			continue
		}
		missing := make([]string, 0, len(s.Missing))
		for _, k := range s.Missing {
			missing = append(missing, string(k))
		}
		contract.Logger().Warn().
			Str("team", in.team).
			Str("person", s.PersonID).
			Strs("metrics", missing).
			Msg("Metrics missing from snapshot, scored as 0")
	}
	return scores
}

// predictOptions builds the forecast options from the configuration and the document.
func predictOptions(cfg *contract.Config, in *analysisInput) algo.PredictOptions {
	return algo.PredictOptions{
		SprintLengthDays: in.doc.SprintLengthDays(),
		Rules:            cfg.RiskRules,
	}
}

// sprintAndVelocity loads the current sprint and summarizes the velocity history.
func sprintAndVelocity(in *analysisInput) (schema.Sprint, schema.VelocityStats, error) {
	sprint, err := in.doc.Sprint()
	if err != nil {
		return schema.Sprint{}, schema.VelocityStats{}, err
	}
	stats, err := algo.ComputeVelocity(in.doc.History())
	if err != nil {
		return schema.Sprint{}, schema.VelocityStats{}, err
	}
	return sprint, stats, nil
}

// coverageWindow resolves the coverage range and minimum headcount. Flags override the
// document, and the thresholds supply the minimum when neither sets one.
func coverageWindow(cfg *contract.Config, in *analysisInput) (schema.DateRange, int, error) {
	rng, minCoverage, err := in.doc.CoverageRange()
	if err != nil && (cfg.CoverageStart.IsZero() || cfg.CoverageEnd.IsZero()) {
		return schema.DateRange{}, 0, err
	}
	if !cfg.CoverageStart.IsZero() {
		rng.Start = cfg.CoverageStart
	}
	if !cfg.CoverageEnd.IsZero() {
		rng.End = cfg.CoverageEnd
	}
	switch {
	case cfg.MinCoverage > 0:
		minCoverage = cfg.MinCoverage
	case minCoverage <= 0:
		minCoverage = in.thresholds.MinCoverage
	}
	return rng, minCoverage, nil
}

// analyzeCoverage builds the coverage timeline of the snapshot.
func analyzeCoverage(cfg *contract.Config, in *analysisInput) (schema.CoverageReport, error) {
	events, err := in.doc.PTOEvents()
	if err != nil {
		return schema.CoverageReport{}, err
	}
	rng, minCoverage, err := coverageWindow(cfg, in)
	if err != nil {
		return schema.CoverageReport{}, err
	}
	return algo.AnalyzeCoverage(events, in.doc.TeamSize(), rng, minCoverage, cfg.Calendar)
}

// logAnalysisHeader prints a concise, 2-line header for text output.
func logAnalysisHeader(ctx context.Context, cfg *contract.Config, in *analysisInput, command, detail string) {
	if cfg.Output != schema.TextOut || shouldSuppressHeader(ctx) {
		return
	}
	fmt.Printf("👥 Team: %s (Command: %s, Snapshot: %s)\n", in.team, command, filepath.Base(cfg.SnapshotPath))
	fmt.Printf("📅 %s\n", detail)
}

// asOfDetail is the header line of commands anchored on the reference date.
func asOfDetail(in *analysisInput) string {
	return "As of: " + in.today.Format(schema.DateFormat)
}

// overloadedMembers returns the overloaded scores, highest first.
func overloadedMembers(scores []schema.WorkloadScore) []schema.WorkloadScore {
	var out []schema.WorkloadScore
	for _, s := range algo.MostOverloaded(scores, len(scores)) {
		if s.Status == schema.OverloadedStatus {
			out = append(out, s)
		}
	}
	return out
}
