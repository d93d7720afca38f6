package core

import (
	"fmt"
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/promfile"
	"github.com/huangsam/teamcap/schema"
)

// runTracker records one command run in the run store. A tracker without a store is
// inert, so callers never need to check whether tracking is enabled.
type runTracker struct {
	store   contract.RunStore
	runID   int64
	records int
}

// beginRun opens a run record for the command.
func beginRun(mgr contract.RunManager, command, team string, cfg *contract.Config) *runTracker {
	if mgr == nil {
		return &runTracker{}
	}
	store := mgr.GetRunStore()
	if store == nil {
		return &runTracker{}
	}

	configParams := map[string]any{
		"snapshot_path":   cfg.SnapshotPath,
		"output":          string(cfg.Output),
		"thresholds":      cfg.ThresholdsFor(team),
		"min_probability": cfg.MinProbability,
	}
	if !cfg.AsOf.IsZero() {
		configParams["today"] = cfg.AsOf.Format(schema.DateFormat)
	}
	if cfg.Person != "" {
		configParams["person"] = cfg.Person
	}
	if cfg.ScopePoints > 0 {
		configParams["points"] = cfg.ScopePoints
	}

	runID, err := store.BeginRun(command, team, time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return &runTracker{}
	}
	return &runTracker{store: store, runID: runID}
}

func (t *runTracker) active() bool {
	return t.store != nil && t.runID > 0
}

// recordWorkload stores every member score of the run.
func (t *runTracker) recordWorkload(scores []schema.WorkloadScore) {
	if !t.active() {
		return
	}
	now := time.Now()
	for _, s := range scores {
		if err := t.store.RecordWorkloadScore(t.runID, now, s); err != nil {
			logTrackingError("RecordWorkloadScore", s.PersonID, err)
			continue
		}
		t.records++
	}
}

// recordPrediction stores a forecast under its scenario.
func (t *runTracker) recordPrediction(scenario schema.ScenarioKind, p schema.Prediction) {
	if !t.active() {
		return
	}
	if err := t.store.RecordPrediction(t.runID, time.Now(), scenario, p); err != nil {
		logTrackingError("RecordPrediction", p.Sprint, err)
		return
	}
	t.records++
}

// end closes the run record.
func (t *runTracker) end() {
	if !t.active() {
		return
	}
	if err := t.store.EndRun(t.runID, time.Now(), t.records); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
		return
	}
	contract.LogInfo("Run recorded", map[string]any{"run_id": t.runID, "records": t.records})
}

// logTrackingError logs database tracking errors to stderr without disrupting analysis.
func logTrackingError(operation, subject string, err error) {
	contract.LogWarn(fmt.Sprintf("Run tracking failed for %s on %s", operation, subject), err)
}

// publishMetrics writes a Prometheus textfile when --metrics-file is set. Failures are
// warnings, like tracking failures.
func publishMetrics(cfg *contract.Config, command string, duration time.Duration, record func(*promfile.Recorder)) {
	if cfg.MetricsFile == "" {
		return
	}
	rec := promfile.New()
	record(rec)
	rec.RecordDuration(command, duration)
	if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
		contract.LogWarn("Metrics textfile export failed", err)
		return
	}
	contract.LogInfo("Metrics textfile written", map[string]any{"path": cfg.MetricsFile, "command": command})
}
