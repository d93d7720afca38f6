package runstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/teamcap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) *RunStoreImpl {
	t.Helper()
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*RunStoreImpl)
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.BeginRun("workload", "platform", time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.EndRun(1, time.Now(), 10))
	assert.NoError(t, store.RecordWorkloadScore(1, time.Now(), schema.WorkloadScore{PersonID: "alice"}))
	assert.NoError(t, store.RecordPrediction(1, time.Now(), schema.BaselineScenario, schema.Prediction{}))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Nil(t, runs)

	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestRunStore_SQLiteRoundTrip(t *testing.T) {
	store := newMemoryStore(t)

	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun("predict", "platform", start, map[string]any{"snapshot": "team.yaml", "precision": 1})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordWorkloadScore(runID, start, schema.WorkloadScore{
		PersonID: "alice", RawScore: 112.5, Status: schema.OverloadedStatus,
	}))
	require.NoError(t, store.RecordWorkloadScore(runID, start, schema.WorkloadScore{
		PersonID: "bob", RawScore: 40, Status: schema.HealthyStatus,
		Missing: []schema.MetricKey{schema.MetricMeetingHours, schema.MetricBlocked},
	}))
	require.NoError(t, store.RecordPrediction(runID, start, schema.BaselineScenario, schema.Prediction{
		Sprint: "Sprint 42", TotalPoints: 40, DonePoints: 18, PredictedDone: 35.3, Probability: 0.21, RiskLevel: schema.HighRisk,
	}))
	require.NoError(t, store.RecordPrediction(runID, start, schema.AddScopeScenario, schema.Prediction{
		Sprint: "Sprint 42", TotalPoints: 48, DonePoints: 18, PredictedDone: 35.3, Probability: 0.02, RiskLevel: schema.CriticalRisk,
	}))

	require.NoError(t, store.EndRun(runID, start.Add(1500*time.Millisecond), 4))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "predict", run.Command)
	assert.Equal(t, "platform", run.Team)
	_, err = uuid.Parse(run.RunUUID)
	assert.NoError(t, err, "run_uuid should be a valid UUID")
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(1500), *run.RunDurationMs)
	assert.Equal(t, int32(4), run.TotalRecords)
	require.NotNil(t, run.ConfigParams)
	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, "team.yaml", params["snapshot"])

	scores, err := store.GetAllWorkloadScores()
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "alice", scores[0].PersonID)
	assert.Equal(t, "overloaded", scores[0].Status)
	assert.Nil(t, scores[0].MissingMetrics)
	require.NotNil(t, scores[1].MissingMetrics)
	assert.Equal(t, "meeting_hours,blocked", *scores[1].MissingMetrics)

	predictions, err := store.GetAllPredictions()
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	// Ordered by scenario name
	assert.Equal(t, "add_scope", predictions[0].Scenario)
	assert.Equal(t, int32(48), predictions[0].TotalPoints)
	assert.Equal(t, "baseline", predictions[1].Scenario)
	assert.InDelta(t, 0.21, predictions[1].Probability, 1e-9)
	assert.Equal(t, "high", predictions[1].RiskLevel)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.Equal(t, 4, status.TotalRecords)
	assert.Equal(t, int64(1), status.TableSizes[runsTable])
	assert.Equal(t, int64(2), status.TableSizes[workloadScoresTable])
	assert.Equal(t, int64(2), status.TableSizes[predictionsTable])
}

func TestRunStore_MultipleRuns(t *testing.T) {
	store := newMemoryStore(t)

	base := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	var ids []int64
	for i := range 3 {
		id, err := store.BeginRun("workload", "platform", base.Add(time.Duration(i)*time.Hour), nil)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, ids[2], status.LastRunID)
	assert.True(t, base.Equal(status.OldestRunTime))
	assert.True(t, base.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.Equal(t, 0, status.TotalRecords)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Nil(t, runs[0].EndTime, "unfinished runs have no end time")
	assert.NotEqual(t, runs[0].RunUUID, runs[1].RunUUID)
}

func TestRunStore_DuplicateWorkloadScore(t *testing.T) {
	store := newMemoryStore(t)

	runID, err := store.BeginRun("workload", "platform", time.Now(), nil)
	require.NoError(t, err)

	score := schema.WorkloadScore{PersonID: "alice", RawScore: 50, Status: schema.HealthyStatus}
	require.NoError(t, store.RecordWorkloadScore(runID, time.Now(), score))
	assert.Error(t, store.RecordWorkloadScore(runID, time.Now(), score))
}

func TestRunStore_EndUnknownRun(t *testing.T) {
	store := newMemoryStore(t)

	err := store.EndRun(999, time.Now(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 999")
}

func TestRunStore_EmptyStatus(t *testing.T) {
	store := newMemoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
	assert.True(t, status.LastRunTime.IsZero())
	assert.Len(t, status.TableSizes, 3)
}

func TestBindVars(t *testing.T) {
	assert.Equal(t, "?, ?, ?", bindVars(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", bindVars(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", bindVars(schema.PostgreSQLBackend, 3))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`teamcap_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"teamcap_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"teamcap_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestCreateTableQuery(t *testing.T) {
	assert.Contains(t, createTableQuery(runsTable, schema.MySQLBackend), "AUTO_INCREMENT")
	assert.Contains(t, createTableQuery(runsTable, schema.PostgreSQLBackend), "BIGSERIAL")
	assert.Contains(t, createTableQuery(runsTable, schema.SQLiteBackend), "AUTOINCREMENT")
	assert.Contains(t, createTableQuery(predictionsTable, schema.PostgreSQLBackend), "PRIMARY KEY (run_id, sprint_name, scenario)")
	assert.Contains(t, createTableQuery(workloadScoresTable, schema.MySQLBackend), "PRIMARY KEY (run_id, person_id)")
}

func TestParseTime(t *testing.T) {
	want := time.Date(2026, 10, 14, 9, 0, 0, 5, time.UTC)

	got, err := parseTime(want.Format(time.RFC3339Nano))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseTime([]byte(want.Format(time.RFC3339Nano)))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseTime(want)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = parseTime(42)
	assert.Error(t, err)
}
