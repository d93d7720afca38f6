package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/teamcap/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads every row of a Parquet file written with schema T.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func sampleRuns() []Run {
	now := time.Date(2026, 10, 14, 9, 30, 0, 123456789, time.UTC)
	end := now.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"command":"predict","team":"platform"}`

	return []Run{
		{
			RunID:         1,
			RunUUID:       "9b2f0d52-7a5c-4d84-9d6e-3b1c2a7f0e11",
			Command:       "predict",
			Team:          "platform",
			StartTime:     now,
			EndTime:       &end,
			RunDurationMs: &duration,
			TotalRecords:  3,
			ConfigParams:  &params,
		},
		{
			RunID:     2,
			RunUUID:   "0c6a8e43-1f7b-4b1e-8a0d-5d2e9c4b7a22",
			Command:   "workload",
			Team:      "platform",
			StartTime: now.Add(time.Hour),
		},
	}
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	for _, colName := range []string{
		"run_id", "run_uuid", "command", "team", "start_time",
		"end_time", "run_duration_ms", "total_records", "config_params",
	} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestWorkloadScoreStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(WorkloadScore))
	for _, colName := range []string{"run_id", "person_id", "analysis_time", "raw_score", "status", "missing_metrics"} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestPredictionStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Prediction))
	for _, colName := range []string{
		"run_id", "sprint_name", "scenario", "analysis_time", "total_points",
		"done_points", "predicted_done", "probability", "risk_level",
	} {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	readData := readAll[Run](t, outputPath)
	require.Len(t, readData, len(data))

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].RunUUID, readData[i].RunUUID)
		assert.Equal(t, data[i].Command, readData[i].Command)
		assert.Equal(t, data[i].TotalRecords, readData[i].TotalRecords)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond)
	}

	// Nullable columns survive in both directions
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Nanosecond)
	require.NotNil(t, readData[0].RunDurationMs)
	assert.Equal(t, int32(1500), *readData[0].RunDurationMs)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *readData[0].ConfigParams)

	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteWorkloadScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "workload.parquet")
	missing := "meeting_hours,blocked"
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	data := []WorkloadScore{
		{RunID: 1, PersonID: "alice", AnalysisTime: now, RawScore: 112.5, Status: "overloaded"},
		{RunID: 1, PersonID: "bob", AnalysisTime: now, RawScore: 40, Status: "healthy", MissingMetrics: &missing},
	}

	require.NoError(t, WriteWorkloadScoresParquet(data, outputPath))

	readData := readAll[WorkloadScore](t, outputPath)
	require.Len(t, readData, 2)
	assert.Equal(t, "alice", readData[0].PersonID)
	assert.InDelta(t, 112.5, readData[0].RawScore, 0.001)
	assert.Nil(t, readData[0].MissingMetrics)
	require.NotNil(t, readData[1].MissingMetrics)
	assert.Equal(t, missing, *readData[1].MissingMetrics)
}

func TestWritePredictionsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "predictions.parquet")
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	data := []Prediction{
		{RunID: 1, SprintName: "Sprint 42", Scenario: "baseline", AnalysisTime: now, TotalPoints: 40, DonePoints: 18, PredictedDone: 35.3, Probability: 0.21, RiskLevel: "high"},
		{RunID: 1, SprintName: "Sprint 42", Scenario: "add_scope", AnalysisTime: now, TotalPoints: 48, DonePoints: 18, PredictedDone: 35.3, Probability: 0.01, RiskLevel: "critical"},
	}

	require.NoError(t, WritePredictionsParquet(data, outputPath))

	readData := readAll[Prediction](t, outputPath)
	require.Len(t, readData, 2)
	for i := range data {
		assert.Equal(t, data[i].Scenario, readData[i].Scenario)
		assert.Equal(t, data[i].TotalPoints, readData[i].TotalPoints)
		assert.InDelta(t, data[i].Probability, readData[i].Probability, 0.0001)
		assert.Equal(t, data[i].RiskLevel, readData[i].RiskLevel)
	}
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty_runs.parquet")

	require.NoError(t, WriteRunsParquet([]Run{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	assert.Error(t, WriteRunsParquet(sampleRuns(), "/nonexistent/directory/output.parquet"))
	assert.Error(t, WriteWorkloadScoresParquet(nil, "/nonexistent/directory/output.parquet"))
	assert.Error(t, WritePredictionsParquet(nil, "/nonexistent/directory/output.parquet"))
}

func TestConvertRecords(t *testing.T) {
	now := time.Now()
	params := `{"team":"platform"}`
	runs := ConvertRunRecords([]schema.RunRecord{
		{RunID: 7, RunUUID: "u", Command: "check", Team: "platform", StartTime: now, TotalRecords: 4, ConfigParams: &params},
	})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, "check", runs[0].Command)
	assert.Equal(t, int32(4), runs[0].TotalRecords)
	assert.Same(t, &params, runs[0].ConfigParams)

	scores := ConvertWorkloadRecords([]schema.WorkloadRecord{
		{RunID: 7, PersonID: "carol", AnalysisTime: now, RawScore: 85, Status: "at_capacity"},
	})
	require.Len(t, scores, 1)
	assert.Equal(t, "carol", scores[0].PersonID)
	assert.Equal(t, "at_capacity", scores[0].Status)

	predictions := ConvertPredictionRecords([]schema.PredictionRecord{
		{RunID: 7, SprintName: "Sprint 42", Scenario: "remove_person", TotalPoints: 40, Probability: 0.5, RiskLevel: "medium"},
	})
	require.Len(t, predictions, 1)
	assert.Equal(t, "remove_person", predictions[0].Scenario)
	assert.Equal(t, int32(40), predictions[0].TotalPoints)

	assert.Empty(t, ConvertRunRecords(nil))
}
