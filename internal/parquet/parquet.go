// Package parquet provides data structures and functions for exporting teamcap
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/teamcap/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single teamcap command run with metadata.
// This struct maps to the teamcap_runs database table.
type Run struct {
	// RunID is the store-assigned identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// Command is the CLI command or MCP tool that produced the run
	Command string `parquet:"command,snappy"`

	// Team is the team the run was computed for
	Team string `parquet:"team,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRecords is the number of result rows recorded by the run
	TotalRecords int32 `parquet:"total_records,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// WorkloadScore is one person's workload score within a run.
// This struct maps to the teamcap_workload_scores database table.
type WorkloadScore struct {
	RunID        int64     `parquet:"run_id,snappy"`
	PersonID     string    `parquet:"person_id,snappy"`
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`
	RawScore     float64   `parquet:"raw_score,snappy"`
	Status       string    `parquet:"status,snappy"`

	// MissingMetrics is a comma-separated list of metrics absent from the snapshot (nullable)
	MissingMetrics *string `parquet:"missing_metrics,optional,snappy"`
}

// Prediction is a sprint forecast within a run.
// This struct maps to the teamcap_predictions database table.
type Prediction struct {
	RunID      int64  `parquet:"run_id,snappy"`
	SprintName string `parquet:"sprint_name,snappy"`

	// Scenario is baseline, remove_person or add_scope
	Scenario      string    `parquet:"scenario,snappy"`
	AnalysisTime  time.Time `parquet:"analysis_time,snappy"`
	TotalPoints   int32     `parquet:"total_points,snappy"`
	DonePoints    int32     `parquet:"done_points,snappy"`
	PredictedDone float64   `parquet:"predicted_done,snappy"`
	Probability   float64   `parquet:"probability,snappy"`
	RiskLevel     string    `parquet:"risk_level,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteWorkloadScoresParquet writes a slice of WorkloadScore structs to a Parquet file.
func WriteWorkloadScoresParquet(data []WorkloadScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WritePredictionsParquet writes a slice of Prediction structs to a Parquet file.
func WritePredictionsParquet(data []Prediction, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer; a failure here leaves an unreadable file
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			Command:       record.Command,
			Team:          record.Team,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalRecords:  record.TotalRecords,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertWorkloadRecords converts schema.WorkloadRecord to WorkloadScore for Parquet export.
func ConvertWorkloadRecords(records []schema.WorkloadRecord) []WorkloadScore {
	result := make([]WorkloadScore, len(records))
	for i, record := range records {
		result[i] = WorkloadScore{
			RunID:          record.RunID,
			PersonID:       record.PersonID,
			AnalysisTime:   record.AnalysisTime,
			RawScore:       record.RawScore,
			Status:         record.Status,
			MissingMetrics: record.MissingMetrics,
		}
	}
	return result
}

// ConvertPredictionRecords converts schema.PredictionRecord to Prediction for Parquet export.
func ConvertPredictionRecords(records []schema.PredictionRecord) []Prediction {
	result := make([]Prediction, len(records))
	for i, record := range records {
		result[i] = Prediction{
			RunID:         record.RunID,
			SprintName:    record.SprintName,
			Scenario:      record.Scenario,
			AnalysisTime:  record.AnalysisTime,
			TotalPoints:   record.TotalPoints,
			DonePoints:    record.DonePoints,
			PredictedDone: record.PredictedDone,
			Probability:   record.Probability,
			RiskLevel:     record.RiskLevel,
		}
	}
	return result
}
