package schema

import "time"

// RunStatus represents the status of the run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalRecords  int              `json:"total_records"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the teamcap_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	Command       string
	Team          string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalRecords  int32
	ConfigParams  *string
}

// WorkloadRecord represents a row from the teamcap_workload_scores table.
type WorkloadRecord struct {
	RunID          int64
	PersonID       string
	AnalysisTime   time.Time
	RawScore       float64
	Status         string
	MissingMetrics *string
}

// PredictionRecord represents a row from the teamcap_predictions table.
type PredictionRecord struct {
	RunID         int64
	SprintName    string
	Scenario      string
	AnalysisTime  time.Time
	TotalPoints   int32
	DonePoints    int32
	PredictedDone float64
	Probability   float64
	RiskLevel     string
}
