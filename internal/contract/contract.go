// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/teamcap/schema"
)

// RunManager defines the interface for managing the run store.
// This allows the persistence layer to be mocked for testing.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking command runs and their results.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(command, team string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalRecords int) error

	// RecordWorkloadScore stores the workload score of one person
	RecordWorkloadScore(runID int64, analysisTime time.Time, score schema.WorkloadScore) error

	// RecordPrediction stores a sprint forecast under a scenario label
	RecordPrediction(runID int64, analysisTime time.Time, scenario schema.ScenarioKind, prediction schema.Prediction) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves every recorded run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllWorkloadScores retrieves every recorded workload score
	GetAllWorkloadScores() ([]schema.WorkloadRecord, error)

	// GetAllPredictions retrieves every recorded prediction
	GetAllPredictions() ([]schema.PredictionRecord, error)

	// Close closes the underlying connection
	Close() error
}
