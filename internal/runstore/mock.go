package runstore

import (
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunManager is a mock implementation of RunManager for testing.
type MockRunManager struct {
	mock.Mock
}

var _ contract.RunManager = &MockRunManager{} // Compile-time check

// GetRunStore implements the RunManager interface.
func (m *MockRunManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(command, team string, startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(command, team, startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalRecords int) error {
	args := m.Called(runID, endTime, totalRecords)
	return args.Error(0)
}

// RecordWorkloadScore implements the RunStore interface.
func (m *MockRunStore) RecordWorkloadScore(runID int64, analysisTime time.Time, score schema.WorkloadScore) error {
	args := m.Called(runID, analysisTime, score)
	return args.Error(0)
}

// RecordPrediction implements the RunStore interface.
func (m *MockRunStore) RecordPrediction(runID int64, analysisTime time.Time, scenario schema.ScenarioKind, prediction schema.Prediction) error {
	args := m.Called(runID, analysisTime, scenario, prediction)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllWorkloadScores implements the RunStore interface.
func (m *MockRunStore) GetAllWorkloadScores() ([]schema.WorkloadRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.WorkloadRecord)
	return records, args.Error(1)
}

// GetAllPredictions implements the RunStore interface.
func (m *MockRunStore) GetAllPredictions() ([]schema.PredictionRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.PredictionRecord)
	return records, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
