package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/teamcap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePredictionText(t *testing.T) {
	var buf bytes.Buffer
	err := writePrediction(&buf, samplePrediction(), testConfig(schema.TextOut), time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Sprint forecast: Sprint 42")
	assert.Contains(t, output, "18/40 points (45.0%)")
	assert.Contains(t, output, "Days remaining: 2")
	assert.Contains(t, output, "Daily velocity: 3.5 points/day")
	assert.Contains(t, output, "Probability:    3.1%")
	assert.Contains(t, output, "Risk level:     critical (on track: no)")
	assert.Contains(t, output, "CAP-1")
	assert.Contains(t, output, "Blocked; Unassigned")
	assert.Contains(t, output, "  - Unblock 1 blocked tickets")
}

func TestWritePredictionCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writePrediction(&buf, samplePrediction(), testConfig(schema.CSVOut), 0)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per ticket")
	assert.Equal(t, "sprint", records[0][0])
	assert.Equal(t, "Sprint 42", records[1][0])
	assert.Equal(t, "0.0312", records[1][6])
	assert.Equal(t, "CAP-1", records[1][9])
	assert.Equal(t, "Blocked;Unassigned", records[1][15])
	assert.Equal(t, "bob", records[2][12])
}

func TestWritePredictionCSVWithoutTickets(t *testing.T) {
	p := samplePrediction()
	p.AtRiskTickets = nil

	var buf bytes.Buffer
	require.NoError(t, writePrediction(&buf, p, testConfig(schema.CSVOut), 0))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, len(records[0]), len(records[1]))
	assert.Empty(t, records[1][9])
}

func TestWritePredictionJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePrediction(&buf, samplePrediction(), testConfig(schema.JSONOut), 0))

	var decoded schema.Prediction
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, schema.CriticalRisk, decoded.RiskLevel)
	require.Len(t, decoded.AtRiskTickets, 2)
	assert.Equal(t, "CAP-1", decoded.AtRiskTickets[0].TicketID)
}

func TestWriteVelocity(t *testing.T) {
	stats := schema.VelocityStats{
		Average: 34.5, Median: 35, StdDev: 2.96, Min: 30, Max: 38,
		SprintsAnalyzed: 4, ConfidenceLow: 28.7, ConfidenceHigh: 40.3, Trend: schema.StableTrend,
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeVelocity(&buf, stats, testConfig(schema.TextOut), 0))
		output := buf.String()
		assert.Contains(t, output, "34.5")
		assert.Contains(t, output, "stable")
		assert.NotContains(t, output, "Fewer than 3 sprints")
	})

	t.Run("text low confidence", func(t *testing.T) {
		low := stats
		low.LowConfidence = true
		var buf bytes.Buffer
		require.NoError(t, writeVelocity(&buf, low, testConfig(schema.TextOut), 0))
		assert.Contains(t, buf.String(), "Fewer than 3 sprints of history")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeVelocity(&buf, stats, testConfig(schema.CSVOut), 0))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []string{"metric", "value"}, records[0])
		assert.Contains(t, records, []string{"average", "34.5"})
		assert.Contains(t, records, []string{"trend", "stable"})
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeVelocity(&buf, stats, testConfig(schema.JSONOut), 0))
		var decoded schema.VelocityStats
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, stats, decoded)
	})
}

func TestWriteScenario(t *testing.T) {
	baseline := samplePrediction()
	modified := samplePrediction()
	modified.TotalPoints = 48
	modified.RemainingPoints = 30
	modified.Probability = 0.0012
	result := schema.ScenarioResult{
		Kind:             schema.AddScopeScenario,
		Subject:          "+8 pts",
		Baseline:         baseline,
		Modified:         modified,
		DeltaProbability: modified.Probability - baseline.Probability,
		Notes:            []string{"Added 8 pts of unassigned scope (40 -> 48 total)"},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeScenario(&buf, result, testConfig(schema.TextOut), 0))
		output := buf.String()
		assert.Contains(t, output, "What if: add +8 pts")
		assert.Contains(t, output, "+8")
		assert.Contains(t, output, "-3.0%")
		assert.Contains(t, output, "  - Added 8 pts of unassigned scope (40 -> 48 total)")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeScenario(&buf, result, testConfig(schema.CSVOut), 0))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, []string{"kind", "subject", "metric", "baseline", "modified", "delta"}, records[0])
		assert.Contains(t, records, []string{"add_scope", "+8 pts", "total_points", "40", "48", "+8"})
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeScenario(&buf, result, testConfig(schema.JSONOut), 0))
		var decoded schema.ScenarioResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, schema.AddScopeScenario, decoded.Kind)
		assert.InDelta(t, -0.03, decoded.DeltaProbability, 0.0001)
	})
}

func TestScenarioTitle(t *testing.T) {
	assert.Equal(t, "remove alice", scenarioTitle(schema.ScenarioResult{Kind: schema.RemovePersonScenario, Subject: "alice"}))
	assert.Equal(t, "add +5 pts", scenarioTitle(schema.ScenarioResult{Kind: schema.AddScopeScenario, Subject: "+5 pts"}))
	assert.Equal(t, "baseline", scenarioTitle(schema.ScenarioResult{Kind: schema.BaselineScenario}))
}
