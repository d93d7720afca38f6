package algo

import (
	"math"
	"testing"

	"github.com/huangsam/teamcap/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictDeterministicVelocity(t *testing.T) {
	velocity := schema.VelocityStats{Average: 20, StdDev: 0}
	opts := PredictOptions{Rules: schema.GetDefaultRiskRules()}

	tests := []struct {
		name     string
		done     int
		today    string
		wantProb float64
	}{
		{"reaches total", 30, "2026-10-10", 1.0},
		{"falls short by one", 29, "2026-10-10", 0.0},
		{"last day complete", 40, "2026-10-15", 1.0},
		{"last day incomplete", 39, "2026-10-15", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Predict(testSprint(40, tt.done), velocity, date(tt.today), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProb, got.Probability)
		})
	}
}

func TestPredictNormal(t *testing.T) {
	sprint := testSprint(40, 30,
		schema.Ticket{ID: "CAP-1", Points: 5, Status: schema.TodoTicket, Assignee: "alice"},
		schema.Ticket{ID: "CAP-2", Points: 8, Status: schema.BlockedTicket},
		schema.Ticket{ID: "CAP-3", Points: 3, Status: schema.DoneTicket, Assignee: "bob"},
	)
	velocity := schema.VelocityStats{Average: 20, StdDev: 4, Trend: schema.DecliningTrend}

	got, err := Predict(sprint, velocity, date("2026-10-10"), PredictOptions{Rules: schema.GetDefaultRiskRules()})
	require.NoError(t, err)

	assert.Equal(t, 5, got.DaysRemaining)
	assert.InDelta(t, 2.0, got.DailyVelocity, 0.0001)
	assert.InDelta(t, 40.0, got.PredictedDone, 0.0001)
	assert.InDelta(t, 0.5, got.Probability, 0.0001, "expected delivery equals required points")
	assert.Equal(t, 10, got.RemainingPoints)
	assert.InDelta(t, 75.0, got.CompletionPct, 0.0001)
	assert.False(t, got.OnTrack)

	require.Len(t, got.AtRiskTickets, 2, "done tickets are not assessed")
	assert.Equal(t, "CAP-2", got.AtRiskTickets[0].TicketID)
	assert.Equal(t, "CAP-1", got.AtRiskTickets[1].TicketID)
	assert.InDelta(t, 70.0, got.AtRiskTickets[0].Score, 0.0001)
	assert.Equal(t, schema.HighRisk, got.RiskLevel)

	assert.Equal(t, []string{
		"Review 1 at-risk tickets (score >= 60)",
		"Unblock 1 blocked tickets",
		"Assign 1 unassigned tickets",
		"Velocity trending down; investigate blockers",
	}, got.Recommendations)
}

func TestPredictSprintLengthOverride(t *testing.T) {
	velocity := schema.VelocityStats{Average: 28, StdDev: 0}
	got, err := Predict(testSprint(40, 30), velocity, date("2026-10-10"), PredictOptions{SprintLengthDays: 14})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.DailyVelocity, 0.0001)
	assert.InDelta(t, 40.0, got.PredictedDone, 0.0001)
	assert.Equal(t, 1.0, got.Probability)
	assert.Equal(t, []string{"Sprint on track"}, got.Recommendations)
}

func TestPredictClampsForecast(t *testing.T) {
	velocity := schema.VelocityStats{Average: 1000, StdDev: 10}
	got, err := Predict(testSprint(10, 2), velocity, date("2026-10-05"), PredictOptions{})
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.PredictedDone, "forecast is capped at twice the scope")
	assert.InDelta(t, 1.0, got.Probability, 0.0001)
	assert.True(t, got.OnTrack)
	assert.Equal(t, schema.LowRisk, got.RiskLevel)
}

func TestPredictCustomModel(t *testing.T) {
	var gotRequired, gotMean, gotStd float64
	model := func(required, mean, std float64) float64 {
		gotRequired, gotMean, gotStd = required, mean, std
		return 1.7
	}
	velocity := schema.VelocityStats{Average: 20, StdDev: 4}
	got, err := Predict(testSprint(40, 30), velocity, date("2026-10-10"), PredictOptions{Model: model})
	require.NoError(t, err)

	assert.Equal(t, 10.0, gotRequired)
	assert.InDelta(t, 10.0, gotMean, 0.0001)
	assert.InDelta(t, 4*math.Sqrt(0.5), gotStd, 0.0001)
	assert.Equal(t, 1.0, got.Probability, "model output is clamped")
}

func TestPredictRejectsInvertedSprint(t *testing.T) {
	sprint := testSprint(10, 0)
	sprint.EndDate = date("2026-10-01")
	_, err := Predict(sprint, schema.VelocityStats{Average: 10}, date("2026-10-02"), PredictOptions{})
	assert.ErrorIs(t, err, schema.ErrValidation)
}

func TestPredictRejectsDoneAboveTotal(t *testing.T) {
	_, err := Predict(testSprint(10, 20), schema.VelocityStats{Average: 10}, date("2026-10-10"), PredictOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrValidation)
	assert.Contains(t, err.Error(), "done points (20) exceed total points (10)")

	_, err = Predict(testSprint(10, 10), schema.VelocityStats{Average: 10}, date("2026-10-10"), PredictOptions{})
	assert.NoError(t, err, "a finished sprint is valid")
}

func TestNormalProbability(t *testing.T) {
	assert.InDelta(t, 0.5, NormalProbability(10, 10, 3), 0.0001)
	assert.InDelta(t, 0.8413, NormalProbability(7, 10, 3), 0.0001)
	assert.InDelta(t, 0.1587, NormalProbability(13, 10, 3), 0.0001)
}

func TestSprintRiskLevel(t *testing.T) {
	high := schema.RiskScore{Level: schema.HighRisk}
	critical := schema.RiskScore{Level: schema.CriticalRisk}

	assert.Equal(t, schema.CriticalRisk, sprintRiskLevel(0.4, nil))
	assert.Equal(t, schema.CriticalRisk, sprintRiskLevel(0.95, []schema.RiskScore{critical}))
	assert.Equal(t, schema.HighRisk, sprintRiskLevel(0.6, nil))
	assert.Equal(t, schema.HighRisk, sprintRiskLevel(0.95, []schema.RiskScore{high, high}))
	assert.Equal(t, schema.MediumRisk, sprintRiskLevel(0.8, []schema.RiskScore{high}))
	assert.Equal(t, schema.LowRisk, sprintRiskLevel(0.9, nil))
}
