package outwriter

import (
	"time"

	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

func testConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{
		Output:          output,
		Precision:       1,
		Width:           120,
		RunsBackend:     schema.NoneBackend,
		ComputedWeights: schema.GetDefaultWeights(),
		Thresholds:      schema.GetDefaultThresholds(),
		RiskRules:       schema.GetDefaultRiskRules(),
		Calendar:        schema.CalendarPolicy{SkipWeekends: true},
	}
}

func sampleSummary() schema.TeamSummary {
	return schema.TeamSummary{
		Team:            "platform",
		TeamSize:        3,
		Overloaded:      1,
		AtCapacity:      1,
		Healthy:         1,
		AverageWorkload: 78.3,
		Variance:        31.2,
		Balanced:        false,
		Thresholds:      schema.GetDefaultThresholds(),
		Members: []schema.WorkloadScore{
			{
				PersonID:  "alice",
				Name:      "Alice Chen",
				RawScore:  120,
				Status:    schema.OverloadedStatus,
				Breakdown: map[schema.MetricKey]float64{schema.MetricOpenPRs: 60, schema.MetricBlocked: 60},
			},
			{
				PersonID:  "bob",
				Name:      "Bob Smith",
				RawScore:  85,
				Status:    schema.AtCapacityStatus,
				Breakdown: map[schema.MetricKey]float64{schema.MetricOpenPRs: 85},
				Missing:   []schema.MetricKey{schema.MetricMeetingHours, schema.MetricBlocked},
			},
			{
				PersonID:  "carol",
				RawScore:  30,
				Status:    schema.HealthyStatus,
				Breakdown: map[schema.MetricKey]float64{schema.MetricOpenPRs: 30},
			},
		},
		Suggestions: []schema.RebalanceSuggestion{
			{From: "alice", To: "carol", FromLoad: 120, ToLoad: 30, Recommendation: "Move 1-2 tasks from alice to carol"},
		},
	}
}

func samplePrediction() schema.Prediction {
	return schema.Prediction{
		Sprint:          "Sprint 42",
		TotalPoints:     40,
		DonePoints:      18,
		RemainingPoints: 22,
		DaysRemaining:   2,
		DailyVelocity:   3.46,
		PredictedDone:   24.9,
		Probability:     0.0312,
		CompletionPct:   45,
		OnTrack:         false,
		RiskLevel:       schema.CriticalRisk,
		AtRiskTickets: []schema.RiskScore{
			{
				TicketID:       "CAP-1",
				Points:         8,
				Status:         schema.BlockedTicket,
				Score:          100,
				Level:          schema.CriticalRisk,
				Factors:        []string{"Blocked", "Unassigned"},
				Recommendation: "Unblock immediately or move to next sprint",
			},
			{
				TicketID: "CAP-3",
				Points:   3,
				Status:   schema.TodoTicket,
				Assignee: "bob",
				Score:    60,
				Level:    schema.HighRisk,
				Factors:  []string{"Not started past sprint midpoint"},
			},
		},
		Recommendations: []string{"Review 2 at-risk tickets (score ≥ 60)", "Unblock 1 blocked tickets"},
	}
}

func sampleCoverage() schema.CoverageReport {
	day := func(d int) time.Time { return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC) }
	return schema.CoverageReport{
		TeamSize:    3,
		MinCoverage: 2,
		Days: []schema.CoverageDay{
			{Date: day(12), Available: 2, PeopleOut: []string{"bob"}, Severity: schema.NoneSeverity},
			{Date: day(13), Available: 1, PeopleOut: []string{"bob", "carol"}, Severity: schema.WarningSeverity},
			{Date: day(14), Available: 0, PeopleOut: []string{"alice", "bob", "carol"}, Severity: schema.CriticalSeverity},
		},
	}
}
