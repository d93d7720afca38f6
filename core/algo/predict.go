package algo

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/teamcap/schema"
)

// OnTrackProbability is the completion probability from which a sprint is on track.
const OnTrackProbability = 0.70

// ProbabilityModel returns the probability of completing the required points when the
// deliverable points follow a distribution with the given mean and standard deviation.
type ProbabilityModel func(required, mean, std float64) float64

// NormalProbability is P(X >= required) for X ~ N(mean, std), i.e. 1 - Φ(z).
func NormalProbability(required, mean, std float64) float64 {
	z := (required - mean) / std
	return 1 - 0.5*math.Erfc(-z/math.Sqrt2)
}

// PredictOptions tunes a sprint prediction.
type PredictOptions struct {
	// SprintLengthDays is the historical sprint length. 0 derives it from the sprint itself.
	SprintLengthDays int
	Rules            schema.RiskRules
	// Model defaults to NormalProbability.
	Model ProbabilityModel
}

// Predict forecasts how many points the sprint will complete and how likely it is to finish.
func Predict(sprint schema.Sprint, velocity schema.VelocityStats, today time.Time, opts PredictOptions) (schema.Prediction, error) {
	if err := validateSprint(sprint); err != nil {
		return schema.Prediction{}, err
	}

	model := opts.Model
	if model == nil {
		model = NormalProbability
	}
	length := opts.SprintLengthDays
	if length <= 0 {
		length = sprint.LengthDays()
	}

	total := float64(sprint.TotalPoints)
	done := float64(sprint.DonePoints)
	daysLeft := DaysRemaining(sprint, today)
	dailyVelocity := velocity.Average / float64(length)
	expected := dailyVelocity * float64(daysLeft)
	predicted := clamp(done+expected, 0, math.Max(total, done)*2)

	var probability float64
	switch {
	case daysLeft == 0:
		probability = boolProbability(done >= total)
	case velocity.StdDev == 0:
		probability = boolProbability(predicted >= total)
	default:
		std := velocity.StdDev * math.Sqrt(float64(daysLeft)/float64(length))
		probability = model(total-done, expected, std)
	}
	if math.IsNaN(probability) {
		probability = 0
	}
	probability = clamp(probability, 0, 1)

	risks := make([]schema.RiskScore, 0, len(sprint.Tickets))
	for _, t := range sprint.IncompleteTickets() {
		risks = append(risks, AssessRisk(t, sprint, today, opts.Rules))
	}
	RankRisks(risks)

	completion := 100.0
	if sprint.TotalPoints > 0 {
		completion = done / total * 100
	}

	p := schema.Prediction{
		Sprint:          sprint.Name,
		TotalPoints:     sprint.TotalPoints,
		DonePoints:      sprint.DonePoints,
		RemainingPoints: max(0, sprint.TotalPoints-sprint.DonePoints),
		DaysRemaining:   daysLeft,
		DailyVelocity:   dailyVelocity,
		PredictedDone:   predicted,
		Probability:     probability,
		CompletionPct:   completion,
		OnTrack:         probability >= OnTrackProbability,
		AtRiskTickets:   risks,
	}
	p.RiskLevel = sprintRiskLevel(probability, risks)
	p.Recommendations = sprintRecommendations(risks, velocity)
	return p, nil
}

func validateSprint(sprint schema.Sprint) error {
	if err := schema.ValidateRange("sprint", sprint.StartDate, sprint.EndDate); err != nil {
		return err
	}
	if sprint.TotalPoints < 0 || sprint.DonePoints < 0 {
		return &schema.ValidationError{Field: "sprint", Reason: "points cannot be negative"}
	}
	if sprint.DonePoints > sprint.TotalPoints {
		return &schema.ValidationError{
			Field:  "done_points",
			Reason: fmt.Sprintf("done points (%d) exceed total points (%d)", sprint.DonePoints, sprint.TotalPoints),
		}
	}
	for _, t := range sprint.Tickets {
		if t.Points < 0 {
			return &schema.ValidationError{Field: "ticket " + t.ID, Reason: "points cannot be negative"}
		}
	}
	return nil
}

func boolProbability(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

func sprintRiskLevel(probability float64, risks []schema.RiskScore) schema.RiskLevel {
	var severe int
	var critical bool
	for _, r := range risks {
		switch r.Level {
		case schema.CriticalRisk:
			critical = true
			severe++
		case schema.HighRisk:
			severe++
		}
	}
	switch {
	case probability < 0.5 || critical:
		return schema.CriticalRisk
	case probability < OnTrackProbability || severe >= 2:
		return schema.HighRisk
	case probability < 0.85:
		return schema.MediumRisk
	default:
		return schema.LowRisk
	}
}

func sprintRecommendations(risks []schema.RiskScore, velocity schema.VelocityStats) []string {
	var atRisk, blocked, unassigned int
	for _, r := range risks {
		if r.Score >= recommendScore {
			atRisk++
		}
		if r.Status == schema.BlockedTicket {
			blocked++
		}
		if r.Assignee == "" {
			unassigned++
		}
	}

	var recs []string
	if atRisk > 0 {
		recs = append(recs, fmt.Sprintf("Review %d at-risk tickets (score >= 60)", atRisk))
	}
	if blocked > 0 {
		recs = append(recs, fmt.Sprintf("Unblock %d blocked tickets", blocked))
	}
	if unassigned > 0 {
		recs = append(recs, fmt.Sprintf("Assign %d unassigned tickets", unassigned))
	}
	if velocity.Trend == schema.DecliningTrend {
		recs = append(recs, "Velocity trending down; investigate blockers")
	}
	if len(recs) == 0 {
		recs = append(recs, "Sprint on track")
	}
	return recs
}
