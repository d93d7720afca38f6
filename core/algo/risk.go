package algo

import (
	"fmt"
	"time"

	"github.com/huangsam/teamcap/schema"
)

// recommendScore is the risk score from which a ticket gets a recommendation.
const recommendScore = 60.0

// AssessRisk scores one incomplete ticket against the sprint timeline.
// Rules are additive and the total is clamped to [0,100]. Done tickets score 0.
func AssessRisk(ticket schema.Ticket, sprint schema.Sprint, today time.Time, rules schema.RiskRules) schema.RiskScore {
	rs := schema.RiskScore{
		TicketID: ticket.ID,
		Points:   ticket.Points,
		Status:   ticket.Status,
		Assignee: ticket.Assignee,
		Level:    schema.LowRisk,
	}
	if ticket.Status == schema.DoneTicket {
		return rs
	}

	elapsed := ElapsedFraction(sprint, today)
	daysLeft := DaysRemaining(sprint, today)
	var score float64

	if ticket.Status == schema.TodoTicket {
		if elapsed > 0.5 {
			score += rules.TodoPastHalf
			rs.Factors = append(rs.Factors, fmt.Sprintf("Not started with %.0f%% of sprint elapsed", elapsed*100))
		}
		if elapsed > 0.75 {
			score += rules.TodoLate
			rs.Factors = append(rs.Factors, "Not started in the final quarter of the sprint")
		}
	}
	if ticket.Points >= rules.LargePoints {
		switch {
		case daysLeft < 3:
			score += rules.LargeVeryLate
			rs.Factors = append(rs.Factors, fmt.Sprintf("Large ticket (%d pts) with %d days left", ticket.Points, daysLeft))
		case daysLeft < 5:
			score += rules.LargeLate
			rs.Factors = append(rs.Factors, fmt.Sprintf("Large ticket (%d pts) with %d days left", ticket.Points, daysLeft))
		}
	}
	if ticket.Status == schema.BlockedTicket {
		score += rules.Blocked
		rs.Factors = append(rs.Factors, "Blocked")
	}
	if ticket.Assignee == "" {
		score += rules.Unassigned
		rs.Factors = append(rs.Factors, "No assignee")
	}

	rs.Score = clamp(score, 0, 100)
	rs.Level = RiskLevelFor(rs.Score)
	if rs.Score >= recommendScore {
		rs.Recommendation = ticketRecommendation(ticket)
	}
	return rs
}

// RiskLevelFor buckets a [0,100] risk score.
func RiskLevelFor(score float64) schema.RiskLevel {
	switch {
	case score >= 80:
		return schema.CriticalRisk
	case score >= 60:
		return schema.HighRisk
	case score >= 40:
		return schema.MediumRisk
	default:
		return schema.LowRisk
	}
}

func ticketRecommendation(ticket schema.Ticket) string {
	switch {
	case ticket.Status == schema.BlockedTicket:
		return "Unblock immediately or move to next sprint"
	case ticket.Assignee == "":
		return "Assign to team member with capacity"
	case ticket.Status == schema.TodoTicket:
		return "Consider descoping to next sprint"
	default:
		return "Monitor closely, may need descoping"
	}
}

// ElapsedFraction is how far today is through the sprint, clamped to [0,1].
// A sprint that starts and ends on the same day counts as fully elapsed.
func ElapsedFraction(sprint schema.Sprint, today time.Time) float64 {
	length := schema.DaysBetween(sprint.StartDate, sprint.EndDate)
	if length <= 0 {
		return 1
	}
	return clamp(float64(schema.DaysBetween(sprint.StartDate, today))/float64(length), 0, 1)
}

// DaysRemaining is the number of whole days from today to the sprint end, never negative.
func DaysRemaining(sprint schema.Sprint, today time.Time) int {
	return max(0, schema.DaysBetween(today, sprint.EndDate))
}
