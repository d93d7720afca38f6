package algo

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/teamcap/schema"
)

// NewScopeTicketID is the id of the ticket synthesized by AddScope.
const NewScopeTicketID = "SCOPE-NEW"

// ScenarioOptions configures a what-if simulation.
type ScenarioOptions struct {
	Predict PredictOptions
	// Team is used to name who could absorb reassigned work.
	Team []schema.WorkloadScore
}

// RemovePerson simulates losing a team member for the rest of the sprint. Their
// incomplete tickets become blocked and unassigned; nothing is reassigned automatically.
func RemovePerson(sprint schema.Sprint, personID string, velocity schema.VelocityStats, today time.Time, opts ScenarioOptions) (schema.ScenarioResult, error) {
	if personID == "" {
		return schema.ScenarioResult{}, &schema.ValidationError{Field: "person", Reason: "person id is required"}
	}
	baseline, err := Predict(sprint, velocity, today, opts.Predict)
	if err != nil {
		return schema.ScenarioResult{}, fmt.Errorf("baseline prediction: %w", err)
	}

	modified := schema.CloneSprint(sprint)
	var affected []schema.Ticket
	for i, t := range modified.Tickets {
		if t.Assignee != personID || t.Status == schema.DoneTicket {
			continue
		}
		affected = append(affected, t)
		modified.Tickets[i].Status = schema.BlockedTicket
		modified.Tickets[i].Assignee = ""
	}

	result := schema.ScenarioResult{
		Kind:     schema.RemovePersonScenario,
		Subject:  personID,
		Baseline: baseline,
	}
	if len(affected) == 0 {
		result.Modified = baseline
		result.Notes = []string{fmt.Sprintf("%s has no incomplete tickets in this sprint", personID)}
		return result, nil
	}

	predicted, err := Predict(modified, velocity, today, opts.Predict)
	if err != nil {
		return schema.ScenarioResult{}, fmt.Errorf("scenario prediction: %w", err)
	}
	result.Modified = predicted
	result.DeltaProbability = predicted.Probability - baseline.Probability

	var points int
	for _, t := range affected {
		points += t.Points
	}
	result.Notes = append(result.Notes, fmt.Sprintf("%d tickets (%d pts) lose their assignee", len(affected), points))

	remaining := slices.DeleteFunc(slices.Clone(opts.Team), func(s schema.WorkloadScore) bool {
		return s.PersonID == personID
	})
	capacity := AvailableCapacity(remaining, 1)
	if len(capacity) == 0 {
		result.Notes = append(result.Notes, "No remaining team members to absorb work")
		return result, nil
	}

	slices.SortStableFunc(affected, func(a, b schema.Ticket) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	target := capacity[0].DisplayName()
	for _, t := range affected {
		result.Notes = append(result.Notes, fmt.Sprintf("Reassign %s (%d pts) to %s", t.ID, t.Points, target))
	}
	return result, nil
}

// newScopeTicketID returns NewScopeTicketID, suffixed with -2, -3 and so on
// when the sprint already holds a ticket with that id.
func newScopeTicketID(tickets []schema.Ticket) string {
	taken := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		taken[t.ID] = true
	}
	id := NewScopeTicketID
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", NewScopeTicketID, n)
	}
	return id
}

// AddScope simulates adding an unassigned todo ticket of extraPoints to the sprint.
func AddScope(sprint schema.Sprint, extraPoints int, velocity schema.VelocityStats, today time.Time, opts ScenarioOptions) (schema.ScenarioResult, error) {
	if extraPoints <= 0 {
		return schema.ScenarioResult{}, &schema.ValidationError{
			Field:  "points",
			Reason: fmt.Sprintf("extra points must be greater than 0 (received %d)", extraPoints),
		}
	}
	baseline, err := Predict(sprint, velocity, today, opts.Predict)
	if err != nil {
		return schema.ScenarioResult{}, fmt.Errorf("baseline prediction: %w", err)
	}

	modified := schema.CloneSprint(sprint)
	modified.TotalPoints += extraPoints
	modified.Tickets = append(modified.Tickets, schema.Ticket{
		ID:     newScopeTicketID(sprint.Tickets),
		Title:  "Added scope",
		Points: extraPoints,
		Status: schema.TodoTicket,
	})

	predicted, err := Predict(modified, velocity, today, opts.Predict)
	if err != nil {
		return schema.ScenarioResult{}, fmt.Errorf("scenario prediction: %w", err)
	}

	delta := predicted.Probability - baseline.Probability
	return schema.ScenarioResult{
		Kind:             schema.AddScopeScenario,
		Subject:          fmt.Sprintf("+%d pts", extraPoints),
		Baseline:         baseline,
		Modified:         predicted,
		DeltaProbability: delta,
		Notes: []string{
			fmt.Sprintf("Added %d pts of unassigned scope (%d -> %d total)", extraPoints, sprint.TotalPoints, modified.TotalPoints),
			fmt.Sprintf("Completion probability changes by %+.0f%% (%.0f%% -> %.0f%%)",
				delta*100, baseline.Probability*100, predicted.Probability*100),
		},
	}, nil
}
