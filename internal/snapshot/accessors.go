package snapshot

import (
	"time"

	"github.com/huangsam/teamcap/schema"
)

// TeamName returns the team the document describes.
func (d *Document) TeamName() string {
	return d.Team.Name
}

// Snapshots converts the members into metric snapshots, in document order.
func (d *Document) Snapshots() []schema.MetricSnapshot {
	out := make([]schema.MetricSnapshot, 0, len(d.Members))
	for _, m := range d.Members {
		values := make(map[schema.MetricKey]float64, len(m.Metrics))
		for k, v := range m.Metrics {
			values[schema.MetricKey(k)] = v
		}
		out = append(out, schema.MetricSnapshot{
			PersonID: m.ID,
			Name:     m.Name,
			Team:     d.Team.Name,
			Values:   values,
		})
	}
	return out
}

// Sprint returns the current sprint.
func (d *Document) Sprint() (schema.Sprint, error) {
	if d.SprintDoc == nil {
		return schema.Sprint{}, &schema.InsufficientDataError{What: "snapshot has no sprint section"}
	}
	start, err := schema.ParseDate(d.SprintDoc.Start)
	if err != nil {
		return schema.Sprint{}, err
	}
	end, err := schema.ParseDate(d.SprintDoc.End)
	if err != nil {
		return schema.Sprint{}, err
	}

	total, done := d.SprintDoc.points()
	tickets := make([]schema.Ticket, 0, len(d.SprintDoc.Tickets))
	for _, t := range d.SprintDoc.Tickets {
		tickets = append(tickets, schema.Ticket{
			ID:       t.ID,
			Title:    t.Title,
			Points:   t.Points,
			Status:   schema.TicketStatus(t.Status),
			Assignee: t.Assignee,
		})
	}
	return schema.Sprint{
		Name:        d.SprintDoc.Name,
		TotalPoints: total,
		DonePoints:  done,
		StartDate:   start,
		EndDate:     end,
		Tickets:     tickets,
	}, nil
}

// points returns the sprint totals, deriving omitted ones from the tickets.
func (s *SprintDoc) points() (total, done int) {
	for _, t := range s.Tickets {
		total += t.Points
		if t.Status == string(schema.DoneTicket) {
			done += t.Points
		}
	}
	if s.TotalPoints != nil {
		total = *s.TotalPoints
	}
	if s.DonePoints != nil {
		done = *s.DonePoints
	}
	return total, done
}

// History returns past sprint velocities, oldest first.
func (d *Document) History() []float64 {
	return d.Velocity.Velocities
}

// SprintLengthDays is the historical sprint length, or 0 when the document does not say.
func (d *Document) SprintLengthDays() int {
	return d.Velocity.SprintLengthDays
}

// PTOEvents converts the PTO entries.
func (d *Document) PTOEvents() ([]schema.PTOEvent, error) {
	events := make([]schema.PTOEvent, 0, len(d.PTO))
	for _, p := range d.PTO {
		start, err := schema.ParseDate(p.Start)
		if err != nil {
			return nil, err
		}
		end, err := schema.ParseDate(p.End)
		if err != nil {
			return nil, err
		}
		events = append(events, schema.PTOEvent{PersonID: p.Person, StartDate: start, EndDate: end})
	}
	return events, nil
}

// CoverageRange returns the window and minimum headcount to check. Without a coverage
// section the sprint dates are used and the minimum is left at 0 for the caller to resolve.
func (d *Document) CoverageRange() (schema.DateRange, int, error) {
	var start, end string
	var minCoverage int
	switch {
	case d.Coverage != nil:
		start, end, minCoverage = d.Coverage.Start, d.Coverage.End, d.Coverage.MinCoverage
	case d.SprintDoc != nil:
		start, end = d.SprintDoc.Start, d.SprintDoc.End
	default:
		return schema.DateRange{}, 0, &schema.InsufficientDataError{What: "snapshot has neither a coverage nor a sprint section"}
	}

	s, err := schema.ParseDate(start)
	if err != nil {
		return schema.DateRange{}, 0, err
	}
	e, err := schema.ParseDate(end)
	if err != nil {
		return schema.DateRange{}, 0, err
	}
	return schema.DateRange{Start: s, End: e}, minCoverage, nil
}

// Today returns the document's reference date, falling back to now.
func (d *Document) Today(now time.Time) time.Time {
	if d.AsOf != "" {
		if t, err := schema.ParseDate(d.AsOf); err == nil {
			return t
		}
	}
	return schema.TruncateDay(now)
}

// TeamSize is the number of members in the document.
func (d *Document) TeamSize() int {
	return len(d.Members)
}
