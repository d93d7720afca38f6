package algo

import (
	"time"

	"github.com/huangsam/teamcap/schema"
)

// date parses a YYYY-MM-DD string for test fixtures.
func date(s string) time.Time {
	t, err := schema.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// testSprint is a ten day sprint from Monday 2026-10-05 to Thursday 2026-10-15.
func testSprint(total, done int, tickets ...schema.Ticket) schema.Sprint {
	return schema.Sprint{
		Name:        "Sprint 42",
		TotalPoints: total,
		DonePoints:  done,
		StartDate:   date("2026-10-05"),
		EndDate:     date("2026-10-15"),
		Tickets:     tickets,
	}
}
