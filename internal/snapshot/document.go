// Package snapshot loads the team snapshot documents the analytics run against.
package snapshot

// Document is the decoded form of a snapshot file. YAML and JSON are both accepted.
type Document struct {
	Team      TeamDoc      `yaml:"team"`
	Members   []MemberDoc  `yaml:"members" validate:"dive"`
	SprintDoc *SprintDoc   `yaml:"sprint"`
	Velocity  HistoryDoc   `yaml:"history"`
	PTO       []PTODoc     `yaml:"pto" validate:"dive"`
	Coverage  *CoverageDoc `yaml:"coverage"`
	AsOf      string       `yaml:"today" validate:"omitempty,datetime=2006-01-02"`
}

// TeamDoc names the team the snapshot belongs to.
type TeamDoc struct {
	Name string `yaml:"name" default:"default"`
}

// MemberDoc is one person and their raw activity metrics.
type MemberDoc struct {
	ID      string             `yaml:"id" validate:"required"`
	Name    string             `yaml:"name"`
	Metrics map[string]float64 `yaml:"metrics" validate:"dive,keys,oneof=open_prs pending_reviews assigned_issues recent_commits story_points in_progress blocked meeting_hours,endkeys,gte=0"`
}

// SprintDoc is the current sprint. Omitted point totals are derived from the tickets.
type SprintDoc struct {
	Name        string      `yaml:"name" default:"current"`
	Start       string      `yaml:"start" validate:"required,datetime=2006-01-02"`
	End         string      `yaml:"end" validate:"required,datetime=2006-01-02"`
	TotalPoints *int        `yaml:"total_points" validate:"omitempty,gte=0"`
	DonePoints  *int        `yaml:"done_points" validate:"omitempty,gte=0"`
	Tickets     []TicketDoc `yaml:"tickets" validate:"dive"`
}

// TicketDoc is one sprint ticket.
type TicketDoc struct {
	ID       string `yaml:"id" validate:"required"`
	Title    string `yaml:"title"`
	Points   int    `yaml:"points" validate:"gte=0"`
	Status   string `yaml:"status" default:"todo" validate:"oneof=todo in_progress blocked done"`
	Assignee string `yaml:"assignee"`
}

// HistoryDoc is the completed points of past sprints, oldest first.
type HistoryDoc struct {
	Velocities       []float64 `yaml:"velocities" validate:"dive,gte=0"`
	SprintLengthDays int       `yaml:"sprint_length_days" validate:"gte=0"`
}

// PTODoc is an inclusive span of days a person is out.
type PTODoc struct {
	Person string `yaml:"person" validate:"required"`
	Start  string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End    string `yaml:"end" validate:"required,datetime=2006-01-02"`
}

// CoverageDoc is the window checked for coverage gaps.
type CoverageDoc struct {
	Start       string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End         string `yaml:"end" validate:"required,datetime=2006-01-02"`
	MinCoverage int    `yaml:"min_coverage" validate:"gte=0"`
}
