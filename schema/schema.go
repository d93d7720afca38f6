// Package schema holds the value types shared by the analytics core and its callers.
package schema

import "time"

// MetricSnapshot is one person's raw activity counts for a scoring period.
// A key missing from Values means the source did not report it.
type MetricSnapshot struct {
	PersonID string                `json:"person_id"`
	Name     string                `json:"name,omitempty"`
	Team     string                `json:"team,omitempty"`
	Period   string                `json:"period,omitempty"`
	Values   map[MetricKey]float64 `json:"values"`
}

// MetricWeight is the weight and normalization ceiling of a single metric.
type MetricWeight struct {
	Weight   float64 `json:"weight" mapstructure:"weight"`
	MaxValue float64 `json:"max_value" mapstructure:"max_value"`
}

// WeightConfig maps each metric to its weight entry.
type WeightConfig map[MetricKey]MetricWeight

// Thresholds are the resolved limits for one team.
type Thresholds struct {
	AtRisk          float64 `json:"at_risk"`
	Overload        float64 `json:"overload"`
	BalanceVariance float64 `json:"balance_variance"`
	MinCoverage     int     `json:"min_coverage"`
}

// ThresholdOverrides layers optional values on top of Thresholds.
type ThresholdOverrides struct {
	AtRisk          *float64 `json:"at_risk,omitempty"`
	Overload        *float64 `json:"overload,omitempty"`
	BalanceVariance *float64 `json:"balance_variance,omitempty"`
	MinCoverage     *int     `json:"min_coverage,omitempty"`
}

// Apply returns base with every non-nil override applied.
func (o ThresholdOverrides) Apply(base Thresholds) Thresholds {
	if o.AtRisk != nil {
		base.AtRisk = *o.AtRisk
	}
	if o.Overload != nil {
		base.Overload = *o.Overload
	}
	if o.BalanceVariance != nil {
		base.BalanceVariance = *o.BalanceVariance
	}
	if o.MinCoverage != nil {
		base.MinCoverage = *o.MinCoverage
	}
	return base
}

// RiskRules holds the additive constants used by ticket risk scoring.
type RiskRules struct {
	TodoPastHalf  float64 `json:"todo_past_half"`
	TodoLate      float64 `json:"todo_late"`
	LargeVeryLate float64 `json:"large_very_late"`
	LargeLate     float64 `json:"large_late"`
	Blocked       float64 `json:"blocked"`
	Unassigned    float64 `json:"unassigned"`
	LargePoints   int     `json:"large_points"`
}

// WorkloadScore is the scored workload of one person.
type WorkloadScore struct {
	PersonID  string                `json:"person_id"`
	Name      string                `json:"name,omitempty"`
	RawScore  float64               `json:"raw_score"`
	Status    WorkloadStatus        `json:"status"`
	Breakdown map[MetricKey]float64 `json:"breakdown,omitempty"`
	Missing   []MetricKey           `json:"missing_metrics,omitempty"`
}

// DisplayName prefers the human name over the id.
func (w WorkloadScore) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.PersonID
}

// RebalanceSuggestion proposes moving work between two people.
type RebalanceSuggestion struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	FromLoad       float64 `json:"from_load"`
	ToLoad         float64 `json:"to_load"`
	Recommendation string  `json:"recommendation"`
}

// TeamSummary aggregates the workload scores of a team.
type TeamSummary struct {
	Team            string                `json:"team,omitempty"`
	TeamSize        int                   `json:"team_size"`
	Overloaded      int                   `json:"overloaded"`
	AtCapacity      int                   `json:"at_capacity"`
	Healthy         int                   `json:"healthy"`
	AverageWorkload float64               `json:"average_workload"`
	Variance        float64               `json:"variance"`
	Balanced        bool                  `json:"is_balanced"`
	Thresholds      Thresholds            `json:"thresholds"`
	Members         []WorkloadScore       `json:"members"`
	Suggestions     []RebalanceSuggestion `json:"suggestions,omitempty"`
}

// Ticket is a unit of sprint work.
type Ticket struct {
	ID       string       `json:"id"`
	Title    string       `json:"title,omitempty"`
	Points   int          `json:"points"`
	Status   TicketStatus `json:"status"`
	Assignee string       `json:"assignee,omitempty"`
}

// Sprint is the current time box and its tickets.
type Sprint struct {
	Name        string    `json:"name,omitempty"`
	TotalPoints int       `json:"total_points"`
	DonePoints  int       `json:"done_points"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Tickets     []Ticket  `json:"tickets"`
}

// VelocityStats summarizes historical completed points per sprint.
type VelocityStats struct {
	Average         float64 `json:"average"`
	Median          float64 `json:"median"`
	StdDev          float64 `json:"std_dev"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	SprintsAnalyzed int     `json:"sprints_analyzed"`
	ConfidenceLow   float64 `json:"confidence_low"`
	ConfidenceHigh  float64 `json:"confidence_high"`
	Trend           Trend   `json:"trend"`
	LowConfidence   bool    `json:"low_confidence"`
}

// RiskScore is the assessed risk of one incomplete ticket.
type RiskScore struct {
	TicketID       string       `json:"ticket_id"`
	Points         int          `json:"points"`
	Status         TicketStatus `json:"status"`
	Assignee       string       `json:"assignee,omitempty"`
	Score          float64      `json:"score"`
	Level          RiskLevel    `json:"level"`
	Factors        []string     `json:"factors,omitempty"`
	Recommendation string       `json:"recommendation,omitempty"`
}

// Prediction is the completion forecast of a sprint.
type Prediction struct {
	Sprint          string      `json:"sprint,omitempty"`
	TotalPoints     int         `json:"total_points"`
	DonePoints      int         `json:"done_points"`
	RemainingPoints int         `json:"remaining_points"`
	DaysRemaining   int         `json:"days_remaining"`
	DailyVelocity   float64     `json:"daily_velocity"`
	PredictedDone   float64     `json:"predicted_done"`
	Probability     float64     `json:"probability"`
	CompletionPct   float64     `json:"completion_pct"`
	OnTrack         bool        `json:"on_track"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	AtRiskTickets   []RiskScore `json:"at_risk_tickets"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// PTOEvent is an inclusive span of days a person is out.
type PTOEvent struct {
	PersonID  string    `json:"person_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Covers reports whether the event includes day.
func (e PTOEvent) Covers(day time.Time) bool {
	d := TruncateDay(day)
	return !d.Before(TruncateDay(e.StartDate)) && !d.After(TruncateDay(e.EndDate))
}

// Overlaps reports whether two events share at least one day.
func (e PTOEvent) Overlaps(other PTOEvent) bool {
	return !TruncateDay(e.StartDate).After(TruncateDay(other.EndDate)) &&
		!TruncateDay(other.StartDate).After(TruncateDay(e.EndDate))
}

// WorkDays counts the days of the event the calendar treats as workdays.
func (e PTOEvent) WorkDays(policy CalendarPolicy) int {
	n := 0
	for d := TruncateDay(e.StartDate); !d.After(TruncateDay(e.EndDate)); d = d.AddDate(0, 0, 1) {
		if policy.IsWorkday(d) {
			n++
		}
	}
	return n
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CalendarPolicy decides which days count as workdays.
type CalendarPolicy struct {
	SkipWeekends bool `json:"skip_weekends"`
}

// IsWorkday reports whether day is a workday under the policy.
func (p CalendarPolicy) IsWorkday(day time.Time) bool {
	if !p.SkipWeekends {
		return true
	}
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// CoverageDay is the headcount available on a single workday.
type CoverageDay struct {
	Date      time.Time `json:"date"`
	Available int       `json:"available"`
	PeopleOut []string  `json:"people_out,omitempty"`
	Severity  Severity  `json:"severity"`
}

// CoverageReport is the day by day coverage timeline.
type CoverageReport struct {
	TeamSize    int           `json:"team_size"`
	MinCoverage int           `json:"min_coverage"`
	Days        []CoverageDay `json:"days"`
}

// Gaps returns the days whose severity is not none.
func (r CoverageReport) Gaps() []CoverageDay {
	var gaps []CoverageDay
	for _, d := range r.Days {
		if d.Severity != NoneSeverity {
			gaps = append(gaps, d)
		}
	}
	return gaps
}

// ScenarioResult compares a baseline forecast against a simulated one.
type ScenarioResult struct {
	Kind             ScenarioKind `json:"kind"`
	Subject          string       `json:"subject"`
	Baseline         Prediction   `json:"baseline"`
	Modified         Prediction   `json:"modified"`
	DeltaProbability float64      `json:"delta_probability"`
	Notes            []string     `json:"notes,omitempty"`
}

// CheckResult is the outcome of the capacity gate.
type CheckResult struct {
	Passed          bool            `json:"passed"`
	Team            string          `json:"team,omitempty"`
	Thresholds      Thresholds      `json:"thresholds"`
	MinProbability  float64         `json:"min_probability"`
	Overloaded      []WorkloadScore `json:"overloaded,omitempty"`
	Probability     *float64        `json:"probability,omitempty"`
	CriticalDays    []CoverageDay   `json:"critical_days,omitempty"`
	Violations      []string        `json:"violations,omitempty"`
	MembersChecked  int             `json:"members_checked"`
	TicketsChecked  int             `json:"tickets_checked"`
	CoverageChecked int             `json:"coverage_days_checked"`
}
