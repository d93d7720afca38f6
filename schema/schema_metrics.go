package schema

// MetricDefinition describes one workload metric for display purposes.
type MetricDefinition struct {
	Key         MetricKey `json:"key"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"`
	MaxValue    float64   `json:"max_value"`
	MaxScore    float64   `json:"max_score"` // percent contributed at max_value
}

// MetricsRenderModel contains all processed data needed for displaying the active scoring setup.
type MetricsRenderModel struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Formula        string                `json:"formula"`
	Metrics        []MetricDefinition    `json:"metrics"`
	Thresholds     Thresholds            `json:"thresholds"`
	TeamThresholds map[string]Thresholds `json:"team_thresholds,omitempty"`
	RiskRules      RiskRules             `json:"risk_rules"`
	Calendar       CalendarPolicy        `json:"calendar"`
}

// MetricDescriptions holds the human-readable meaning of every metric.
var MetricDescriptions = map[MetricKey]string{
	MetricOpenPRs:        "Open pull requests authored",
	MetricPendingReviews: "Reviews waiting on the person",
	MetricAssignedIssues: "Issues assigned to the person",
	MetricRecentCommits:  "Commits in the period",
	MetricStoryPoints:    "Story points in flight",
	MetricInProgress:     "Tickets in progress",
	MetricBlocked:        "Blocked tickets",
	MetricMeetingHours:   "Hours spent in meetings",
}
