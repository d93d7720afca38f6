package schema

// Custom string types for type safety.
type (
	// MetricKey identifies one raw activity metric in a snapshot.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// WorkloadStatus classifies a workload score against the thresholds.
	WorkloadStatus string

	// TicketStatus is the tracker state of a ticket.
	TicketStatus string

	// Trend is the direction of velocity over the history window.
	Trend string

	// RiskLevel buckets a ticket or sprint risk score.
	RiskLevel string

	// Severity describes how bad a coverage day is.
	Severity string

	// ScenarioKind names a what-if simulation.
	ScenarioKind string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// Metric keys recognized by the workload scorer.
const (
	MetricOpenPRs        MetricKey = "open_prs"
	MetricPendingReviews MetricKey = "pending_reviews"
	MetricAssignedIssues MetricKey = "assigned_issues"
	MetricRecentCommits  MetricKey = "recent_commits"
	MetricStoryPoints    MetricKey = "story_points"
	MetricInProgress     MetricKey = "in_progress"
	MetricBlocked        MetricKey = "blocked"
	MetricMeetingHours   MetricKey = "meeting_hours"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All workload statuses.
const (
	HealthyStatus    WorkloadStatus = "healthy"
	AtCapacityStatus WorkloadStatus = "at_capacity"
	OverloadedStatus WorkloadStatus = "overloaded"
)

// All ticket statuses.
const (
	TodoTicket       TicketStatus = "todo"
	InProgressTicket TicketStatus = "in_progress"
	BlockedTicket    TicketStatus = "blocked"
	DoneTicket       TicketStatus = "done"
)

// All velocity trends.
const (
	ImprovingTrend Trend = "improving"
	StableTrend    Trend = "stable"
	DecliningTrend Trend = "declining"
)

// All risk levels.
const (
	LowRisk      RiskLevel = "low"
	MediumRisk   RiskLevel = "medium"
	HighRisk     RiskLevel = "high"
	CriticalRisk RiskLevel = "critical"
)

// All coverage severities.
const (
	NoneSeverity     Severity = "none"
	WarningSeverity  Severity = "warning"
	CriticalSeverity Severity = "critical"
)

// All scenario kinds.
const (
	RemovePersonScenario ScenarioKind = "remove_person"
	AddScopeScenario     ScenarioKind = "add_scope"
	BaselineScenario     ScenarioKind = "baseline"
)

// All run tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Default threshold values.
const (
	DefaultAtRiskThreshold   = 80.0
	DefaultOverloadThreshold = 100.0
	DefaultBalanceVariance   = 30.0
	DefaultMinCoverage       = 2
)

// AllMetricKeys lists every metric in display order.
var AllMetricKeys = []MetricKey{
	MetricOpenPRs,
	MetricPendingReviews,
	MetricAssignedIssues,
	MetricRecentCommits,
	MetricStoryPoints,
	MetricInProgress,
	MetricBlocked,
	MetricMeetingHours,
}

// ValidMetricKeys lists all valid metric keys.
var ValidMetricKeys = map[MetricKey]struct{}{
	MetricOpenPRs:        {},
	MetricPendingReviews: {},
	MetricAssignedIssues: {},
	MetricRecentCommits:  {},
	MetricStoryPoints:    {},
	MetricInProgress:     {},
	MetricBlocked:        {},
	MetricMeetingHours:   {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidTicketStatuses lists all valid ticket statuses.
var ValidTicketStatuses = map[TicketStatus]struct{}{
	TodoTicket:       {},
	InProgressTicket: {},
	BlockedTicket:    {},
	DoneTicket:       {},
}

// ValidDatabaseBackends lists all valid run tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// GetDefaultWeights returns the default weight and normalization ceiling of every metric.
func GetDefaultWeights() WeightConfig {
	return WeightConfig{
		MetricOpenPRs:        {Weight: 3.0, MaxValue: 5},
		MetricPendingReviews: {Weight: 2.0, MaxValue: 8},
		MetricAssignedIssues: {Weight: 2.0, MaxValue: 10},
		MetricRecentCommits:  {Weight: 0.5, MaxValue: 50},
		MetricStoryPoints:    {Weight: 1.0, MaxValue: 13},
		MetricInProgress:     {Weight: 2.0, MaxValue: 5},
		MetricBlocked:        {Weight: 3.0, MaxValue: 3},
		MetricMeetingHours:   {Weight: 0.5, MaxValue: 20},
	}
}

// GetDefaultThresholds returns the global threshold defaults.
func GetDefaultThresholds() Thresholds {
	return Thresholds{
		AtRisk:          DefaultAtRiskThreshold,
		Overload:        DefaultOverloadThreshold,
		BalanceVariance: DefaultBalanceVariance,
		MinCoverage:     DefaultMinCoverage,
	}
}

// GetDefaultRiskRules returns the additive ticket risk constants.
func GetDefaultRiskRules() RiskRules {
	return RiskRules{
		TodoPastHalf:  40,
		TodoLate:      20,
		LargeVeryLate: 30,
		LargeLate:     15,
		Blocked:       50,
		Unassigned:    20,
		LargePoints:   5,
	}
}
