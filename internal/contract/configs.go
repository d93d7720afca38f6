package contract

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/teamcap/schema"
)

// Default values for configuration.
const (
	DefaultPrecision      = 1
	DefaultMinProbability = 0.70
	DefaultLogLevel       = "warn"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// MetricWeightRaw is one metric entry from the config file. Nil fields keep the default.
type MetricWeightRaw struct {
	Weight   *float64 `mapstructure:"weight"`
	MaxValue *float64 `mapstructure:"max_value"`
}

// ThresholdsRawInput holds threshold definitions from the YAML config file.
type ThresholdsRawInput struct {
	AtRisk          *float64 `mapstructure:"at_risk"`
	Overload        *float64 `mapstructure:"overload"`
	BalanceVariance *float64 `mapstructure:"balance_variance"`
	MinCoverage     *int     `mapstructure:"min_coverage"`
}

// TeamRawInput holds the per-team overrides from the YAML config file.
type TeamRawInput struct {
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// RiskRulesRawInput holds ticket risk constants from the YAML config file.
type RiskRulesRawInput struct {
	TodoPastHalf  *float64 `mapstructure:"todo_past_half"`
	TodoLate      *float64 `mapstructure:"todo_late"`
	LargeVeryLate *float64 `mapstructure:"large_very_late"`
	LargeLate     *float64 `mapstructure:"large_late"`
	Blocked       *float64 `mapstructure:"blocked"`
	Unassigned    *float64 `mapstructure:"unassigned"`
	LargePoints   *int     `mapstructure:"large_points"`
}

// CalendarRawInput holds calendar settings from the YAML config file.
type CalendarRawInput struct {
	SkipWeekends *bool `mapstructure:"skip_weekends"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	SnapshotPath string
	Team         string // Team override; empty means the snapshot's own team
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	UseColors    bool

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	MetricsFile string // Prometheus textfile target; empty disables it
	LogLevel    string

	MinProbability float64

	// ComputedWeights is the final weights map, computed from defaults + custom overrides
	ComputedWeights schema.WeightConfig

	// Thresholds are the global thresholds after the config file and flag overrides
	Thresholds schema.Thresholds

	// TeamThresholds holds per-team overrides, layered on Thresholds at lookup time
	TeamThresholds map[string]schema.ThresholdOverrides

	RiskRules schema.RiskRules
	Calendar  schema.CalendarPolicy

	// --- Command inputs ---
	AsOf          time.Time // Reference date override; zero defers to the snapshot, then the clock
	Person        string    // whatif remove-person
	ScopePoints   int       // whatif add-scope
	CoverageStart time.Time // coverage window override
	CoverageEnd   time.Time
	MinCoverage   int // 0 defers to the snapshot, then the thresholds
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SnapshotPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Team           string  `mapstructure:"team"`
	OutputFile     string  `mapstructure:"output-file"`
	Precision      int     `mapstructure:"precision"`
	Output         string  `mapstructure:"output"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
	RunsBackend    string  `mapstructure:"runs-backend"`
	RunsDBConnect  string  `mapstructure:"runs-db-connect"`
	MetricsFile    string  `mapstructure:"metrics-file"`
	LogLevel       string  `mapstructure:"log-level"`
	ThresholdsStr  string  `mapstructure:"thresholds-override"`
	MinProbability float64 `mapstructure:"min-probability"`

	// --- Sections from the config file ---
	Weights    map[string]MetricWeightRaw `mapstructure:"weights"`
	Thresholds ThresholdsRawInput         `mapstructure:"thresholds"`
	Teams      map[string]TeamRawInput    `mapstructure:"teams"`
	Risk       RiskRulesRawInput          `mapstructure:"risk"`
	Calendar   CalendarRawInput           `mapstructure:"calendar"`

	// --- Fields from subcommand flags ---
	Today       string `mapstructure:"today"`
	Person      string `mapstructure:"person"`
	Points      int    `mapstructure:"points"`
	StartStr    string `mapstructure:"start"`
	EndStr      string `mapstructure:"end"`
	MinCoverage int    `mapstructure:"min-coverage"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ComputedWeights != nil {
		clone.ComputedWeights = maps.Clone(c.ComputedWeights)
	}
	if c.TeamThresholds != nil {
		clone.TeamThresholds = maps.Clone(c.TeamThresholds)
	}
	return &clone
}

// ThresholdsFor returns the thresholds of a team: the global values with that team's
// overrides applied on top. Team names match case-insensitively.
func (c *Config) ThresholdsFor(team string) schema.Thresholds {
	if o, ok := c.TeamThresholds[teamKey(team)]; ok {
		return o.Apply(c.Thresholds)
	}
	return c.Thresholds
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(_ context.Context, cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processTeamThresholds(cfg, input); err != nil {
		return err
	}
	if err := processRiskRules(cfg, input); err != nil {
		return err
	}
	processCalendar(cfg, input)
	return processCommandInputs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run tracking backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend == "" {
		cfg.RunsBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return &schema.ConfigError{
			Key:    "runs-backend",
			Reason: fmt.Sprintf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend),
		}
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return &schema.ConfigError{Key: "runs-db-connect", Reason: err.Error()}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.SnapshotPath = strings.TrimSpace(input.SnapshotPathStr)
	cfg.Team = strings.TrimSpace(input.Team)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.MetricsFile = input.MetricsFile

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return &schema.ConfigError{Key: "color", Reason: err.Error()}
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return &schema.ConfigError{Key: "precision", Reason: fmt.Sprintf("must be 1 or 2 (received %d)", input.Precision)}
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return &schema.ConfigError{Key: "output", Reason: fmt.Sprintf("invalid output format '%s'. must be text, csv, json", input.Output)}
	}

	// --- 2. Log level ---
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if err := SetLogLevel(cfg.LogLevel); err != nil {
		return &schema.ConfigError{Key: "log-level", Reason: err.Error()}
	}

	// --- 3. Gate probability ---
	if input.MinProbability < 0 || input.MinProbability > 1 {
		return &schema.ConfigError{
			Key:    "min-probability",
			Reason: fmt.Sprintf("must be between 0.0 and 1.0 (received %.2f)", input.MinProbability),
		}
	}
	cfg.MinProbability = input.MinProbability

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processCustomWeights merges the config file weights over the defaults and validates the result.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.GetDefaultWeights()
	custom := make(schema.WeightConfig, len(input.Weights))
	for name, raw := range input.Weights {
		key := schema.MetricKey(strings.ToLower(name))
		entry, ok := weights[key]
		if !ok {
			return &schema.ConfigError{Key: "weights." + name, Reason: "unknown metric"}
		}
		if raw.Weight != nil {
			entry.Weight = *raw.Weight
		}
		if raw.MaxValue != nil {
			entry.MaxValue = *raw.MaxValue
		}
		custom[key] = entry
	}
	maps.Copy(weights, custom)

	if err := schema.ValidateWeights(weights); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	cfg.ComputedWeights = weights
	return nil
}

// processThresholds layers defaults, the config file and the --thresholds-override flag.
// The flag takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := applyRawThresholds(schema.GetDefaultThresholds(), input.Thresholds)

	if input.ThresholdsStr != "" {
		overrides, err := parseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return &schema.ConfigError{Key: "thresholds-override", Reason: err.Error()}
		}
		thresholds = overrides.Apply(thresholds)
	}

	if err := validateThresholds("thresholds", thresholds); err != nil {
		return err
	}
	cfg.Thresholds = thresholds
	return nil
}

// processTeamThresholds records per-team overrides and checks each resolved result.
func processTeamThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.TeamThresholds = make(map[string]schema.ThresholdOverrides, len(input.Teams))
	for team, raw := range input.Teams {
		key := teamKey(team)
		if _, dup := cfg.TeamThresholds[key]; dup {
			return &schema.ConfigError{Key: "teams." + team, Reason: fmt.Sprintf("team %q is configured more than once", key)}
		}
		overrides := schema.ThresholdOverrides{
			AtRisk:          raw.Thresholds.AtRisk,
			Overload:        raw.Thresholds.Overload,
			BalanceVariance: raw.Thresholds.BalanceVariance,
			MinCoverage:     raw.Thresholds.MinCoverage,
		}
		if err := validateThresholds("teams."+team+".thresholds", overrides.Apply(cfg.Thresholds)); err != nil {
			return err
		}
		cfg.TeamThresholds[key] = overrides
	}
	return nil
}

// teamKey normalizes a team name the way viper normalizes config map keys.
func teamKey(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}

func applyRawThresholds(base schema.Thresholds, raw ThresholdsRawInput) schema.Thresholds {
	return schema.ThresholdOverrides{
		AtRisk:          raw.AtRisk,
		Overload:        raw.Overload,
		BalanceVariance: raw.BalanceVariance,
		MinCoverage:     raw.MinCoverage,
	}.Apply(base)
}

func validateThresholds(key string, t schema.Thresholds) error {
	switch {
	case t.AtRisk < 0:
		return &schema.ConfigError{Key: key + ".at_risk", Reason: fmt.Sprintf("cannot be negative (received %.2f)", t.AtRisk)}
	case t.Overload <= 0:
		return &schema.ConfigError{Key: key + ".overload", Reason: fmt.Sprintf("must be greater than 0 (received %.2f)", t.Overload)}
	case t.AtRisk > t.Overload:
		return &schema.ConfigError{
			Key:    key + ".at_risk",
			Reason: fmt.Sprintf("at_risk (%.2f) cannot exceed overload (%.2f)", t.AtRisk, t.Overload),
		}
	case t.BalanceVariance < 0:
		return &schema.ConfigError{Key: key + ".balance_variance", Reason: fmt.Sprintf("cannot be negative (received %.2f)", t.BalanceVariance)}
	case t.MinCoverage < 0:
		return &schema.ConfigError{Key: key + ".min_coverage", Reason: fmt.Sprintf("cannot be negative (received %d)", t.MinCoverage)}
	}
	return nil
}

// processRiskRules overrides the additive ticket risk constants.
func processRiskRules(cfg *Config, input *ConfigRawInput) error {
	rules := schema.GetDefaultRiskRules()
	r := input.Risk
	for key, pair := range map[string]struct {
		src *float64
		dst *float64
	}{
		"todo_past_half":  {r.TodoPastHalf, &rules.TodoPastHalf},
		"todo_late":       {r.TodoLate, &rules.TodoLate},
		"large_very_late": {r.LargeVeryLate, &rules.LargeVeryLate},
		"large_late":      {r.LargeLate, &rules.LargeLate},
		"blocked":         {r.Blocked, &rules.Blocked},
		"unassigned":      {r.Unassigned, &rules.Unassigned},
	} {
		if pair.src == nil {
			continue
		}
		if *pair.src < 0 || *pair.src > 100 {
			return &schema.ConfigError{Key: "risk." + key, Reason: fmt.Sprintf("must be between 0 and 100 (received %.2f)", *pair.src)}
		}
		*pair.dst = *pair.src
	}
	if r.LargePoints != nil {
		if *r.LargePoints < 1 {
			return &schema.ConfigError{Key: "risk.large_points", Reason: fmt.Sprintf("must be at least 1 (received %d)", *r.LargePoints)}
		}
		rules.LargePoints = *r.LargePoints
	}
	cfg.RiskRules = rules
	return nil
}

// processCalendar resolves the workday policy. Weekends are skipped unless disabled.
func processCalendar(cfg *Config, input *ConfigRawInput) {
	cfg.Calendar = schema.CalendarPolicy{SkipWeekends: true}
	if input.Calendar.SkipWeekends != nil {
		cfg.Calendar.SkipWeekends = *input.Calendar.SkipWeekends
	}
}

// processCommandInputs parses the subcommand flags. Dates use the snapshot layout (YYYY-MM-DD).
func processCommandInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Person = strings.TrimSpace(input.Person)
	cfg.ScopePoints = input.Points

	dates := []struct {
		key string
		raw string
		dst *time.Time
	}{
		{"today", input.Today, &cfg.AsOf},
		{"start", input.StartStr, &cfg.CoverageStart},
		{"end", input.EndStr, &cfg.CoverageEnd},
	}
	for _, d := range dates {
		*d.dst = time.Time{}
		if strings.TrimSpace(d.raw) == "" {
			continue
		}
		t, err := schema.ParseDate(strings.TrimSpace(d.raw))
		if err != nil {
			return &schema.ConfigError{Key: d.key, Reason: err.Error()}
		}
		*d.dst = t
	}
	if !cfg.CoverageStart.IsZero() && !cfg.CoverageEnd.IsZero() && cfg.CoverageEnd.Before(cfg.CoverageStart) {
		return &schema.ConfigError{Key: "end", Reason: "must not be before start"}
	}

	if input.MinCoverage < 0 {
		return &schema.ConfigError{Key: "min-coverage", Reason: fmt.Sprintf("cannot be negative (received %d)", input.MinCoverage)}
	}
	cfg.MinCoverage = input.MinCoverage
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// parseThresholdsString parses a string like "overload:110,at_risk:85,min_coverage:3".
func parseThresholdsString(s string) (schema.ThresholdOverrides, error) {
	var out schema.ThresholdOverrides

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return out, fmt.Errorf("invalid threshold format '%s', expected 'name:value'", part)
		}

		name := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return out, fmt.Errorf("invalid threshold value '%s' for %s: %w", valueStr, name, err)
		}

		switch name {
		case "at_risk":
			out.AtRisk = &value
		case "overload":
			out.Overload = &value
		case "balance_variance":
			out.BalanceVariance = &value
		case "min_coverage":
			n := int(value)
			if float64(n) != value {
				return out, fmt.Errorf("min_coverage must be a whole number (received %s)", valueStr)
			}
			out.MinCoverage = &n
		default:
			return out, fmt.Errorf("invalid threshold '%s', must be at_risk, overload, balance_variance, or min_coverage", name)
		}
	}

	return out, nil
}
