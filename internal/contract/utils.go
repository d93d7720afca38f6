package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/teamcap/schema"
)

// Scoring label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label indicating the criticality level
// of a [0,100] risk score. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return CriticalValue
	case score >= 60:
		return HighValue
	case score >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// ColorByScore paints text in the color of the [0,100] score's criticality band.
func ColorByScore(score float64, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return colorFor(GetPlainLabel(score)).Sprint(text)
}

// GetStatusLabel renders a workload status, colored when requested.
func GetStatusLabel(status schema.WorkloadStatus, useColors bool) string {
	var text string
	switch status {
	case schema.OverloadedStatus:
		text = CriticalValue
	case schema.AtCapacityStatus:
		text = ModerateValue
	default:
		text = LowValue
	}
	label := strings.ReplaceAll(string(status), "_", " ")
	if !useColors {
		return label
	}
	return colorFor(text).Sprint(label)
}

// GetSeverityLabel renders a coverage severity, colored when requested.
func GetSeverityLabel(severity schema.Severity, useColors bool) string {
	if !useColors {
		return string(severity)
	}
	switch severity {
	case schema.CriticalSeverity:
		return CriticalColor.Sprint(string(severity))
	case schema.WarningSeverity:
		return ModerateColor.Sprint(string(severity))
	default:
		return LowColor.Sprint(string(severity))
	}
}

// GetRiskLevelLabel renders a risk level, colored when requested.
func GetRiskLevelLabel(level schema.RiskLevel, useColors bool) string {
	if !useColors {
		return string(level)
	}
	switch level {
	case schema.CriticalRisk:
		return CriticalColor.Sprint(string(level))
	case schema.HighRisk:
		return HighColor.Sprint(string(level))
	case schema.MediumRisk:
		return ModerateColor.Sprint(string(level))
	default:
		return LowColor.Sprint(string(level))
	}
}

func colorFor(text string) *color.Color {
	switch text {
	case CriticalValue:
		return CriticalColor
	case HighValue:
		return HighColor
	case ModerateValue:
		return ModerateColor
	default: // "Low"
		return LowColor
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".teamcap_runs.db"
	}
	return filepath.Join(homeDir, ".teamcap_runs.db")
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for "..." and at least one character.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
