package outwriter

import (
	"os"

	"github.com/huangsam/teamcap/internal/contract"
	"golang.org/x/term"
)

// Fixed column budgets for the free-text column of each table.
const (
	workloadFixedWidth = 50 // Rank + Score + Status + Load bar with borders/padding
	ticketFixedWidth   = 55 // Ticket + Points + Status + Assignee + Score + Level
	coverageFixedWidth = 40 // Date + Day + Available + Severity
)

// GetTerminalWidth returns the --width override, the detected terminal width, or 80.
func GetTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80
	}
	return detectedWidth
}

// GetMaxTableColumnWidth calculates how wide the free-text column of a table may be
// once fixedWidth characters are reserved for the other columns.
func GetMaxTableColumnWidth(cfg *contract.Config, fixedWidth int) int {
	// Reserve generous space for table borders, separators, and padding
	available := GetTerminalWidth(cfg) - fixedWidth - 10
	if available < 12 {
		return 12
	}
	if available > 60 {
		return 60
	}
	return available
}
