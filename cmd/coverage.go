package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// coverageCmd lists coverage gaps caused by PTO.
var coverageCmd = &cobra.Command{
	Use:   "coverage <snapshot>",
	Short: "Find workdays where PTO leaves the team short.",
	Long: `Walk every workday of the coverage window and count who is available.

Days below the minimum coverage are warnings and days with nobody available are
critical. The window comes from --start/--end, then the snapshot's coverage
section, then the sprint dates. Weekends are skipped unless the calendar
settings say otherwise.

Examples:
  # Coverage for the window in the snapshot
  teamcap coverage team.yaml

  # Require 3 people on a custom window
  teamcap coverage team.yaml --start 2026-10-12 --end 2026-10-23 --min-coverage 3`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCoverage(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run coverage analysis", err)
		}
	},
}
