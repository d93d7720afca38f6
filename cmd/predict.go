package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// predictCmd forecasts the current sprint.
var predictCmd = &cobra.Command{
	Use:   "predict <snapshot>",
	Short: "Forecast whether the current sprint will complete.",
	Long: `Forecast the current sprint from historical velocity.

Projects the points the team will finish by the end date, estimates the
probability of completing everything committed and ranks every incomplete
ticket by risk (late todos, large tickets, blocked or unassigned work).

The reference date comes from --today, then the snapshot, then the clock.

Examples:
  # Forecast the sprint in the snapshot
  teamcap predict team.yaml

  # Forecast as of a specific day
  teamcap predict team.yaml --today 2026-10-13

  # Export ticket risks to CSV
  teamcap predict team.yaml --output csv --output-file risks.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePredict(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run sprint prediction", err)
		}
	},
}
