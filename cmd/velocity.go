package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// velocityCmd summarizes the sprint history.
var velocityCmd = &cobra.Command{
	Use:   "velocity <snapshot>",
	Short: "Show velocity statistics from past sprints.",
	Long: `Summarize the completed points of past sprints.

Reports the average, median, population standard deviation, min and max, a 95%
confidence range around the average and the trend of recent sprints against
earlier ones. With fewer than 3 sprints the trend is reported as stable and
flagged as low confidence.

Examples:
  # Velocity of the snapshot's history
  teamcap velocity team.yaml

  # Machine-readable output
  teamcap velocity team.yaml --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteVelocity(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run velocity analysis", err)
		}
	},
}
