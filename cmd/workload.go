package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// workloadCmd scores every team member and summarizes team balance.
var workloadCmd = &cobra.Command{
	Use:   "workload <snapshot>",
	Short: "Score the workload of every team member.",
	Long: `Turn each person's activity counts into a workload percentage and summarize the team.

Each metric contributes value * weight / max_value, scaled to percent, so:
- Below the at-risk threshold (default 80) a person is healthy
- From at-risk up to the overload threshold (default 100) they are at capacity
- At or above the overload threshold they are overloaded

The summary adds the team average, its standard deviation, whether the team is
balanced and which overloaded people could hand work to a healthy teammate.

Metrics missing from the snapshot count as 0 and are reported as warnings.

Examples:
  # Score the team described by a snapshot
  teamcap workload team.yaml

  # Apply the thresholds configured for another team
  teamcap workload team.yaml --team mobile

  # Export scores to CSV for tracking
  teamcap workload team.yaml --output csv --output-file workload.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWorkload(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run workload analysis", err)
		}
	},
}
