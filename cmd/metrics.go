package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// metricsCmd displays the active scoring model.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the workload formula, weights and thresholds in effect",
	Long: `Show how workload scores are computed with the current configuration.

Provides complete transparency into scoring, including:
- Every metric with its weight, max value and maximum contribution
- The formula for the workload score
- Global and per-team thresholds
- Ticket risk rules and calendar settings

No snapshot is read - this is purely informational.

Examples:
  # Show the default scoring model
  teamcap metrics

  # View with custom weights from a config file
  teamcap metrics --config .teamcap.yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
