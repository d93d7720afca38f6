package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// checkCmd focused on CI/CD capacity gating.
var checkCmd = &cobra.Command{
	Use:   "check <snapshot>",
	Short: "Enforce capacity limits for CI/CD pipelines (fails on violations)",
	Long: `Check the snapshot against capacity limits and exit non-zero on any violation.

The check fails when:
- Any team member is overloaded
- The sprint completion probability is below --min-probability (default 0.70)
- Any coverage day has nobody available

Checks whose data is absent from the snapshot are skipped with a warning.

Examples:
  # Gate a planning pipeline
  teamcap check team.yaml

  # Stricter gate with custom thresholds
  teamcap check team.yaml --min-probability 0.85 --thresholds-override "overload:90"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Capacity check failed", err)
		}
	},
}
