package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
)

// whatifCmd groups the sprint simulations.
var whatifCmd = &cobra.Command{
	Use:   "whatif",
	Short: "Simulate changes to the sprint and compare forecasts.",
	Long: `Run a what-if simulation against the current sprint and compare the modified
forecast with the baseline.

Subcommands:
  remove-person - a team member is out for the rest of the sprint
  add-scope     - unplanned work lands in the sprint`,
}

// removePersonCmd simulates losing a team member.
var removePersonCmd = &cobra.Command{
	Use:   "remove-person <snapshot>",
	Short: "Simulate a team member becoming unavailable.",
	Long: `Simulate losing a team member for the rest of the sprint.

Their incomplete tickets become blocked and unassigned, the sprint is forecast
again and the least loaded teammate is suggested to pick up the work.

Examples:
  # What happens if bob is out?
  teamcap whatif remove-person team.yaml --person bob`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRemovePerson(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run remove-person simulation", err)
		}
	},
}

// addScopeCmd simulates unplanned work.
var addScopeCmd = &cobra.Command{
	Use:   "add-scope <snapshot>",
	Short: "Simulate unplanned points landing in the sprint.",
	Long: `Simulate adding an unassigned todo ticket to the sprint.

The sprint total grows by --points and the sprint is forecast again.

Examples:
  # What happens if 8 points of urgent work arrive?
  teamcap whatif add-scope team.yaml --points 8`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAddScope(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot run add-scope simulation", err)
		}
	},
}
