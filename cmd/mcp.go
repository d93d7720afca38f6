package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/teamcap/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the teamcap MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents run capacity analyses.

Tools: score_workload, compute_velocity, predict_sprint, simulate_remove_person,
simulate_add_scope and analyze_coverage. Each takes a snapshot_path and answers
with JSON. Weights, thresholds and the run store come from this command's config.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runManager)
	},
}
