// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/teamcap/internal/contract"
)

// NewMCPServer initializes and configures the teamcap MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RunManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Team Capacity Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_workload ---
	s.AddTool(mcp.NewTool("score_workload",
		mcp.WithDescription("Score the workload of every team member and summarize team balance."),
		snapshotPathArg(),
		mcp.WithString("team", mcp.Description("Team whose thresholds apply (defaults to the snapshot's team).")),
	), h.handleScoreWorkload)

	// --- 2. Tool: compute_velocity ---
	s.AddTool(mcp.NewTool("compute_velocity",
		mcp.WithDescription("Compute velocity statistics and trend from the sprint history."),
		snapshotPathArg(),
	), h.handleComputeVelocity)

	// --- 3. Tool: predict_sprint ---
	s.AddTool(mcp.NewTool("predict_sprint",
		mcp.WithDescription("Forecast sprint completion and rank the risk of incomplete tickets."),
		snapshotPathArg(),
		todayArg(),
	), h.handlePredictSprint)

	// --- 4. Tool: simulate_remove_person ---
	s.AddTool(mcp.NewTool("simulate_remove_person",
		mcp.WithDescription("Simulate a team member becoming unavailable for the rest of the sprint."),
		snapshotPathArg(),
		mcp.WithString("person", mcp.Description("Id of the person to remove."), mcp.Required()),
		todayArg(),
	), h.handleSimulateRemovePerson)

	// --- 5. Tool: simulate_add_scope ---
	s.AddTool(mcp.NewTool("simulate_add_scope",
		mcp.WithDescription("Simulate adding unplanned points to the sprint."),
		snapshotPathArg(),
		mcp.WithNumber("points", mcp.Description("Story points to add (greater than 0)."), mcp.Required()),
		todayArg(),
	), h.handleSimulateAddScope)

	// --- 6. Tool: analyze_coverage ---
	s.AddTool(mcp.NewTool("analyze_coverage",
		mcp.WithDescription("List workdays where PTO leaves the team below its minimum coverage."),
		snapshotPathArg(),
		mcp.WithNumber("min_coverage", mcp.Description("Minimum people available per workday (defaults to the snapshot, then the thresholds).")),
	), h.handleAnalyzeCoverage)

	return s
}

func snapshotPathArg() mcp.ToolOption {
	return mcp.WithString("snapshot_path", mcp.Description("Path to the team snapshot (YAML or JSON)."), mcp.Required())
}

func todayArg() mcp.ToolOption {
	return mcp.WithString("today", mcp.Description("Reference date as YYYY-MM-DD (defaults to the snapshot, then the current date)."))
}

// StartMCPServer starts the teamcap MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RunManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
