package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/teamcap/core"
	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RunManager
}

// requestConfig clones the base configuration and applies the arguments every tool shares.
// Results always come back as JSON, so the clone is switched to JSON output.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = ""
	cfg.SnapshotPath = request.GetString("snapshot_path", "")
	if cfg.SnapshotPath == "" {
		return nil, errors.New("snapshot_path is required")
	}
	if t := request.GetString("today", ""); t != "" {
		today, err := schema.ParseDate(t)
		if err != nil {
			return nil, err
		}
		cfg.AsOf = today
	}
	return cfg, nil
}

func toolResult(v any) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreWorkload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if team := request.GetString("team", ""); team != "" {
		cfg.Team = team
	}

	summary, _, err := core.GetWorkloadResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("workload scoring failed: %v", err)), nil
	}
	return toolResult(summary)
}

func (h *toolHandler) handleComputeVelocity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	stats, _, err := core.GetVelocityResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("velocity analysis failed: %v", err)), nil
	}
	return toolResult(stats)
}

func (h *toolHandler) handlePredictSprint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	prediction, _, err := core.GetPredictionResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sprint prediction failed: %v", err)), nil
	}
	return toolResult(prediction)
}

func (h *toolHandler) handleSimulateRemovePerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.Person = request.GetString("person", "")

	result, _, err := core.GetRemovePersonResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("simulation failed: %v", err)), nil
	}
	return toolResult(result)
}

func (h *toolHandler) handleSimulateAddScope(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.ScopePoints = request.GetInt("points", 0)

	result, _, err := core.GetAddScopeResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("simulation failed: %v", err)), nil
	}
	return toolResult(result)
}

func (h *toolHandler) handleAnalyzeCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	minCoverage := request.GetInt("min_coverage", 0)
	if minCoverage < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: min_coverage must be at least 0 (received %d)", minCoverage)), nil
	}
	cfg.MinCoverage = minCoverage

	report, _, err := core.GetCoverageResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("coverage analysis failed: %v", err)), nil
	}
	return toolResult(report)
}
