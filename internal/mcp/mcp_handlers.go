package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/gitcontrib/core"
	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/internal/gitref"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	client  contract.GitClient
}

func (h *toolHandler) handleAnalyzeContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := &contract.ConfigRawInput{
		RepoRefStr: request.GetString("repo_ref", ""),
		Branch:     request.GetString("branch", ""),
		Since:      request.GetString("since", ""),
		Until:      request.GetString("until", ""),
		Scope:      request.GetString("path_scope", ""),
		LineStats:  request.GetBool("line_stats", false),
		Limit:      request.GetInt("limit", 0),

		// Ambient settings carry over from the server's own config.
		CacheDir:   h.baseCfg.CacheDir,
		Output:     "table",
		RunBackend: "none",
	}

	cfg := h.baseCfg.Clone()
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}

	result, err := core.RunAnalysis(ctx, cfg, h.client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	table := result.Table
	if cfg.ResultLimit > 0 && len(table) > cfg.ResultLimit {
		table = table[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(table, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleNormalizeRepoRef(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refStr := request.GetString("repo_ref", "")
	if refStr == "" {
		return mcp.NewToolResultError("repo_ref is required"), nil
	}

	ref := gitref.Normalize(refStr)
	payload := map[string]string{
		"clone_url":  ref.CloneURL,
		"branch":     ref.Branch,
		"path_scope": ref.PathScope,
	}
	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
