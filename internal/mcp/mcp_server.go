// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitcontrib MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, client contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Contributor Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		client:  client,
	}

	// --- 1. Tool: analyze_contributors ---
	s.AddTool(mcp.NewTool("analyze_contributors",
		mcp.WithDescription("Analyze git history to rank contributors by commit count for a repository."),
		mcp.WithString("repo_ref", mcp.Description("Repository reference: a local path, a clone URL, or a GitHub web URL."), mcp.Required()),
		mcp.WithString("branch", mcp.Description("Revision to analyze. Defaults to HEAD or the branch embedded in the URL.")),
		mcp.WithString("since", mcp.Description("Inclusive lower date bound (YYYY-MM-DD).")),
		mcp.WithString("until", mcp.Description("Inclusive upper date bound (YYYY-MM-DD).")),
		mcp.WithString("path_scope", mcp.Description("Restrict analysis to a subdirectory.")),
		mcp.WithBoolean("line_stats", mcp.Description("Collect per-contributor line statistics (slower).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of contributors returned.")),
	), h.handleAnalyzeContributors)

	// --- 2. Tool: normalize_repo_ref ---
	s.AddTool(mcp.NewTool("normalize_repo_ref",
		mcp.WithDescription("Normalize a GitHub web URL into a clone URL plus the branch and path scope it encodes."),
		mcp.WithString("repo_ref", mcp.Description("The repository reference to normalize."), mcp.Required()),
	), h.handleNormalizeRepoRef)

	return s
}

// StartMCPServer starts the gitcontrib MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, client contract.GitClient) error {
	s := NewMCPServer(baseCfg, client)
	return server.ServeStdio(s)
}
