package cmd

import (
	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Gitcontrib MCP server",
	Long:  `Launch an MCP server that allows AI agents to run contributor analysis via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The MCP server receives its repo reference per request, so only the
		// ambient settings are loaded here. Stdio is reserved for the protocol.
		if err := loadConfigFile(); err != nil {
			return err
		}
		cfg.CacheDir = viper.GetString("cache-dir")
		if cfg.CacheDir == "" {
			cfg.CacheDir = contract.GetDefaultCacheDir()
		}
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitClient)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
