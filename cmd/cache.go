package cmd

import (
	"fmt"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/internal/iocache"
	"github.com/huangsam/gitcontrib/internal/mirror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for mirror cache operations.
// This is used by commands that need the mirror root without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.CacheDir = viper.GetString("cache-dir")
	if cfg.CacheDir == "" {
		cfg.CacheDir = contract.GetDefaultCacheDir()
	}

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on mirror cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by the analyze command. This avoids repo reference
// validation and persistence setup for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached repository mirrors (improves performance)",
	Long: `Manage the local mirror cache that speeds up repeated analyses.

Gitcontrib clones remote repositories once into a cache directory and only
fetches updates on later runs. This avoids a fresh clone on every analysis.

Subcommands:
  status - Show cached mirrors and disk usage
  clear  - Remove all cached mirrors

Examples:
  # Check mirror cache status
  gitcontrib cache status

  # Clear the mirror cache
  gitcontrib cache clear`,
}

// cacheClearCmd clears the mirror cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached repository mirrors",
	Long: `Delete every cached repository mirror from the cache directory.

Use this when:
- Upstream history was rewritten (rebase, force push)
- A cached clone may be stale or corrupted
- Disk space needs to be reclaimed

Cleared repositories are re-cloned on the next analysis that needs them.

Examples:
  # Clear the default cache directory
  gitcontrib cache clear

  # Clear a custom cache directory
  gitcontrib cache clear --cache-dir /tmp/gitcontrib-mirrors`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		mgr := mirror.NewManager(cfg.CacheDir, gitClient)
		if err := mgr.Clear(); err != nil {
			contract.LogFatal("Failed to clear mirror cache", err)
		}
		fmt.Println("Mirror cache cleared successfully.")
	},
}

// cacheStatusCmd shows mirror cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cached mirrors and disk usage",
	Long: `Show detailed information about the repository mirror cache.

Displays:
- Cache root directory
- Each cached mirror with its size and last update time
- Total disk usage

Examples:
  # Check mirror cache status
  gitcontrib cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		mgr := mirror.NewManager(cfg.CacheDir, gitClient)
		status, err := mgr.Status()
		if err != nil {
			contract.LogFatal("Failed to get mirror cache status", err)
		}
		iocache.PrintMirrorStatus(status)
	},
}
