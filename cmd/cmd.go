// Package cmd defines the command-line interface for gitcontrib.
package cmd

import (
	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("branch", "b", "", "Branch or revision to analyze (defaults to HEAD)")
	rootCmd.PersistentFlags().String("scope", "", "Restrict analysis to a subdirectory of the repository")
	rootCmd.PersistentFlags().String("since", "", "Only count commits on or after this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("until", "", "Only count commits on or before this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Bool("line-stats", false, "Collect per-contributor line statistics (slower)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of contributors to display (0 = all)")
	rootCmd.PersistentFlags().Bool("linkedin", true, "Append a LinkedIn people-search link per contributor")
	rootCmd.PersistentFlags().String("cache-dir", "", "Root directory for cached repository mirrors")
	rootCmd.PersistentFlags().String("output", string(schema.TableOut), "Output format: table or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("run-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
