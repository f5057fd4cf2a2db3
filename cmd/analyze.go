package cmd

import (
	"github.com/huangsam/gitcontrib/core"
	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/internal/iocache"
	"github.com/spf13/cobra"
)

// analyzeCmd performs contributor analysis for a repository reference.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-ref]",
	Short: "Rank contributors of a repository by commit count.",
	Long: `Walk the Git history of a repository and rank its contributors.

Accepts a local path, a clone URL, or a GitHub web URL. Web URLs that point
at a subdirectory (a /tree/ or /blob/ view) are normalized automatically:
the branch and path encoded in the URL scope the analysis.

Remote repositories are cloned once into a local mirror cache and updated
on subsequent runs, so repeat analyses stay fast.

Each contributor is identified by the exact (name, email) pair recorded in
their commits. Commits are counted per identity along with first and last
commit dates; line statistics are collected on request.

Examples:
  # Analyze the repository in the current directory
  gitcontrib analyze

  # Analyze a GitHub subdirectory on a specific branch
  gitcontrib analyze https://github.com/golang/go/tree/master/src/fmt

  # Top ten contributors with line statistics
  gitcontrib analyze --line-stats --limit 10

  # Restrict to a date window
  gitcontrib analyze --since 2024-01-01 --until 2024-06-30

  # Export findings to CSV for tracking
  gitcontrib analyze --output csv --output-file contributors.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalysis(rootCtx, cfg, gitClient, iocache.Manager); err != nil {
			contract.LogFatal("Cannot run contributor analysis", err)
		}
	},
}
