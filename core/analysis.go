package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/internal/mirror"
	"github.com/huangsam/gitcontrib/internal/outwriter"
	"github.com/huangsam/gitcontrib/schema"
)

// progressInterval controls how often the inline progress line refreshes.
const progressInterval = 100

// AnalysisResult carries everything a caller needs after a completed run.
type AnalysisResult struct {
	Table     schema.ContributorTable
	RepoPath  string
	StartTime time.Time
	Duration  time.Duration
}

// RunAnalysis materializes a local working copy of the configured repository,
// obtains its history stream, aggregates contributors, and returns the
// ranked table. Rendering and run tracking stay with the callers so that MCP
// and CLI entry points can share this path.
func RunAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*AnalysisResult, error) {
	started := time.Now()

	mirrors := mirror.NewManager(cfg.CacheDir, client)
	repoPath, err := mirrors.Ensure(ctx, cfg.CloneURL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare repository %q: %w", cfg.CloneURL, err)
	}

	table, err := AggregateRepository(ctx, cfg, client, repoPath)
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{
		Table:     table,
		RepoPath:  repoPath,
		StartTime: started,
		Duration:  time.Since(started),
	}, nil
}

// AggregateRepository runs the two history folds against an existing local
// working copy and returns the ranked contributor table.
func AggregateRepository(ctx context.Context, cfg *contract.Config, client contract.GitClient, repoPath string) (schema.ContributorTable, error) {
	scope := cfg.HistoryScope()

	raw, err := client.HistoryLog(ctx, repoPath, scope)
	if err != nil {
		return nil, err
	}

	commits, err := ParseCommitLog(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Found %d commits to analyze\n", len(commits))

	var volumes map[schema.Identity][]schema.ChangeVolumeRecord
	if cfg.LineStats {
		volumes, err = collectChangeVolumes(ctx, cfg, client, repoPath, commits)
		if err != nil {
			return nil, err
		}
	}

	return Aggregate(commits, volumes, stderrProgress), nil
}

// collectChangeVolumes fetches and parses one numstat stream per distinct
// identity. Cost is proportional to distinct identity count times history
// size; the per-identity filtered query is why --line-stats is the slow
// path.
func collectChangeVolumes(ctx context.Context, cfg *contract.Config, client contract.GitClient, repoPath string, commits []schema.CommitRecord) (map[schema.Identity][]schema.ChangeVolumeRecord, error) {
	scope := cfg.HistoryScope()

	// Ordered walk keeps the fetch order deterministic for identical input.
	var identities []schema.Identity
	seen := make(map[schema.Identity]struct{})
	for _, c := range commits {
		if _, ok := seen[c.Author]; ok {
			continue
		}
		seen[c.Author] = struct{}{}
		identities = append(identities, c.Author)
	}
	fmt.Fprintf(os.Stderr, "Gathering line statistics for %d contributors\n", len(identities))

	volumes := make(map[schema.Identity][]schema.ChangeVolumeRecord, len(identities))
	for i, identity := range identities {
		raw, err := client.NumstatByAuthor(ctx, repoPath, identity.Email, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to collect line statistics for %s: %w", identity.Email, err)
		}
		records, err := ParseNumstat(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		volumes[identity] = records
		fmt.Fprintf(os.Stderr, "\r  [%d/%d] %s", i+1, len(identities), identity.Name)
	}
	if len(identities) > 0 {
		fmt.Fprintln(os.Stderr)
	}

	return volumes, nil
}

// stderrProgress prints an inline "processed k/n" line. It is wired into the
// aggregation as a callback so the fold itself stays side-effect free.
func stderrProgress(processed, total int) {
	if total == 0 {
		return
	}
	if processed%progressInterval != 0 && processed != total {
		return
	}
	pct := processed * 100 / total
	fmt.Fprintf(os.Stderr, "\r  Processed %d/%d commits (%d%%)", processed, total, pct)
	if processed == total {
		fmt.Fprintln(os.Stderr)
	}
}

// RecordRun persists the completed run and its contributor table. Tracking
// failures degrade to warnings; they never fail the analysis itself.
func RecordRun(store contract.RunStore, cfg *contract.Config, result *AnalysisResult) {
	if store == nil {
		return
	}

	configParams := map[string]any{
		"repo_ref":   cfg.RepoRef,
		"clone_url":  cfg.CloneURL,
		"branch":     cfg.Branch,
		"path_scope": cfg.PathScope,
		"since":      cfg.Since,
		"until":      cfg.Until,
		"line_stats": cfg.LineStats,
	}

	runID, err := store.BeginRun(result.StartTime, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	for _, agg := range result.Table {
		if err := store.RecordContributor(runID, agg); err != nil {
			contract.LogWarn("Failed to record contributor", err)
			return
		}
	}
	if err := store.EndRun(runID, time.Now(), result.Table.TotalCommits(), len(result.Table)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// ExecuteAnalysis is the CLI entry point: run the analysis, branch on the
// distinct zero-contributor outcome, record the run, and render the report.
func ExecuteAnalysis(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.StoreManager) error {
	result, err := RunAnalysis(ctx, cfg, client)
	if err != nil {
		return err
	}

	if len(result.Table) == 0 {
		fmt.Fprintln(os.Stderr, "No contributors matched the requested criteria.")
		return nil
	}
	fmt.Fprintf(os.Stderr, "Found %d contributors in %v\n", len(result.Table), result.Duration.Round(time.Millisecond))

	if mgr != nil {
		RecordRun(mgr.GetRunStore(), cfg, result)
	}

	table := result.Table
	if cfg.ResultLimit > 0 && len(table) > cfg.ResultLimit {
		table = table[:cfg.ResultLimit]
	}

	return outwriter.WriteContributors(table, cfg)
}
