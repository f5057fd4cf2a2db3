// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitcontrib/schema"
)

// GitClient defines the necessary operations for contributor analysis.
// This allows the core analysis logic to be tested without needing a real
// git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its output. Its use should be
	// minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Repository Acquisition ---

	// Clone materializes a fresh working copy of cloneURL at dest.
	Clone(ctx context.Context, cloneURL, dest string) error

	// FetchAll refreshes all remotes of an existing working copy.
	FetchAll(ctx context.Context, repoPath string) error

	// PullAll fast-forwards all local branches of an existing working copy.
	PullAll(ctx context.Context, repoPath string) error

	// --- History Streams ---

	// HistoryLog returns the raw non-merge commit log, one line per commit
	// in the form <hash>|<name>|<email>|<epoch-seconds>, constrained by the
	// given scope.
	HistoryLog(ctx context.Context, repoPath string, scope HistoryScope) ([]byte, error)

	// NumstatByAuthor returns the raw numstat stream for commits authored
	// by the given email, constrained by the same scope.
	NumstatByAuthor(ctx context.Context, repoPath string, email string, scope HistoryScope) ([]byte, error)
}

// HistoryScope constrains which commits a history stream covers. Filtering
// happens in git, before the aggregation core ever sees a record.
type HistoryScope struct {
	Branch    string // Revision to walk; defaults to HEAD upstream of here
	Since     string // Inclusive lower date bound (YYYY-MM-DD), empty = all time
	Until     string // Inclusive upper date bound (YYYY-MM-DD), empty = now
	PathScope string // Restrict to commits touching this subdirectory
}

// RunStore defines the interface for tracking analysis runs and storing
// contributor tables. This allows the store to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the analysis run with completion data.
	EndRun(runID int64, endTime time.Time, totalCommits, totalContributors int) error

	// RecordContributor stores one contributor aggregate for a run.
	RecordContributor(runID int64, agg schema.ContributorAggregate) error

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllContributors returns every recorded contributor row.
	GetAllContributors() ([]schema.ContributorRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager exposes the configured persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}
