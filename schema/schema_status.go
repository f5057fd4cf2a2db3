package schema

import "time"

// RunStatus represents the status of the run store.
type RunStatus struct {
	Backend           string           `json:"backend"`
	Connected         bool             `json:"connected"`
	TotalRuns         int              `json:"total_runs"`
	LastRunID         int64            `json:"last_run_id"`
	LastRunTime       time.Time        `json:"last_run_time"`
	OldestRunTime     time.Time        `json:"oldest_run_time"`
	TotalContributors int              `json:"total_contributors"`
	TableSizes        map[string]int64 `json:"table_sizes"`
}

// MirrorStatus represents the status of the local repository mirror cache.
type MirrorStatus struct {
	Root       string       `json:"root"`
	Mirrors    []MirrorInfo `json:"mirrors"`
	TotalBytes int64        `json:"total_bytes"`
}

// MirrorInfo describes a single cached repository mirror.
type MirrorInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// RunRecord is a row from the contrib_analysis_runs table.
type RunRecord struct {
	RunID             int64
	StartTime         time.Time
	EndTime           *time.Time
	RunDurationMs     *int32
	TotalCommits      int32
	TotalContributors int32
	ConfigParams      *string
}

// ContributorRecord is a row from the contrib_contributors table.
type ContributorRecord struct {
	RunID        int64
	Name         string
	Email        string
	CommitCount  int32
	LinesAdded   int32
	LinesDeleted int32
	FirstCommit  time.Time
	LastCommit   time.Time
}
