// Package parquet provides data structures and functions for exporting
// contributor analysis data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitcontrib/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the contrib_analysis_runs database table.
type AnalysisRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the analysis began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalCommits is the number of commit records aggregated in this run
	TotalCommits int32 `parquet:"total_commits,snappy"`

	// TotalContributors is the number of distinct identities found
	TotalContributors int32 `parquet:"total_contributors,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ContributorRow represents one contributor aggregate in an analysis.
// This struct maps to the contrib_contributors database table.
type ContributorRow struct {
	// RunID references the parent analysis run (0 for direct exports)
	RunID int64 `parquet:"run_id,snappy"`

	// Name is the contributor display name exactly as committed
	Name string `parquet:"name,snappy"`

	// Email is the contributor email exactly as committed
	Email string `parquet:"email,snappy"`

	// CommitCount is the number of commits attributed to this identity
	CommitCount int32 `parquet:"commit_count,snappy"`

	// LinesAdded is the total lines added across all counted commits
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesDeleted is the total lines deleted across all counted commits
	LinesDeleted int32 `parquet:"lines_deleted,snappy"`

	// FirstCommit is the timestamp of the identity's earliest commit
	FirstCommit time.Time `parquet:"first_commit,snappy"`

	// LastCommit is the timestamp of the identity's latest commit
	LastCommit time.Time `parquet:"last_commit,snappy"`
}

// ConvertContributorTable converts an in-memory contributor table to
// Parquet rows.
func ConvertContributorTable(table schema.ContributorTable) []ContributorRow {
	rows := make([]ContributorRow, 0, len(table))
	for _, agg := range table {
		rows = append(rows, ContributorRow{
			Name:         agg.Identity.Name,
			Email:        agg.Identity.Email,
			CommitCount:  int32(agg.CommitCount),
			LinesAdded:   int32(agg.LinesAdded),
			LinesDeleted: int32(agg.LinesDeleted),
			FirstCommit:  agg.FirstCommit,
			LastCommit:   agg.LastCommit,
		})
	}
	return rows
}

// ConvertRunRecords converts run-store rows to Parquet rows.
func ConvertRunRecords(records []schema.RunRecord) []AnalysisRun {
	runs := make([]AnalysisRun, 0, len(records))
	for _, r := range records {
		runs = append(runs, AnalysisRun{
			RunID:             r.RunID,
			StartTime:         r.StartTime,
			EndTime:           r.EndTime,
			RunDurationMs:     r.RunDurationMs,
			TotalCommits:      r.TotalCommits,
			TotalContributors: r.TotalContributors,
			ConfigParams:      r.ConfigParams,
		})
	}
	return runs
}

// ConvertContributorRecords converts run-store contributor rows to Parquet rows.
func ConvertContributorRecords(records []schema.ContributorRecord) []ContributorRow {
	rows := make([]ContributorRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ContributorRow{
			RunID:        r.RunID,
			Name:         r.Name,
			Email:        r.Email,
			CommitCount:  r.CommitCount,
			LinesAdded:   r.LinesAdded,
			LinesDeleted: r.LinesDeleted,
			FirstCommit:  r.FirstCommit,
			LastCommit:   r.LastCommit,
		})
	}
	return rows
}

// WriteContributorsParquet writes contributor rows to a Parquet file.
func WriteContributorsParquet(data []ContributorRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ContributorRow struct tags
	writer := parquet.NewGenericWriter[ContributorRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[AnalysisRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
