// Package schema has configs, models and global variables for all parts of gitcontrib.
package schema

import "time"

// Identity is the composite key identifying a contributor: the display name
// and email address exactly as recorded in each commit. No normalization is
// applied, so two spellings of the same email (differing case, whitespace)
// are distinct identities. That is a documented limitation, not a bug.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommitRecord is one parsed line of the history stream.
type CommitRecord struct {
	Hash      string
	Author    Identity
	Timestamp time.Time
}

// ChangeVolumeRecord is one numstat file-change entry: lines added and
// deleted for a single file in a single commit.
type ChangeVolumeRecord struct {
	Added   int
	Deleted int
}

// ContributorAggregate is the accumulated per-identity statistics.
// FirstCommit <= LastCommit always holds; LinesAdded/LinesDeleted stay zero
// unless change-volume collection was requested.
type ContributorAggregate struct {
	Identity     Identity  `json:"identity"`
	CommitCount  int       `json:"commit_count"`
	FirstCommit  time.Time `json:"first_commit"`
	LastCommit   time.Time `json:"last_commit"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
}

// ContributorTable is the final result: aggregates ordered by commit count
// descending, ties broken by first appearance in the commit stream. Built
// once and never mutated afterwards.
type ContributorTable []ContributorAggregate

// TotalCommits sums commit counts across all aggregates. Always equal to the
// number of commit records fed into the aggregation.
func (t ContributorTable) TotalCommits() int {
	total := 0
	for _, a := range t {
		total += a.CommitCount
	}
	return total
}
