package core

import (
	"sort"

	"github.com/huangsam/gitcontrib/schema"
)

// ProgressFunc reports incremental aggregation progress as (processed, total).
// It is an observable side effect of the caller, not of the aggregation
// contract: passing nil, or any callback at all, never changes the result.
type ProgressFunc func(processed, total int)

// Aggregate folds a sequence of commit records into per-identity aggregates
// and returns them ranked by commit count descending. Identities with equal
// commit counts keep their first-appearance order in the commit stream, so
// output is deterministic for identical input.
//
// volumes optionally carries per-identity change-volume records; identities
// with no entry keep zero line sums. An empty commit sequence yields an
// empty table, not an error.
func Aggregate(commits []schema.CommitRecord, volumes map[schema.Identity][]schema.ChangeVolumeRecord, progress ProgressFunc) schema.ContributorTable {
	index := make(map[schema.Identity]int, len(commits))
	table := make(schema.ContributorTable, 0)

	total := len(commits)
	for i, c := range commits {
		pos, ok := index[c.Author]
		if !ok {
			pos = len(table)
			index[c.Author] = pos
			table = append(table, schema.ContributorAggregate{
				Identity:    c.Author,
				FirstCommit: c.Timestamp,
				LastCommit:  c.Timestamp,
			})
		}

		agg := &table[pos]
		agg.CommitCount++
		if c.Timestamp.Before(agg.FirstCommit) {
			agg.FirstCommit = c.Timestamp
		}
		if c.Timestamp.After(agg.LastCommit) {
			agg.LastCommit = c.Timestamp
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	if volumes != nil {
		for identity, records := range volumes {
			pos, ok := index[identity]
			if !ok {
				// Change volume for an identity absent from the commit
				// stream; nothing to attribute it to.
				continue
			}
			agg := &table[pos]
			for _, r := range records {
				agg.LinesAdded += r.Added
				agg.LinesDeleted += r.Deleted
			}
		}
	}

	// Stable sort keeps first-appearance order between equal commit counts.
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].CommitCount > table[j].CommitCount
	})

	return table
}
