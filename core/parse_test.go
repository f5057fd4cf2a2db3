package core

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gitcontrib/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseCommitLine tests single history line parsing.
func TestParseCommitLine(t *testing.T) {
	t.Run("well-formed line", func(t *testing.T) {
		rec, err := ParseCommitLine("abc123|Jane Doe|jane@example.com|1700000000")
		require.NoError(t, err)
		assert.Equal(t, "abc123", rec.Hash)
		assert.Equal(t, "Jane Doe", rec.Author.Name)
		assert.Equal(t, "jane@example.com", rec.Author.Email)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), rec.Timestamp)
	})

	t.Run("too few fields", func(t *testing.T) {
		_, err := ParseCommitLine("abc123|Jane Doe|jane@example.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 4 fields")
	})

	t.Run("too many fields", func(t *testing.T) {
		// A pipe inside the name shifts every following field
		_, err := ParseCommitLine("abc123|Jane|Doe|jane@example.com|1700000000")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 4 fields")
	})

	t.Run("non-integer timestamp", func(t *testing.T) {
		_, err := ParseCommitLine("abc123|Jane Doe|jane@example.com|yesterday")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad timestamp")
	})

	t.Run("empty identity fields preserved", func(t *testing.T) {
		rec, err := ParseCommitLine("abc123|||1700000000")
		require.NoError(t, err)
		assert.Equal(t, schema.Identity{}, rec.Author)
	})
}

// TestParseCommitLog tests whole-stream history parsing.
func TestParseCommitLog(t *testing.T) {
	t.Run("multiple lines with blanks", func(t *testing.T) {
		stream := strings.Join([]string{
			"aaa|Alice|alice@example.com|100",
			"",
			"bbb|Bob|bob@example.com|200",
			"   ",
			"ccc|Alice|alice@example.com|300",
		}, "\n")

		commits, err := ParseCommitLog(strings.NewReader(stream))
		require.NoError(t, err)
		require.Len(t, commits, 3)
		assert.Equal(t, "aaa", commits[0].Hash)
		assert.Equal(t, "ccc", commits[2].Hash)
	})

	t.Run("empty stream yields no commits", func(t *testing.T) {
		commits, err := ParseCommitLog(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, commits)
	})

	t.Run("first malformed line aborts", func(t *testing.T) {
		stream := "aaa|Alice|alice@example.com|100\nnot a commit line\n"
		_, err := ParseCommitLog(strings.NewReader(stream))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed history line")
	})
}

// TestParseNumstat tests change-volume stream parsing.
func TestParseNumstat(t *testing.T) {
	t.Run("text file entries", func(t *testing.T) {
		stream := "10\t3\tmain.go\n0\t42\tlegacy/old.go\n"
		records, err := ParseNumstat(strings.NewReader(stream))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, schema.ChangeVolumeRecord{Added: 10, Deleted: 3}, records[0])
		assert.Equal(t, schema.ChangeVolumeRecord{Added: 0, Deleted: 42}, records[1])
	})

	t.Run("binary markers skipped", func(t *testing.T) {
		stream := "10\t3\tmain.go\n-\t-\tlogo.png\n5\t1\tutil.go\n"
		records, err := ParseNumstat(strings.NewReader(stream))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, 10, records[0].Added)
		assert.Equal(t, 5, records[1].Added)
	})

	t.Run("garbage lines skipped not fatal", func(t *testing.T) {
		stream := "warning: something odd\n7\t2\ta.go\ntotally unrelated\n"
		records, err := ParseNumstat(strings.NewReader(stream))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, schema.ChangeVolumeRecord{Added: 7, Deleted: 2}, records[0])
	})

	t.Run("rename path with tabs still parses counts", func(t *testing.T) {
		stream := "3\t1\tpkg/{old => new}/file.go\textra\n"
		records, err := ParseNumstat(strings.NewReader(stream))
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("empty stream yields no records", func(t *testing.T) {
		records, err := ParseNumstat(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
