package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() schema.ContributorTable {
	return schema.ContributorTable{
		{
			Identity:     schema.Identity{Name: "Alice", Email: "alice@example.com"},
			CommitCount:  10,
			FirstCommit:  time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			LastCommit:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			LinesAdded:   120,
			LinesDeleted: 30,
		},
		{
			Identity:    schema.Identity{Name: "Bob", Email: "bob@example.com"},
			CommitCount: 4,
			FirstCommit: time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC),
			LastCommit:  time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC),
		},
	}
}

// TestWriteContributorCSV tests the delimited report.
func TestWriteContributorCSV(t *testing.T) {
	t.Run("fixed header and rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeContributorCSV(&buf, sampleTable(), false))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, csvHeader, records[0])
		assert.Equal(t, []string{"Alice", "alice@example.com", "10", "120", "30", "2023-01-02", "2024-05-06"}, records[1])
		assert.Equal(t, "Bob", records[2][0])
	})

	t.Run("linkedin column appended on request", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeContributorCSV(&buf, sampleTable(), true))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, profileSearchHeader, records[0][len(records[0])-1])
		assert.Contains(t, records[1][len(records[1])-1], "linkedin.com/search")
	})

	t.Run("empty table writes header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeContributorCSV(&buf, nil, false))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
	})
}

// TestWriteJSON tests the JSON report shape.
func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleTable()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	identity := decoded[0]["identity"].(map[string]any)
	assert.Equal(t, "Alice", identity["name"])
	assert.Equal(t, float64(10), decoded[0]["commit_count"])
}

// TestWriteContributorTable tests the terminal rendering.
func TestWriteContributorTable(t *testing.T) {
	cfg := &contract.Config{UseColors: false}

	var buf bytes.Buffer
	require.NoError(t, writeContributorTable(&buf, sampleTable(), cfg))

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, out, "Showing 2 contributors (total commits: 14)")
}

// TestProfileSearchURL tests people-search link synthesis.
func TestProfileSearchURL(t *testing.T) {
	url := ProfileSearchURL("Jane van Doe")
	assert.Equal(t, "https://www.linkedin.com/search/results/people/?keywords=Jane+van+Doe", url)
}
