package core

import (
	"context"
	"testing"
	"time"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestAggregateRepository tests the history fold against a mocked git client.
func TestAggregateRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("commit counts without line stats", func(t *testing.T) {
		mockClient := &contract.MockGitClient{}
		cfg := &contract.Config{Branch: "HEAD"}

		history := []byte(
			"aaa|Alice|alice@example.com|100\n" +
				"bbb|Bob|bob@example.com|200\n" +
				"ccc|Alice|alice@example.com|300\n")
		mockClient.On("HistoryLog", ctx, "/repo", cfg.HistoryScope()).Return(history, nil)

		table, err := AggregateRepository(ctx, cfg, mockClient, "/repo")
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, "Alice", table[0].Identity.Name)
		assert.Equal(t, 2, table[0].CommitCount)
		assert.Zero(t, table[0].LinesAdded, "line stats are off by default")

		mockClient.AssertNotCalled(t, "NumstatByAuthor", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("line stats queried once per identity", func(t *testing.T) {
		mockClient := &contract.MockGitClient{}
		cfg := &contract.Config{Branch: "HEAD", LineStats: true}
		scope := cfg.HistoryScope()

		history := []byte(
			"aaa|Alice|alice@example.com|100\n" +
				"bbb|Bob|bob@example.com|200\n" +
				"ccc|Alice|alice@example.com|300\n")
		mockClient.On("HistoryLog", ctx, "/repo", scope).Return(history, nil)
		mockClient.On("NumstatByAuthor", ctx, "/repo", "alice@example.com", scope).
			Return([]byte("10\t2\tmain.go\n-\t-\tlogo.png\n"), nil).Once()
		mockClient.On("NumstatByAuthor", ctx, "/repo", "bob@example.com", scope).
			Return([]byte("1\t1\tutil.go\n"), nil).Once()

		table, err := AggregateRepository(ctx, cfg, mockClient, "/repo")
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, 10, table[0].LinesAdded)
		assert.Equal(t, 2, table[0].LinesDeleted)
		assert.Equal(t, 1, table[1].LinesAdded)

		mockClient.AssertExpectations(t)
	})

	t.Run("empty history yields empty table", func(t *testing.T) {
		mockClient := &contract.MockGitClient{}
		cfg := &contract.Config{Branch: "HEAD"}
		mockClient.On("HistoryLog", ctx, "/repo", cfg.HistoryScope()).Return([]byte(""), nil)

		table, err := AggregateRepository(ctx, cfg, mockClient, "/repo")
		require.NoError(t, err)
		assert.Empty(t, table)
	})

	t.Run("malformed history aborts", func(t *testing.T) {
		mockClient := &contract.MockGitClient{}
		cfg := &contract.Config{Branch: "HEAD"}
		mockClient.On("HistoryLog", ctx, "/repo", cfg.HistoryScope()).
			Return([]byte("this is not a history line\n"), nil)

		_, err := AggregateRepository(ctx, cfg, mockClient, "/repo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed history line")
	})
}

// TestRecordRun tests that tracking failures never escalate.
func TestRecordRun(t *testing.T) {
	cfg := &contract.Config{RepoRef: "."}
	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	result := &AnalysisResult{
		Table: schema.ContributorTable{
			{Identity: schema.Identity{Name: "Alice", Email: "alice@example.com"}, CommitCount: 2},
		},
		StartTime: started,
		Duration:  2 * time.Second,
	}

	t.Run("nil store is a no-op", func(t *testing.T) {
		RecordRun(nil, cfg, result) // must not panic
	})

	t.Run("happy path records run and contributors", func(t *testing.T) {
		store := newRecordingStore()
		RecordRun(store, cfg, result)
		assert.Equal(t, 1, store.began)
		assert.Equal(t, 1, store.recorded)
		assert.Equal(t, 1, store.ended)
		assert.True(t, store.beganAt.Equal(started), "persisted start must be the run's actual start instant")
	})

	t.Run("begin failure degrades to warning", func(t *testing.T) {
		store := newRecordingStore()
		store.beginErr = assert.AnError
		RecordRun(store, cfg, result) // must not panic
		assert.Zero(t, store.recorded)
		assert.Zero(t, store.ended)
	})
}

// recordingStore is a hand-rolled RunStore that counts lifecycle calls.
type recordingStore struct {
	began    int
	beganAt  time.Time
	recorded int
	ended    int
	beginErr error
}

var _ contract.RunStore = &recordingStore{}

func newRecordingStore() *recordingStore { return &recordingStore{} }

func (s *recordingStore) BeginRun(startTime time.Time, _ map[string]any) (int64, error) {
	if s.beginErr != nil {
		return 0, s.beginErr
	}
	s.began++
	s.beganAt = startTime
	return 1, nil
}

func (s *recordingStore) EndRun(_ int64, _ time.Time, _, _ int) error {
	s.ended++
	return nil
}

func (s *recordingStore) RecordContributor(_ int64, _ schema.ContributorAggregate) error {
	s.recorded++
	return nil
}

func (s *recordingStore) GetAllRuns() ([]schema.RunRecord, error) { return nil, nil }

func (s *recordingStore) GetAllContributors() ([]schema.ContributorRecord, error) {
	return nil, nil
}

func (s *recordingStore) GetStatus() (schema.RunStatus, error) { return schema.RunStatus{}, nil }

func (s *recordingStore) Close() error { return nil }
