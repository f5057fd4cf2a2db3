package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []interface{}
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// Clone implements the GitClient interface.
func (m *MockGitClient) Clone(ctx context.Context, cloneURL, dest string) error {
	ret := m.Called(ctx, cloneURL, dest)
	return ret.Error(0)
}

// FetchAll implements the GitClient interface.
func (m *MockGitClient) FetchAll(ctx context.Context, repoPath string) error {
	ret := m.Called(ctx, repoPath)
	return ret.Error(0)
}

// PullAll implements the GitClient interface.
func (m *MockGitClient) PullAll(ctx context.Context, repoPath string) error {
	ret := m.Called(ctx, repoPath)
	return ret.Error(0)
}

// HistoryLog implements the GitClient interface.
func (m *MockGitClient) HistoryLog(ctx context.Context, repoPath string, scope HistoryScope) ([]byte, error) {
	ret := m.Called(ctx, repoPath, scope)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// NumstatByAuthor implements the GitClient interface.
func (m *MockGitClient) NumstatByAuthor(ctx context.Context, repoPath string, email string, scope HistoryScope) ([]byte, error) {
	ret := m.Called(ctx, repoPath, email, scope)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
