package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// historyFormat produces one line per commit: hash, author name, author
// email, author timestamp in epoch seconds. The pipe separator is not
// expected to appear in names or emails.
const historyFormat = "--format=%H|%an|%ae|%at"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// Clone implements the GitClient interface.
func (c *LocalGitClient) Clone(ctx context.Context, cloneURL, dest string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", cloneURL, dest)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone of %q failed: %s", cloneURL, strings.TrimSpace(string(out)))
	}
	return nil
}

// FetchAll implements the GitClient interface.
func (c *LocalGitClient) FetchAll(ctx context.Context, repoPath string) error {
	_, err := c.Run(ctx, repoPath, "fetch", "--all")
	return err
}

// PullAll implements the GitClient interface.
func (c *LocalGitClient) PullAll(ctx context.Context, repoPath string) error {
	_, err := c.Run(ctx, repoPath, "pull", "--all")
	return err
}

// HistoryLog implements the GitClient interface.
func (c *LocalGitClient) HistoryLog(ctx context.Context, repoPath string, scope HistoryScope) ([]byte, error) {
	args := []string{"log", scope.branchOrDefault(), "--no-merges", historyFormat}
	args = appendScopeArgs(args, scope)
	return c.Run(ctx, repoPath, args...)
}

// NumstatByAuthor implements the GitClient interface.
func (c *LocalGitClient) NumstatByAuthor(ctx context.Context, repoPath string, email string, scope HistoryScope) ([]byte, error) {
	args := []string{
		"log", scope.branchOrDefault(), "--no-merges", "--numstat",
		"--author=" + email, "--format=",
	}
	args = appendScopeArgs(args, scope)
	return c.Run(ctx, repoPath, args...)
}

// branchOrDefault returns the revision to walk.
func (s HistoryScope) branchOrDefault() string {
	if s.Branch == "" {
		return "HEAD"
	}
	return s.Branch
}

// appendScopeArgs appends the date-range and path-scope filters shared by
// the history and numstat invocations.
func appendScopeArgs(args []string, scope HistoryScope) []string {
	if scope.Since != "" {
		args = append(args, "--since="+scope.Since)
	}
	if scope.Until != "" {
		args = append(args, "--until="+scope.Until)
	}
	if scope.PathScope != "" {
		args = append(args, "--", scope.PathScope)
	}
	return args
}
