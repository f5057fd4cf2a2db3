// Package mirror manages the local cache of cloned repositories.
package mirror

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/schema"
)

// hashLen is how many hex characters of the clone URL digest go into the
// mirror directory name. Enough to avoid collisions between forks that share
// a repository name.
const hashLen = 12

// Manager owns the mirror root directory and the clone/update lifecycle.
type Manager struct {
	root   string
	client contract.GitClient
}

// NewManager creates a mirror manager rooted at dir.
func NewManager(dir string, client contract.GitClient) *Manager {
	return &Manager{root: dir, client: client}
}

// PathFor computes the mirror directory for a clone URL without touching
// the filesystem.
func (m *Manager) PathFor(cloneURL string) string {
	sum := sha256.Sum256([]byte(cloneURL))
	digest := hex.EncodeToString(sum[:])[:hashLen]

	name := strings.TrimSuffix(cloneURL, "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		name = "repo"
	}

	return filepath.Join(m.root, fmt.Sprintf("%s_%s", name, digest))
}

// Ensure returns a path to an up-to-date working copy of cloneURL, cloning
// it on first use and refreshing it afterwards. When refreshing an existing
// mirror fails it is assumed corrupted: the mirror is removed and cloned
// again exactly once, and a second failure surfaces as a fatal error rather
// than retrying forever.
func (m *Manager) Ensure(ctx context.Context, cloneURL string) (string, error) {
	// A reference that is already a directory on disk is analyzed in place.
	if info, err := os.Stat(cloneURL); err == nil && info.IsDir() {
		return cloneURL, nil
	}

	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create mirror root %q: %w", m.root, err)
	}

	path := m.PathFor(cloneURL)

	if _, err := os.Stat(path); err == nil {
		updateErr := m.update(ctx, path)
		if updateErr == nil {
			return path, nil
		}
		contract.LogWarn(fmt.Sprintf("Mirror update failed for %q, re-cloning", path), updateErr)
		if err := os.RemoveAll(path); err != nil {
			return "", fmt.Errorf("failed to remove corrupted mirror %q: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to inspect mirror %q: %w", path, err)
	}

	if err := m.client.Clone(ctx, cloneURL, path); err != nil {
		return "", err
	}
	return path, nil
}

// update refreshes an existing mirror.
func (m *Manager) update(ctx context.Context, path string) error {
	if err := m.client.FetchAll(ctx, path); err != nil {
		return err
	}
	return m.client.PullAll(ctx, path)
}

// Status reports the mirrors currently cached under the root.
func (m *Manager) Status() (schema.MirrorStatus, error) {
	status := schema.MirrorStatus{Root: m.root}

	entries, err := os.ReadDir(m.root)
	if os.IsNotExist(err) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to read mirror root %q: %w", m.root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(m.root, entry.Name())
		size, err := dirSize(path)
		if err != nil {
			return status, err
		}
		info, err := entry.Info()
		if err != nil {
			return status, err
		}
		status.Mirrors = append(status.Mirrors, schema.MirrorInfo{
			Name:      entry.Name(),
			Path:      path,
			SizeBytes: size,
			ModTime:   info.ModTime(),
		})
		status.TotalBytes += size
	}
	return status, nil
}

// Clear removes every cached mirror under the root.
func (m *Manager) Clear() error {
	entries, err := os.ReadDir(m.root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read mirror root %q: %w", m.root, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(m.root, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove mirror %q: %w", entry.Name(), err)
		}
	}
	return nil
}

// dirSize sums the sizes of all regular files under path.
func dirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to measure mirror size: %w", err)
	}
	return total, nil
}
