package contract

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetDefaultCacheDir returns the root directory for cached repository
// mirrors, honoring XDG_DATA_HOME when set.
func GetDefaultCacheDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitcontrib")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitcontrib"
	}
	return filepath.Join(homeDir, ".local", "share", "gitcontrib")
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gitcontrib_runs.db"
	}
	return filepath.Join(homeDir, ".gitcontrib_runs.db")
}

// TruncateName truncates a display name to a maximum width with ellipsis.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if maxWidth > 3 && len(runes) > maxWidth {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}
