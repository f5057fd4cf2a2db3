// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/internal/parquet"
	"github.com/huangsam/gitcontrib/schema"
)

// WriteContributors renders the contributor table, dispatching on the
// configured output format.
func WriteContributors(table schema.ContributorTable, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorCSV(w, table, cfg.LinkedIn)
		}, "Wrote CSV")
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, table)
		}, "Wrote JSON")
	case schema.ParquetOut:
		if err := parquet.WriteContributorsParquet(parquet.ConvertContributorTable(table), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorTable(w, table, cfg)
		}, "Wrote table")
	}
}

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer and
// returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "%s to %s\n", successMsg, outputFile)
	}
	return nil
}

// ProfileSearchURL synthesizes a people-search link for a contributor name.
// Appended as an optional report column; it is a search query, not a
// resolved profile.
func ProfileSearchURL(name string) string {
	return "https://www.linkedin.com/search/results/people/?keywords=" + url.QueryEscape(name)
}
