package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/gitcontrib/internal/contract"
	"github.com/huangsam/gitcontrib/schema"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// csvHeader is the fixed delimited-report column header. The profile-search
// column is appended only when requested.
var csvHeader = []string{
	"Name", "Email", "Commits", "Lines Added", "Lines Deleted",
	"First Commit", "Last Commit",
}

const profileSearchHeader = "LinkedIn Search"

// rankColor highlights the top contributor rank in table output.
var rankColor = color.New(color.FgCyan, color.Bold)

// writeContributorCSV writes the delimited report with the fixed header.
func writeContributorCSV(w io.Writer, table schema.ContributorTable, linkedIn bool) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := csvHeader
	if linkedIn {
		header = append(append([]string{}, csvHeader...), profileSearchHeader)
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, agg := range table {
		row := []string{
			agg.Identity.Name,
			agg.Identity.Email,
			strconv.Itoa(agg.CommitCount),
			strconv.Itoa(agg.LinesAdded),
			strconv.Itoa(agg.LinesDeleted),
			agg.FirstCommit.Format(schema.DateOnlyFormat),
			agg.LastCommit.Format(schema.DateOnlyFormat),
		}
		if linkedIn {
			row = append(row, ProfileSearchURL(agg.Identity.Name))
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeContributorTable renders the human-readable terminal table.
func writeContributorTable(w io.Writer, table schema.ContributorTable, cfg *contract.Config) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Rank", "Name", "Email", "Commits", "Added", "Deleted", "First", "Last"})
	tbl.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := maxNameWidth(cfg)
	var data [][]string
	for i, agg := range table {
		rank := strconv.Itoa(i + 1)
		if cfg.UseColors && i == 0 {
			rank = rankColor.Sprint(rank)
		}
		data = append(data, []string{
			rank,
			contract.TruncateName(agg.Identity.Name, nameWidth),
			contract.TruncateName(agg.Identity.Email, nameWidth),
			strconv.Itoa(agg.CommitCount),
			strconv.Itoa(agg.LinesAdded),
			strconv.Itoa(agg.LinesDeleted),
			agg.FirstCommit.Format(schema.DateOnlyFormat),
			agg.LastCommit.Format(schema.DateOnlyFormat),
		})
	}

	if err := tbl.Bulk(data); err != nil {
		return err
	}
	if err := tbl.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d contributors (total commits: %d)\n", len(table), table.TotalCommits())
	return err
}

// maxNameWidth derives the widest sensible name/email column from the
// terminal width, with a conservative fallback for CI and pipes.
func maxNameWidth(_ *contract.Config) int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		termWidth = 80 // Conservative default for narrow terminals and CI
	}

	// Eight columns plus borders; names and emails share the slack.
	available := (termWidth - 50) / 2
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
