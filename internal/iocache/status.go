package iocache

import (
	"fmt"

	"github.com/huangsam/gitcontrib/schema"
)

// PrintMirrorStatus prints mirror cache status information.
func PrintMirrorStatus(status schema.MirrorStatus) {
	fmt.Printf("Mirror Root: %s\n", status.Root)
	fmt.Printf("Cached Repositories: %d\n", len(status.Mirrors))
	for _, m := range status.Mirrors {
		fmt.Printf("  %s: %d bytes (updated %s)\n", m.Name, m.SizeBytes, m.ModTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Total Size: %d bytes\n", status.TotalBytes)
}

// PrintRunStatus prints run store status information.
func PrintRunStatus(status schema.RunStatus) {
	fmt.Printf("Run Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Contributor Records: %d\n", status.TotalContributors)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
