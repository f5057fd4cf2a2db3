// main is the entry point for the gitcontrib CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/gitcontrib/cmd"
	"github.com/huangsam/gitcontrib/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Always release persistence handles and flush profiles, even on failure.
	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, "Warning:", perr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
