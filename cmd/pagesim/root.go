package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "pagesim simulates page replacement in a demand-paged virtual memory.",
	Long: `pagesim feeds a reference string of page reads and writes through a ` +
		`page table with a fixed number of physical frames and reports page ` +
		`faults, hits, evictions and write-backs under the FIFO, LRU or Clock ` +
		`replacement policy.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
}
