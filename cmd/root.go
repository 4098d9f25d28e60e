// Package cmd provides the command-line interface for memsim.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memsim",
	Short: "Memsim simulates a two-level cache hierarchy over a flat main memory.",
	Long: `Memsim simulates the memory subsystem that sits between a CPU and ` +
		`DRAM: a 64 KiB 4-way set-associative L1 cache with NRU replacement, ` +
		`a 1 MiB direct-mapped L2 cache, and a flat main memory. It serves ` +
		`single-word loads and stores and reports cache miss statistics.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
