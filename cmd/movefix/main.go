package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"movefix/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "movefix",
	Short: "Move-safety analyzer and source rewriter",
	Long:  `movefix rewrites safe copy expressions into explicit moves at call-argument sites and return statements.`,
}

// main registers subcommands and persistent flags, then executes the
// root command, exiting 1 on error.
func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("ui", "auto", "batch progress display (auto|on|off)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable the on-disk analysis cache")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "explain every candidate decision, not just the totals")

	if err := rootCmd.Execute(); err != nil {
		if err != errCheckWouldRewrite {
			fmt.Fprintf(os.Stderr, "movefix: %v\n", err)
		}
		os.Exit(1)
	}
}
