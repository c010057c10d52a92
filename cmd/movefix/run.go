package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"movefix/internal/batch"
	"movefix/internal/report"
	"movefix/internal/source"
)

var (
	runOutput string
	runCheck  bool
)

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the rewritten file here instead of in place")
	runCmd.Flags().BoolVar(&runCheck, "check", false, "report whether the file would change, without writing anything")
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Analyze and rewrite a single translation unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		useColor, err := resolveColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		jobs, err := jobsFlag(cmd)
		if err != nil {
			return err
		}
		cfg, c, err := openCache(cmd, filepath.Dir(path))
		if err != nil {
			return err
		}

		fileSet := source.NewFileSet()
		write := !runCheck && runOutput == ""
		result, err := batch.Run(context.Background(), fileSet, []string{path}, cfg, c, jobs, write, nil)
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", path, err)
		}
		if len(result.Files) != 1 {
			return fmt.Errorf("internal error: expected one result for %s, got %d", path, len(result.Files))
		}
		file := result.Files[0]

		verbose, err := verboseFlag(cmd)
		if err != nil {
			return err
		}
		if verbose {
			report.Diagnostics(cmd.OutOrStdout(), result, useColor)
		}

		if file.ParseErr != nil {
			return fmt.Errorf("%s: %w", path, file.ParseErr)
		}

		switch {
		case runCheck:
			fmt.Fprintln(cmd.OutOrStdout(), report.OneLine(path, file.EditCount, useColor))
			if file.EditCount > 0 {
				return errCheckWouldRewrite
			}
			return nil
		case runOutput != "":
			if err := os.WriteFile(runOutput, file.Rewritten, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", runOutput, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.OneLine(runOutput, file.EditCount, useColor))
			return nil
		default:
			fmt.Fprintln(cmd.OutOrStdout(), report.OneLine(path, file.EditCount, useColor))
			return nil
		}
	},
}

// errCheckWouldRewrite signals --check found pending edits; main exits
// non-zero without printing an additional error line.
var errCheckWouldRewrite = silentErr("file would be rewritten")

type silentErr string

func (e silentErr) Error() string { return string(e) }
