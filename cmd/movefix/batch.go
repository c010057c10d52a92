package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"movefix/internal/batch"
	"movefix/internal/cache"
	"movefix/internal/config"
	"movefix/internal/report"
	"movefix/internal/source"
	"movefix/internal/ui"
)

var batchCheck bool

func init() {
	batchCmd.Flags().BoolVar(&batchCheck, "check", false, "report what would change, without writing anything")
}

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Analyze and rewrite every translation unit under a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		files, err := batch.ListFiles(dir)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no %s files found under %s\n", batch.Ext, dir)
			return nil
		}

		useColor, err := resolveColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		useUI, err := resolveUI(cmd, os.Stdout)
		if err != nil {
			return err
		}
		jobs, err := jobsFlag(cmd)
		if err != nil {
			return err
		}
		cfg, c, err := openCache(cmd, dir)
		if err != nil {
			return err
		}

		fileSet := source.NewFileSetWithBase(dir)
		write := !batchCheck

		var result *batch.Result
		if useUI {
			result, err = runBatchWithProgress(fileSet, files, cfg, c, jobs, write)
		} else {
			result, err = batch.Run(context.Background(), fileSet, files, cfg, c, jobs, write, nil)
		}
		if err != nil {
			return err
		}

		report.Summary(cmd.OutOrStdout(), result, useColor)

		verbose, err := verboseFlag(cmd)
		if err != nil {
			return err
		}
		if verbose {
			report.Diagnostics(cmd.OutOrStdout(), result, useColor)
		}

		var failed, pending bool
		for _, f := range result.Files {
			if f.ParseErr != nil {
				failed = true
			} else if f.EditCount > 0 {
				pending = true
			}
		}
		if failed {
			return fmt.Errorf("one or more files failed to parse")
		}
		if batchCheck && pending {
			return errCheckWouldRewrite
		}
		return nil
	},
}

// runBatchWithProgress drives batch.Run on a background goroutine while
// a Bubble Tea program renders its progress off the same events
// ui.Reporter feeds.
func runBatchWithProgress(fileSet *source.FileSet, files []string, cfg config.Config, c *cache.Cache, jobs int, write bool) (*batch.Result, error) {
	events := make(chan ui.Event, 64)
	type outcome struct {
		result *batch.Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := batch.Run(context.Background(), fileSet, files, cfg, c, jobs, write, ui.Reporter(events))
		close(events)
		done <- outcome{result, err}
	}()

	program := tea.NewProgram(ui.NewProgressModel("movefix batch", files, events))
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("failed to render progress: %w", err)
	}

	out := <-done
	return out.result, out.err
}
