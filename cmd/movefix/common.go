package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"movefix/internal/cache"
	"movefix/internal/config"
	"movefix/internal/report"
)

// resolveColor turns the persistent --color flag into a boolean,
// falling back to a terminal check for "auto".
func resolveColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return report.IsTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// resolveUI turns the persistent --ui flag into a boolean, with the
// same auto|on|off shape as --color.
func resolveUI(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return report.IsTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", mode)
	}
}

func jobsFlag(cmd *cobra.Command) (int, error) {
	return cmd.Root().PersistentFlags().GetInt("jobs")
}

func verboseFlag(cmd *cobra.Command) (bool, error) {
	return cmd.Root().PersistentFlags().GetBool("verbose")
}

// openCache resolves the project manifest under startDir and opens the
// configured cache, honoring both movefix.toml's [cache] section and
// the --no-cache flag.
func openCache(cmd *cobra.Command, startDir string) (config.Config, *cache.Cache, error) {
	manifest, _, err := config.Load(startDir)
	if err != nil {
		return config.Config{}, nil, err
	}

	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return config.Config{}, nil, err
	}
	if noCache || manifest.Cache.Disabled {
		return manifest.Config, nil, nil
	}

	c, err := cache.Open(manifest.CacheDir(manifest.Root))
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return manifest.Config, c, nil
}
