// Package config loads movefix.toml, the per-project file controlling
// the output header, the on-disk cache location, and which candidate
// kinds a run is allowed to rewrite.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"movefix/internal/analysis"
)

const manifestName = "movefix.toml"

// defaultHeaderInclude is what Plan inserts when a run approves at
// least one rewrite and the project manifest does not override it.
const defaultHeaderInclude = "#include <utility>"

// Manifest is a loaded movefix.toml together with the directory it was
// found in, so callers can resolve Cache.Dir relative to it.
type Manifest struct {
	Path string
	Root string
	Config
}

// Config is the decoded [rewrite] and [cache] sections of movefix.toml:
// a thin TOML struct decoded with github.com/BurntSushi/toml, validated
// with the decode Metadata rather than zero-value checks so an
// explicitly-set empty string is distinguishable from an absent key.
type Config struct {
	Rewrite rewriteConfig `toml:"rewrite"`
	Cache   cacheConfig   `toml:"cache"`
}

type rewriteConfig struct {
	// HeaderInclude is the line Plan inserts once a rewrite lands.
	// Defaults to "#include <utility>" when unset.
	HeaderInclude string `toml:"header_include"`
	// Kinds restricts which analysis.Kind values a run approves.
	// Unset (or absent) means both shapes are enabled. Recognized
	// values are "function-arg-move" and "return-value-move", matching
	// analysis.Kind.String().
	Kinds []string `toml:"kinds"`
}

type cacheConfig struct {
	// Dir overrides the on-disk cache directory. Relative paths are
	// resolved against the manifest's directory. Empty means the
	// platform default under XDG_CACHE_HOME (see internal/cache).
	Dir string `toml:"dir"`
	// Disabled turns the cache off entirely for this project.
	Disabled bool `toml:"disabled"`
}

// Default returns the configuration a run uses when no movefix.toml is
// found: both candidate kinds enabled, the standard header, and the
// platform-default cache location.
func Default() Config {
	return Config{
		Rewrite: rewriteConfig{
			HeaderInclude: defaultHeaderInclude,
			Kinds:         []string{analysis.KindFunctionArgMove.String(), analysis.KindReturnValueMove.String()},
		},
	}
}

// HeaderIncludeOrDefault returns Rewrite.HeaderInclude, falling back to
// defaultHeaderInclude when the manifest left it blank.
func (c Config) HeaderIncludeOrDefault() string {
	if strings.TrimSpace(c.Rewrite.HeaderInclude) == "" {
		return defaultHeaderInclude
	}
	return c.Rewrite.HeaderInclude
}

// KindEnabled reports whether kind is among the configured Kinds. An
// empty Kinds list enables every kind, matching Default.
func (c Config) KindEnabled(kind analysis.Kind) bool {
	if len(c.Rewrite.Kinds) == 0 {
		return true
	}
	for _, k := range c.Rewrite.Kinds {
		if strings.EqualFold(strings.TrimSpace(k), kind.String()) {
			return true
		}
	}
	return false
}

// CacheDir resolves Cache.Dir against root, the manifest's directory.
// Returns "" when the cache has no override (internal/cache applies its
// own platform default in that case).
func (c Config) CacheDir(root string) string {
	dir := strings.TrimSpace(c.Cache.Dir)
	if dir == "" {
		return ""
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// Find walks upward from startDir looking for movefix.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load walks upward from startDir for movefix.toml and decodes it. When
// none is found it returns Default() with ok=false, not an error: a
// missing manifest is the normal case for a standalone file.
func Load(startDir string) (Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Manifest{}, false, err
	}
	if !ok {
		return Manifest{Config: Default()}, false, nil
	}
	cfg, err := decode(path)
	if err != nil {
		return Manifest{}, true, err
	}
	return Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// decode parses path and validates the decoded kinds, the only field
// whose content (not just presence) matters before a run starts.
func decode(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("rewrite", "header_include") && strings.TrimSpace(cfg.Rewrite.HeaderInclude) == "" {
		return Config{}, fmt.Errorf("%s: [rewrite].header_include must not be blank", path)
	}
	for _, k := range cfg.Rewrite.Kinds {
		switch strings.TrimSpace(k) {
		case analysis.KindFunctionArgMove.String(), analysis.KindReturnValueMove.String():
		default:
			return Config{}, fmt.Errorf("%s: [rewrite].kinds: unrecognized kind %q", path, k)
		}
	}
	return cfg, nil
}
