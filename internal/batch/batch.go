// Package batch fans a directory of translation units out across a
// bounded pool of goroutines, running one independent analyzer per
// file: a sorted file list, a pre-sized per-index result slice (no
// mutex), and an errgroup.Group capped at min(jobs, len(files)).
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"movefix/internal/analysis"
	"movefix/internal/cache"
	"movefix/internal/config"
	"movefix/internal/cxxlite"
	"movefix/internal/diag"
	"movefix/internal/observ"
	"movefix/internal/source"
)

// Ext is the file extension internal/cxxlite parses.
const Ext = ".cxl"

// Stage names a phase of the per-file pipeline, reported to Progress.
type Stage uint8

const (
	StageQueued Stage = iota
	StageCacheLookup
	StageParse
	StageAnalyze
	StagePlan
	StageWrite
)

func (s Stage) String() string {
	switch s {
	case StageCacheLookup:
		return "cache"
	case StageParse:
		return "parsing"
	case StageAnalyze:
		return "analyzing"
	case StagePlan:
		return "planning"
	case StageWrite:
		return "writing"
	default:
		return "queued"
	}
}

// Status is the outcome Progress reports for a Stage transition.
type Status uint8

const (
	StatusWorking Status = iota
	StatusDone
	StatusError
	StatusCacheHit
)

// ProgressFunc receives one call per stage transition for a file. It
// may be called concurrently from multiple goroutines, one per
// in-flight file, and must not block.
type ProgressFunc func(path string, stage Stage, status Status)

func report(fn ProgressFunc, path string, stage Stage, status Status) {
	if fn != nil {
		fn(path, stage, status)
	}
}

// FileResult is the outcome of running the analyzer and planner over
// one file. Rewritten is the planner's rendered buffer; it equals the
// file's original content when EditCount is 0. Diagnostics carries the
// informational records analysis.Plan emits for each candidate
// decision, plus a single error-severity record when ParseErr or a
// file I/O failure occurred; it is empty, not nil, when the planner had
// no candidate to report.
type FileResult struct {
	Path        string
	FileID      source.FileID
	CacheHit    bool
	ParseErr    error
	EditCount   int
	Rewritten   []byte
	Timing      observ.Report
	Diagnostics *diag.Bag
}

// FileChange summarizes a file actually rewritten on disk.
type FileChange struct {
	Path      string
	EditCount int
}

// Result aggregates a batch run.
type Result struct {
	Files       []FileResult
	FileChanges []FileChange
}

// ListFiles returns a sorted list of every Ext file under dir, matching
// listSGFiles's WalkDir-then-sort pattern for deterministic ordering.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, Ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run analyzes every file in files in parallel, bounded by jobs
// (GOMAXPROCS when jobs <= 0), writing approved rewrites back to disk
// when write is true. Each goroutine owns its own Frontend, Rewriter,
// and cache lookup; nothing is shared across files except fileSet,
// which every file is loaded into before the goroutines start and which
// they only read, and c, which is safe for concurrent use. Cancellation
// is cooperative through
// ctx, matching "cancellation is cooperative at the granularity of a
// translation unit."
func Run(ctx context.Context, fileSet *source.FileSet, files []string, cfg config.Config, c *cache.Cache, jobs int, write bool, progress ProgressFunc) (*Result, error) {
	if len(files) == 0 {
		return &Result{}, nil
	}

	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				report(progress, path, StageQueued, StatusWorking)
				if err := loadErrors[i]; err != nil {
					loadErr := fmt.Errorf("failed to load file: %w", err)
					bag := diag.NewBag(1)
					bag.Add(diag.NewError(diag.IOReadFileError, source.Span{}, loadErr.Error()))
					results[i] = FileResult{Path: path, ParseErr: loadErr, Diagnostics: bag}
					report(progress, path, StageQueued, StatusError)
					return nil
				}

				results[i] = analyzeOne(fileSet, fileIDs[i], path, cfg, c, progress)
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return &Result{Files: results}, err
	}

	changes := make([]FileChange, 0, len(results))
	if write {
		for i, r := range results {
			if r.EditCount == 0 || r.ParseErr != nil {
				continue
			}
			file := fileSet.Get(r.FileID)
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(file.Path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, r.Rewritten, mode); err != nil {
				writeErr := fmt.Errorf("write %s: %w", r.Path, err)
				bag := results[i].Diagnostics
				if bag == nil {
					bag = diag.NewBag(1)
				}
				bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{File: r.FileID}, writeErr.Error()))
				results[i].Diagnostics = bag
				report(progress, r.Path, StageWrite, StatusError)
				return &Result{Files: results, FileChanges: changes}, writeErr
			}
			report(progress, r.Path, StageWrite, StatusDone)
			changes = append(changes, FileChange{Path: r.Path, EditCount: r.EditCount})
		}
	}
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })

	return &Result{Files: results, FileChanges: changes}, nil
}

// analyzeOne runs the full parse/analyze/plan pipeline for one file,
// consulting c first and populating it on a miss.
func analyzeOne(fileSet *source.FileSet, fileID source.FileID, path string, cfg config.Config, c *cache.Cache, progress ProgressFunc) FileResult {
	timer := observ.NewTimer()
	file := fileSet.Get(fileID)
	header := cfg.HeaderIncludeOrDefault()
	rewriter := cxxlite.NewRewriter(fileSet)

	if c != nil {
		key := cache.DigestOf(file.Content)
		report(progress, path, StageCacheLookup, StatusWorking)
		idx := timer.Begin("cache-lookup")
		cachedHeader, cachedEdits, ok, err := c.Get(key, fileID)
		timer.End(idx, "")
		if err == nil && ok {
			report(progress, path, StageCacheLookup, StatusCacheHit)
			edits := filterByKind(cachedEdits, cfg)
			if cachedHeader != "" {
				header = cachedHeader
			}
			bag := analysis.Plan(edits, rewriter, fileID, header)
			return FileResult{Path: path, FileID: fileID, CacheHit: true, EditCount: len(edits), Rewritten: rewriter.Buffer(fileID), Timing: timer.Report(), Diagnostics: bag}
		}
	}

	report(progress, path, StageParse, StatusWorking)
	idx := timer.Begin("parse")
	fe, err := cxxlite.Parse(file)
	timer.End(idx, "")
	if err != nil {
		report(progress, path, StageParse, StatusError)
		return FileResult{Path: path, FileID: fileID, ParseErr: err, Timing: timer.Report(), Diagnostics: diagnosticsForParseError(fileID, err)}
	}

	report(progress, path, StageAnalyze, StatusWorking)
	idx = timer.Begin("analyze")
	records := analysis.Run(fe)
	timer.End(idx, "")

	approved := filterByKind(records, cfg)

	if c != nil {
		key := cache.DigestOf(file.Content)
		_ = c.Put(key, header, records)
	}

	report(progress, path, StagePlan, StatusWorking)
	idx = timer.Begin("plan")
	bag := analysis.Plan(approved, rewriter, fileID, header)
	timer.End(idx, "")
	report(progress, path, StagePlan, StatusDone)

	return FileResult{Path: path, FileID: fileID, EditCount: len(approved), Rewritten: rewriter.Buffer(fileID), Timing: timer.Report(), Diagnostics: bag}
}

// diagnosticsForParseError recovers the structured diag.Diagnostic a
// cxxlite.SyntaxError carries, falling back to a generic syntax
// diagnostic for any other error shape (e.g. a future frontend that
// doesn't wrap its errors the same way).
func diagnosticsForParseError(fileID source.FileID, err error) *diag.Bag {
	bag := diag.NewBag(1)
	var syntaxErr *cxxlite.SyntaxError
	if errors.As(err, &syntaxErr) {
		bag.Add(syntaxErr.Diagnostic)
		return bag
	}
	bag.Add(diag.NewError(diag.SynInfo, source.Span{File: fileID}, err.Error()))
	return bag
}

func filterByKind(records []analysis.Transformation, cfg config.Config) []analysis.Transformation {
	out := make([]analysis.Transformation, 0, len(records))
	for _, r := range records {
		if cfg.KindEnabled(r.Kind) {
			out = append(out, r)
		}
	}
	return out
}
