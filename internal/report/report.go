// Package report formats the outcome of a run or batch as a colorized
// terminal summary, using github.com/fatih/color for styled segments
// and golang.org/x/term to decide whether to color output at all.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"movefix/internal/batch"
	"movefix/internal/diag"
)

var (
	movedColor    = color.New(color.FgGreen, color.Bold)
	skippedColor  = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed, color.Bold)
	cachedColor   = color.New(color.FgCyan)
	headingColor  = color.New(color.FgWhite, color.Bold)
	pathColor     = color.New(color.FgHiBlack)
	disabledColor = newDisabledColor()
)

func newDisabledColor() *color.Color {
	c := color.New()
	c.DisableColor()
	return c
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorFor returns c when useColor is true, or a no-op color.Color
// that emits plain text otherwise.
func colorFor(useColor bool, c *color.Color) *color.Color {
	if useColor {
		return c
	}
	return disabledColor
}

// Summary aggregates a batch.Result into per-file lines and a total.
func Summary(w io.Writer, result *batch.Result, useColor bool) {
	heading := colorFor(useColor, headingColor)
	moved := colorFor(useColor, movedColor)
	skipped := colorFor(useColor, skippedColor)
	failed := colorFor(useColor, errorColor)
	cached := colorFor(useColor, cachedColor)
	path := colorFor(useColor, pathColor)

	changed := make(map[string]int, len(result.FileChanges))
	for _, c := range result.FileChanges {
		changed[c.Path] = c.EditCount
	}

	var movedCount, skippedCount, errorCount, cachedCount int
	for _, f := range result.Files {
		switch {
		case f.ParseErr != nil:
			errorCount++
			fmt.Fprintf(w, "  %s %s: %v\n", failed.Sprint("error"), path.Sprint(f.Path), f.ParseErr)
		case f.CacheHit:
			cachedCount++
			fmt.Fprintf(w, "  %s %s (%d move%s)\n", cached.Sprint("cached"), path.Sprint(f.Path), f.EditCount, plural(f.EditCount))
		case f.EditCount == 0:
			skippedCount++
			fmt.Fprintf(w, "  %s %s\n", skipped.Sprint("unchanged"), path.Sprint(f.Path))
		default:
			movedCount++
			if edits, ok := changed[f.Path]; ok {
				fmt.Fprintf(w, "  %s %s (%d move%s)\n", moved.Sprint("rewritten"), path.Sprint(f.Path), edits, plural(edits))
			} else {
				fmt.Fprintf(w, "  %s %s (%d move%s, dry run)\n", moved.Sprint("would rewrite"), path.Sprint(f.Path), f.EditCount, plural(f.EditCount))
			}
		}
	}

	fmt.Fprintf(w, "%s %d file%s, %d rewritten, %d cached, %d unchanged, %d error%s\n",
		heading.Sprint("total:"),
		len(result.Files), plural(len(result.Files)),
		movedCount, cachedCount, skippedCount,
		errorCount, plural(errorCount))
}

// OneLine renders a single-file result as one line of output.
func OneLine(path string, editCount int, useColor bool) string {
	if editCount == 0 {
		return fmt.Sprintf("unchanged: %s", path)
	}
	verb := colorFor(useColor, movedColor).Sprint("optimized")
	return fmt.Sprintf("%s: %s (%d move%s)", verb, path, editCount, plural(editCount))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Diagnostics prints every diag.Diagnostic a batch.FileResult carries,
// one line per record, severity-colored. Intended for a verbose mode:
// Summary's per-file line already covers the common case.
func Diagnostics(w io.Writer, result *batch.Result, useColor bool) {
	errColor := colorFor(useColor, errorColor)
	warnColor := colorFor(useColor, skippedColor)
	infoColor := colorFor(useColor, cachedColor)
	path := colorFor(useColor, pathColor)

	for _, f := range result.Files {
		if f.Diagnostics == nil {
			continue
		}
		for _, d := range f.Diagnostics.Items() {
			sev := severityColor(d.Severity, errColor, warnColor, infoColor).Sprint(d.Severity.String())
			fmt.Fprintf(w, "  %s %s %s: %s\n", sev, path.Sprint(f.Path), d.Code.ID(), d.Message)
		}
	}
}

func severityColor(sev diag.Severity, errC, warnC, infoC *color.Color) *color.Color {
	switch sev {
	case diag.SevError:
		return errC
	case diag.SevWarning:
		return warnC
	default:
		return infoC
	}
}

// Divider prints a horizontal rule sized to width, or 60 columns when
// width is non-positive.
func Divider(w io.Writer, width int) {
	if width <= 0 {
		width = 60
	}
	fmt.Fprintln(w, strings.Repeat("-", width))
}
