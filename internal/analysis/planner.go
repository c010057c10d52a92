package analysis

import (
	"bytes"
	"sort"

	"fortio.org/safecast"

	"movefix/internal/diag"
	"movefix/internal/source"
)

// moveOpen and moveClose are the textual wrap the planner inserts around
// an approved candidate's range.
const (
	moveOpen  = "std::move("
	moveClose = ")"
)

// Plan applies records to file through rewriter, in reverse source
// order so earlier offsets stay valid as later (higher-offset) edits
// land first, skipping any record that is invalid, overlaps an
// already-applied edit, or whose range is already wrapped in a move.
// When at least one edit was staged, it ensures headerInclude is
// present in the file. Every decision is also recorded as an
// informational diag.Diagnostic in the returned Bag, so a caller that
// wants to explain *why* a candidate was or wasn't rewritten has
// something to show; callers that don't care may ignore the result.
func Plan(records []Transformation, rewriter Rewriter, file source.FileID, headerInclude string) *diag.Bag {
	bag := diag.NewBag(len(records) + 1)

	ordered := make([]Transformation, 0, len(records))
	for _, r := range records {
		if r.Range.File == file && r.Range.Start <= r.Range.End {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Range.Start > ordered[j].Range.Start
	})

	var applied []source.Span
	insertedMove := false

	for _, r := range ordered {
		if overlapsAny(applied, r.Range) {
			bag.Add(diag.New(diag.SevInfo, diag.FixSkippedOverlap, r.Range, "candidate overlaps an edit already staged for this file"))
			continue
		}
		if alreadyMoved(rewriter.Buffer(file), r.Range) {
			bag.Add(diag.New(diag.SevInfo, diag.FixSkippedAlreadyMoved, r.Range, "candidate range is already wrapped in std::move"))
			applied = append(applied, r.Range)
			continue
		}
		rewriter.InsertBefore(source.Span{File: file, Start: r.Range.Start, End: r.Range.Start}, moveOpen)
		rewriter.InsertAfterToken(source.Span{File: file, Start: r.Range.End, End: r.Range.End}, moveClose)
		applied = append(applied, r.Range)
		insertedMove = true
		bag.Add(diag.New(diag.SevInfo, diag.FixMoveCandidate, r.Range, "rewrote copy expression as std::move"))
	}

	if insertedMove {
		if at, ok := ensureHeader(rewriter, file, headerInclude); ok {
			bag.Add(diag.New(diag.SevInfo, diag.FixHeaderInserted, at, "inserted "+headerInclude))
		}
	}

	return bag
}

func overlapsAny(applied []source.Span, span source.Span) bool {
	for _, a := range applied {
		if span.Start < a.End && a.Start < span.End {
			return true
		}
	}
	return false
}

// alreadyMoved reports whether content[span] already begins with
// std::move( once leading whitespace is trimmed, so wrapping stays
// idempotent across repeated runs.
func alreadyMoved(content []byte, span source.Span) bool {
	if span.Start > span.End || int(span.End) > len(content) {
		return false
	}
	text := bytes.TrimLeft(content[span.Start:span.End], " \t")
	return bytes.HasPrefix(text, []byte(moveOpen))
}

// ensureHeader inserts headerInclude into file if it is not already
// present, placing it after the last #include line (or after a leading
// #pragma once): scan line by line, tolerate blank lines and comments
// between includes, stop once a non-include line follows at least one
// include. Reports whether it inserted anything, and where.
func ensureHeader(rewriter Rewriter, file source.FileID, headerInclude string) (source.Span, bool) {
	buf := rewriter.Buffer(file)
	if bytes.Contains(buf, []byte(headerInclude)) {
		return source.Span{}, false
	}

	var offset, insertOffset int
	hasIncludes := false

	for offset < len(buf) {
		lineEnd := bytes.IndexByte(buf[offset:], '\n')
		if lineEnd == -1 {
			lineEnd = len(buf)
		} else {
			lineEnd = offset + lineEnd + 1
		}
		line := bytes.TrimSpace(buf[offset:lineEnd])

		switch {
		case bytes.HasPrefix(line, []byte("#include")):
			hasIncludes = true
			insertOffset = lineEnd
			offset = lineEnd
			continue
		case len(line) == 0, bytes.HasPrefix(line, []byte("//")), bytes.HasPrefix(line, []byte("/*")), bytes.HasPrefix(line, []byte("*")):
			offset = lineEnd
			continue
		case bytes.HasPrefix(line, []byte("#pragma once")):
			insertOffset = lineEnd
			offset = lineEnd
			continue
		}

		if hasIncludes {
			break
		}
		offset = lineEnd
	}

	text := headerInclude + "\n"
	if !hasIncludes {
		text += "\n"
	}

	pos, err := safecast.Conv[uint32](insertOffset)
	if err != nil {
		return source.Span{}, false
	}
	at := source.Span{File: file, Start: pos, End: pos}
	rewriter.InsertBefore(at, text)
	return at, true
}
