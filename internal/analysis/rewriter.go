package analysis

import "movefix/internal/source"

// Rewriter is the staged-edit sink the Rewrite Planner drives. It is
// modeled after Clang's Rewriter: inserts are positional and the
// distinction between InsertBefore and InsertAfterToken only matters
// when two edits land on the same offset (InsertAfterToken keeps later
// insertions to its right).
type Rewriter interface {
	InsertBefore(pos source.Span, text string)
	InsertAfterToken(pos source.Span, text string)
	// Buffer returns the file's content as currently staged, including
	// any edits already applied through this Rewriter.
	Buffer(file source.FileID) []byte
}
