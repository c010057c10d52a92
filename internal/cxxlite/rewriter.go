package cxxlite

import (
	"sort"

	"movefix/internal/analysis"
	"movefix/internal/source"
)

type insert struct {
	offset uint32
	seq    int
	after  bool
	text   string
}

// Rewriter is cxxlite's analysis.Rewriter: staged text insertions over a
// FileSet, rendered on demand. Insertions are immutable until Buffer is
// called instead of mutating a live buffer on every call — this lets
// Plan call Buffer mid-run (for the idempotence check) without the cost
// of re-splicing the file on every single edit.
type Rewriter struct {
	fs      *source.FileSet
	inserts map[source.FileID][]insert
	seq     int
}

// NewRewriter returns a Rewriter over fs. fs is not copied.
func NewRewriter(fs *source.FileSet) *Rewriter {
	return &Rewriter{fs: fs, inserts: make(map[source.FileID][]insert)}
}

func (r *Rewriter) InsertBefore(pos source.Span, text string) {
	r.seq++
	r.inserts[pos.File] = append(r.inserts[pos.File], insert{offset: pos.Start, seq: r.seq, text: text})
}

func (r *Rewriter) InsertAfterToken(pos source.Span, text string) {
	r.seq++
	r.inserts[pos.File] = append(r.inserts[pos.File], insert{offset: pos.Start, seq: r.seq, after: true, text: text})
}

// Buffer renders file's content with every staged insert applied, in
// offset order; among inserts at the same offset, "after" inserts sort
// after "before" inserts, and ties within a bucket keep arrival order.
func (r *Rewriter) Buffer(file source.FileID) []byte {
	base := r.fs.Get(file).Content
	pending := append([]insert(nil), r.inserts[file]...)
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		if a.after != b.after {
			return !a.after
		}
		return a.seq < b.seq
	})

	var out []byte
	var cursor uint32
	for _, ins := range pending {
		out = append(out, base[cursor:ins.offset]...)
		out = append(out, ins.text...)
		cursor = ins.offset
	}
	out = append(out, base[cursor:]...)
	return out
}

var _ analysis.Rewriter = (*Rewriter)(nil)
