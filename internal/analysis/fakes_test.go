package analysis

import "movefix/internal/source"

// Minimal hand-rolled Frontend/Rewriter fakes used across this
// package's unit tests. internal/cxxlite is the real implementation;
// these exist so each analysis component can be tested in isolation
// from a concrete language frontend.

type fakeDecl struct {
	name      string
	param     bool
	localVar  bool
	recordTy  bool
	constQual bool
	movable   bool
}

func (d *fakeDecl) IsParameter() bool     { return d.param }
func (d *fakeDecl) HasLocalStorage() bool { return d.localVar }

type fakeType struct {
	record    bool
	constQual bool
	movable   bool
	ref       *fakeType // non-nil if this type is a reference to another
}

func (t *fakeType) NonReference() Type {
	if t.ref != nil {
		return t.ref
	}
	return t
}
func (t *fakeType) IsConstQualified() bool { return t.constQual }
func (t *fakeType) IsRecord() bool         { return t.record }
func (t *fakeType) Constructors() []Constructor {
	if t.movable {
		return []Constructor{{IsCopy: true}, {IsMove: true}}
	}
	return []Constructor{{IsCopy: true}}
}

type fakeExpr struct {
	decl    *fakeDecl
	typ     *fakeType
	lvalue  bool
	span    source.Span
	isCall  bool // true if this represents a non-DeclRef expression
}

func (e *fakeExpr) StripImplicit() Expr { return e }
func (e *fakeExpr) IsLValue() bool      { return e.lvalue }
func (e *fakeExpr) Type() Type          { return e.typ }
func (e *fakeExpr) ReferencedDecl() (Decl, bool) {
	if e.isCall {
		return nil, false
	}
	return e.decl, true
}
func (e *fakeExpr) Span() source.Span { return e.span }

func declRef(fileID source.FileID, start, end uint32, decl *fakeDecl, typ *fakeType) *fakeExpr {
	return &fakeExpr{
		decl:   decl,
		typ:    typ,
		lvalue: true,
		span:   source.Span{File: fileID, Start: start, End: end},
	}
}

func movableRecordType() *fakeType {
	return &fakeType{record: true, movable: true}
}

// fakeRewriter is an in-memory Rewriter: inserts are tracked as
// (offset, text, after) tuples and rendered into Buffer on demand.
type fakeRewriter struct {
	content map[source.FileID][]byte
	inserts map[source.FileID][]fakeInsert
}

type fakeInsert struct {
	offset uint32
	text   string
	after  bool
}

func newFakeRewriter(file source.FileID, content string) *fakeRewriter {
	return &fakeRewriter{
		content: map[source.FileID][]byte{file: []byte(content)},
		inserts: map[source.FileID][]fakeInsert{},
	}
}

func (r *fakeRewriter) InsertBefore(pos source.Span, text string) {
	r.inserts[pos.File] = append(r.inserts[pos.File], fakeInsert{offset: pos.Start, text: text})
}

func (r *fakeRewriter) InsertAfterToken(pos source.Span, text string) {
	r.inserts[pos.File] = append(r.inserts[pos.File], fakeInsert{offset: pos.Start, text: text, after: true})
}

func (r *fakeRewriter) Buffer(file source.FileID) []byte {
	base := r.content[file]
	inserts := append([]fakeInsert(nil), r.inserts[file]...)
	// stable-sort inserts by offset, "before" inserts ahead of "after"
	// inserts at the same offset, preserving arrival order otherwise.
	for i := 1; i < len(inserts); i++ {
		for j := i; j > 0; j-- {
			a, b := inserts[j-1], inserts[j]
			if a.offset < b.offset || (a.offset == b.offset && (a.after || !b.after)) {
				break
			}
			inserts[j-1], inserts[j] = inserts[j], inserts[j-1]
		}
	}

	var out []byte
	var cursor uint32
	for _, ins := range inserts {
		out = append(out, base[cursor:ins.offset]...)
		out = append(out, ins.text...)
		cursor = ins.offset
	}
	out = append(out, base[cursor:]...)
	return out
}
