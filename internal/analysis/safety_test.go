package analysis

import (
	"testing"

	"movefix/internal/source"
)

func TestHasMoveConstructor(t *testing.T) {
	if !HasMoveConstructor(movableRecordType()) {
		t.Fatal("expected movable record type to report a move constructor")
	}
	if HasMoveConstructor(&fakeType{record: true}) {
		t.Fatal("expected a copy-only record type to report no move constructor")
	}
	if HasMoveConstructor(nil) {
		t.Fatal("expected a nil type to report no move constructor")
	}
}

func TestIsSafeRejectsRValue(t *testing.T) {
	decl := &fakeDecl{localVar: true}
	expr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: false}
	idx := BuildUseIndex(&CFG{})
	oracle := NewReachabilityOracle(&CFG{})

	if IsSafe(expr, decl, ContextReturn, idx, oracle) {
		t.Fatal("expected an rvalue expression to be rejected")
	}
}

func TestIsSafeRejectsGlobalStorage(t *testing.T) {
	decl := &fakeDecl{param: false, localVar: false}
	expr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: true}
	idx := BuildUseIndex(&CFG{})
	oracle := NewReachabilityOracle(&CFG{})

	if IsSafe(expr, decl, ContextReturn, idx, oracle) {
		t.Fatal("expected a global/static declaration to be rejected")
	}
}

func TestIsSafeRejectsConstQualified(t *testing.T) {
	decl := &fakeDecl{localVar: true}
	typ := &fakeType{record: true, movable: true, constQual: true}
	expr := &fakeExpr{decl: decl, typ: typ, lvalue: true}
	idx := BuildUseIndex(&CFG{})
	oracle := NewReachabilityOracle(&CFG{})

	if IsSafe(expr, decl, ContextReturn, idx, oracle) {
		t.Fatal("expected a const-qualified type to be rejected")
	}
}

func TestIsSafeReturnAcceptsUnconditionally(t *testing.T) {
	decl := &fakeDecl{param: true}
	expr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: true}
	// Empty CFG: if the return path required a last-use check it would
	// fail to find any use at all. It must not even look.
	idx := BuildUseIndex(&CFG{})
	oracle := NewReachabilityOracle(&CFG{})

	if !IsSafe(expr, decl, ContextReturn, idx, oracle) {
		t.Fatal("expected a return-of-parameter candidate to be accepted without a last-use check")
	}
}

// TestIsSafeCallArgRejectsEitherOfTwoUses grounds the "reused variable"
// case: a variable referenced more than once in the function is never a
// move candidate at any of its occurrences, even the textually last one
// with no reachable use after it — this is a deliberate departure from a
// pure forward-reachability last-use test (see isLastUse).
func TestIsSafeCallArgRejectsEitherOfTwoUses(t *testing.T) {
	decl := &fakeDecl{localVar: true}
	fileID := source.FileID(0)
	firstUse := source.Span{File: fileID, Start: 0, End: 6}
	secondUse := source.Span{File: fileID, Start: 20, End: 26}

	cfg := &CFG{
		Blocks: []Block{{
			ID: 0,
			Elements: []Element{
				{Refs: []VarRef{{Var: decl, Pos: firstUse}}},
				{Refs: []VarRef{{Var: decl, Pos: secondUse}}},
			},
			Term: Terminator{Kind: TermReturn},
		}},
	}
	idx := BuildUseIndex(cfg)
	oracle := NewReachabilityOracle(cfg)

	firstExpr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: true, span: firstUse}
	if IsSafe(firstExpr, decl, ContextCallArg, idx, oracle) {
		t.Fatal("expected the earlier of two uses to be rejected")
	}

	secondExpr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: true, span: secondUse}
	if IsSafe(secondExpr, decl, ContextCallArg, idx, oracle) {
		t.Fatal("expected the later of two uses to also be rejected, since the variable is referenced more than once")
	}
}

// TestIsSafeCallArgAcceptsSoleUse confirms a variable with exactly one
// recorded reference, and no cycle back to it, is still accepted.
func TestIsSafeCallArgAcceptsSoleUse(t *testing.T) {
	decl := &fakeDecl{localVar: true}
	fileID := source.FileID(0)
	use := source.Span{File: fileID, Start: 0, End: 6}

	cfg := &CFG{
		Blocks: []Block{{
			ID:       0,
			Elements: []Element{{Refs: []VarRef{{Var: decl, Pos: use}}}},
			Term:     Terminator{Kind: TermReturn},
		}},
	}
	idx := BuildUseIndex(cfg)
	oracle := NewReachabilityOracle(cfg)

	expr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: true, span: use}
	if !IsSafe(expr, decl, ContextCallArg, idx, oracle) {
		t.Fatal("expected the sole use of a variable to be accepted as last-use")
	}
}

func TestIsSafeCallArgRejectsWhenLookupFails(t *testing.T) {
	decl := &fakeDecl{localVar: true}
	expr := &fakeExpr{decl: decl, typ: movableRecordType(), lvalue: true, span: source.Span{Start: 999}}
	idx := BuildUseIndex(&CFG{}) // no recorded uses at all
	oracle := NewReachabilityOracle(&CFG{})

	if IsSafe(expr, decl, ContextCallArg, idx, oracle) {
		t.Fatal("expected a call-arg candidate with no matching UseIndex entry to be rejected")
	}
}
