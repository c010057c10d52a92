package analysis

import "testing"

// linearCFG builds a straight-line 3-block CFG: 0 -> 1 -> 2 (return).
func linearCFG() *CFG {
	return &CFG{
		Entry: 0,
		Blocks: []Block{
			{ID: 0, Term: Terminator{Kind: TermGoto, Goto: GotoTerm{Target: 1}}},
			{ID: 1, Term: Terminator{Kind: TermGoto, Goto: GotoTerm{Target: 2}}},
			{ID: 2, Term: Terminator{Kind: TermReturn}},
		},
	}
}

// loopCFG builds a CFG with a back edge: 0 -> 1 -> (2 or 3), 2 -> 1 (loop body), 3 -> return.
func loopCFG() *CFG {
	return &CFG{
		Entry: 0,
		Blocks: []Block{
			{ID: 0, Term: Terminator{Kind: TermGoto, Goto: GotoTerm{Target: 1}}},
			{ID: 1, Term: Terminator{Kind: TermIf, If: IfTerm{Then: 2, Else: 3}}},
			{ID: 2, Term: Terminator{Kind: TermGoto, Goto: GotoTerm{Target: 1}}},
			{ID: 3, Term: Terminator{Kind: TermReturn}},
		},
	}
}

func TestCanOccurAfterSameBlockLaterElement(t *testing.T) {
	oracle := NewReachabilityOracle(linearCFG())
	a := UsePosition{Block: 0, Element: 0}
	b := UsePosition{Block: 0, Element: 1}
	if !oracle.CanOccurAfter(a, b) {
		t.Fatal("expected later element in the same block to be reachable after the earlier one")
	}
}

func TestCanOccurAfterSameBlockEarlierElementNoCycle(t *testing.T) {
	oracle := NewReachabilityOracle(linearCFG())
	a := UsePosition{Block: 0, Element: 2}
	b := UsePosition{Block: 0, Element: 0}
	if oracle.CanOccurAfter(a, b) {
		t.Fatal("expected an earlier element in an acyclic block to be unreachable after a later one")
	}
}

func TestCanOccurAfterSameBlockEarlierElementWithCycle(t *testing.T) {
	oracle := NewReachabilityOracle(loopCFG())
	a := UsePosition{Block: 1, Element: 1}
	b := UsePosition{Block: 1, Element: 0}
	if !oracle.CanOccurAfter(a, b) {
		t.Fatal("expected an earlier element in a block on a cycle to be reachable again after looping")
	}
}

func TestCanOccurAfterCrossBlockForward(t *testing.T) {
	oracle := NewReachabilityOracle(linearCFG())
	a := UsePosition{Block: 0, Element: 0}
	b := UsePosition{Block: 2, Element: 0}
	if !oracle.CanOccurAfter(a, b) {
		t.Fatal("expected block 2 to be reachable after block 0")
	}
}

func TestCanOccurAfterCrossBlockUnreachable(t *testing.T) {
	oracle := NewReachabilityOracle(loopCFG())
	a := UsePosition{Block: 3, Element: 0}
	b := UsePosition{Block: 2, Element: 0}
	if oracle.CanOccurAfter(a, b) {
		t.Fatal("expected block 2 to be unreachable from the exit block 3")
	}
}

func TestBlockCanReachItself(t *testing.T) {
	oracle := NewReachabilityOracle(loopCFG())
	if !oracle.blockCanReachItself(1) {
		t.Fatal("expected block 1 to reach itself through the loop back edge")
	}
	if oracle.blockCanReachItself(3) {
		t.Fatal("expected the exit block to not reach itself")
	}
}
