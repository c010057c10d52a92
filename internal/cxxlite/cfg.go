package cxxlite

import "movefix/internal/analysis"

// cfgBuilder lowers a parsed function body into an analysis.CFG. Blocks
// are addressed by index only (never by pointer) since the backing
// slice grows as blocks are created.
type cfgBuilder struct {
	blocks []analysis.Block
}

func (b *cfgBuilder) newBlock() analysis.BlockID {
	id := analysis.BlockID(len(b.blocks))
	b.blocks = append(b.blocks, analysis.Block{ID: id})
	return id
}

func (b *cfgBuilder) addRefs(id analysis.BlockID, refs []analysis.VarRef) {
	b.blocks[id].Elements = append(b.blocks[id].Elements, analysis.Element{Refs: refs})
}

func (b *cfgBuilder) setTerm(id analysis.BlockID, term analysis.Terminator) {
	b.blocks[id].Term = term
}

// BuildCFG builds the control-flow graph for one function body,
// implementing analysis.CFGBuilder for cxxlite. Straight-line
// statements accumulate elements in the current block; while loops
// and if/else statements branch into fresh blocks and rejoin at a
// continuation block, giving the analyzer the cyclic and diverging
// shapes ReachabilityOracle is built to answer queries over.
func BuildCFG(fn *FuncDefNode) *analysis.CFG {
	b := &cfgBuilder{}
	entry := b.newBlock()
	last, terminated := b.processStmts(fn.Body, entry)
	if !terminated {
		b.setTerm(last, analysis.Terminator{Kind: analysis.TermReturn})
	}
	return &analysis.CFG{Blocks: b.blocks, Entry: entry}
}

func (b *cfgBuilder) processStmts(stmts []Stmt, start analysis.BlockID) (analysis.BlockID, bool) {
	cur := start
	for _, stmt := range stmts {
		next, terminated := b.processStmt(stmt, cur)
		if terminated {
			return next, true
		}
		cur = next
	}
	return cur, false
}

func (b *cfgBuilder) processStmt(stmt Stmt, cur analysis.BlockID) (analysis.BlockID, bool) {
	switch s := stmt.(type) {
	case *ExprStmtNode:
		b.addRefs(cur, exprRefs(s.X))
		return cur, false

	case *DeclStmtNode:
		if s.Init != nil {
			b.addRefs(cur, exprRefs(s.Init))
		}
		return cur, false

	case *ReturnStmtNode:
		if s.Value != nil {
			b.addRefs(cur, exprRefs(s.Value))
		}
		b.setTerm(cur, analysis.Terminator{Kind: analysis.TermReturn})
		return cur, true

	case *WhileStmtNode:
		condID := b.newBlock()
		b.setTerm(cur, analysis.Terminator{Kind: analysis.TermGoto, Goto: analysis.GotoTerm{Target: condID}})

		bodyID := b.newBlock()
		afterID := b.newBlock()
		b.addRefs(condID, exprRefs(s.Cond))
		b.setTerm(condID, analysis.Terminator{Kind: analysis.TermIf, If: analysis.IfTerm{Then: bodyID, Else: afterID}})

		lastBody, terminated := b.processStmts(s.Body, bodyID)
		if !terminated {
			b.setTerm(lastBody, analysis.Terminator{Kind: analysis.TermGoto, Goto: analysis.GotoTerm{Target: condID}})
		}
		return afterID, false

	case *IfStmtNode:
		thenID := b.newBlock()
		elseID := b.newBlock()
		joinID := b.newBlock()

		b.addRefs(cur, exprRefs(s.Cond))
		b.setTerm(cur, analysis.Terminator{Kind: analysis.TermIf, If: analysis.IfTerm{Then: thenID, Else: elseID}})

		lastThen, thenTerminated := b.processStmts(s.Then, thenID)
		if !thenTerminated {
			b.setTerm(lastThen, analysis.Terminator{Kind: analysis.TermGoto, Goto: analysis.GotoTerm{Target: joinID}})
		}

		lastElse, elseTerminated := b.processStmts(s.Else, elseID)
		if !elseTerminated {
			b.setTerm(lastElse, analysis.Terminator{Kind: analysis.TermGoto, Goto: analysis.GotoTerm{Target: joinID}})
		}

		return joinID, false

	default:
		return cur, false
	}
}

// exprRefs collects one VarRef per resolved identifier reference
// reachable from expr, including references nested inside call
// arguments and an already-applied std::move(...). A reference to a
// name the parser could not resolve (e.g. a call callee, which is
// tracked as a plain string rather than a Decl) is skipped.
func exprRefs(expr Expr) []analysis.VarRef {
	var refs []analysis.VarRef
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *IdentExpr:
			if v.Decl != nil {
				refs = append(refs, analysis.VarRef{Var: v.Decl, Pos: v.span})
			}
		case *CallExprNode:
			for _, arg := range v.Args {
				walk(arg)
			}
		case *MoveExpr:
			walk(v.Inner)
		}
	}
	walk(expr)
	return refs
}
