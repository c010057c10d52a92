package cxxlite

import (
	"movefix/internal/analysis"
	"movefix/internal/source"
)

// funcDecl adapts a parsed FuncDefNode to analysis.FuncDecl.
type funcDecl struct {
	def *FuncDefNode
}

func (f *funcDecl) Span() source.Span { return f.def.span }

// Walk visits every call expression and return statement in the
// function body, in AST declaration order.
func (f *funcDecl) Walk(onCall func(analysis.CallExpr), onReturn func(analysis.ReturnStmt)) {
	var walkExpr func(Expr)
	walkExpr = func(e Expr) {
		switch v := e.(type) {
		case *CallExprNode:
			args := make([]analysis.Expr, len(v.Args))
			copy(args, v.Args)
			onCall(analysis.CallExpr{Span: v.span, Args: args})
			for _, arg := range v.Args {
				walkExpr(arg)
			}
		case *MoveExpr:
			walkExpr(v.Inner)
		}
	}

	var walkStmts func([]Stmt)
	walkStmts = func(stmts []Stmt) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ExprStmtNode:
				walkExpr(s.X)
			case *DeclStmtNode:
				if s.Init != nil {
					walkExpr(s.Init)
				}
			case *ReturnStmtNode:
				if s.Value != nil {
					walkExpr(s.Value)
				}
				onReturn(analysis.ReturnStmt{Span: s.span, Value: s.Value})
			case *WhileStmtNode:
				walkExpr(s.Cond)
				walkStmts(s.Body)
			case *IfStmtNode:
				walkExpr(s.Cond)
				walkStmts(s.Then)
				walkStmts(s.Else)
			}
		}
	}
	walkStmts(f.def.Body)
}

// Frontend is cxxlite's analysis.Frontend: one parsed translation unit.
type Frontend struct {
	tu *TranslationUnit
}

// Parse lexes and parses file, returning a ready-to-analyze Frontend.
func Parse(file *source.File) (*Frontend, error) {
	tu, err := NewParser(file).Parse()
	if err != nil {
		return nil, err
	}
	return &Frontend{tu: tu}, nil
}

func (fe *Frontend) Functions(yield func(analysis.FuncDecl) bool) {
	for _, fn := range fe.tu.Funcs {
		if !yield(&funcDecl{def: fn}) {
			return
		}
	}
}

func (fe *Frontend) Build(fn analysis.FuncDecl, _ analysis.CFGBuildOptions) (*analysis.CFG, bool) {
	fd, ok := fn.(*funcDecl)
	if !ok {
		return nil, false
	}
	return BuildCFG(fd.def), true
}
