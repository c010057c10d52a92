package cxxlite

import (
	"movefix/internal/analysis"
	"movefix/internal/source"
)

// Expr is analysis.Expr under cxxlite's own name; every expression node
// below implements it directly; there is no separate AST-only
// expression interface to keep in sync.
type Expr = analysis.Expr

// IdentExpr names a declaration directly — the only shape the
// move-safety classifier needs to recognize a copy candidate. It is
// always an lvalue: cxxlite has no notion of a temporary-producing
// identifier expression.
type IdentExpr struct {
	Name string
	Decl *Decl // resolved during parsing; nil for an unresolved name
	span source.Span
}

func (e *IdentExpr) Span() source.Span           { return e.span }
func (e *IdentExpr) StripImplicit() analysis.Expr { return e }
func (e *IdentExpr) IsLValue() bool              { return true }
func (e *IdentExpr) Type() analysis.Type {
	if e.Decl == nil {
		return Type{}
	}
	return e.Decl.Type
}
func (e *IdentExpr) ReferencedDecl() (analysis.Decl, bool) {
	if e.Decl == nil {
		return nil, false
	}
	return e.Decl, true
}

// CallExprNode is a function call used as an expression (e.g. a call
// argument or an initializer). It is never itself a copy candidate
// (ReferencedDecl reports false), matching a CallExpr's rvalue-ness in
// the source language.
type CallExprNode struct {
	Callee string
	Args   []Expr
	span   source.Span
}

func (e *CallExprNode) Span() source.Span           { return e.span }
func (e *CallExprNode) StripImplicit() analysis.Expr { return e }
func (e *CallExprNode) IsLValue() bool              { return false }
func (e *CallExprNode) Type() analysis.Type         { return Type{} }
func (e *CallExprNode) ReferencedDecl() (analysis.Decl, bool) {
	return nil, false
}

// MoveExpr is an already-applied std::move(inner) expression. Parsing
// it as its own node (rather than a plain call to a function named
// "move") is what makes an already-moved argument invisible to the
// classifier: ReferencedDecl reports false here exactly as it does for
// CallExprNode, matching how std::move(x) is a CXXStaticCastExpr call
// rather than a plain DeclRefExpr in the source language.
type MoveExpr struct {
	Inner Expr
	span  source.Span
}

func (e *MoveExpr) Span() source.Span           { return e.span }
func (e *MoveExpr) StripImplicit() analysis.Expr { return e }
func (e *MoveExpr) IsLValue() bool              { return false }
func (e *MoveExpr) Type() analysis.Type         { return Type{} }
func (e *MoveExpr) ReferencedDecl() (analysis.Decl, bool) {
	return nil, false
}

// StringExpr is a string literal.
type StringExpr struct {
	Value string
	span  source.Span
}

func (e *StringExpr) Span() source.Span           { return e.span }
func (e *StringExpr) StripImplicit() analysis.Expr { return e }
func (e *StringExpr) IsLValue() bool              { return false }
func (e *StringExpr) Type() analysis.Type         { return Type{} }
func (e *StringExpr) ReferencedDecl() (analysis.Decl, bool) {
	return nil, false
}

// Stmt is any parsed statement node.
type Stmt interface {
	Span() source.Span
	stmtNode()
}

// ExprStmtNode is a bare expression statement, e.g. `consume(buffer);`.
type ExprStmtNode struct {
	X    Expr
	span source.Span
}

func (s *ExprStmtNode) Span() source.Span { return s.span }
func (*ExprStmtNode) stmtNode()           {}

// ReturnStmtNode is a return statement; Value is nil for `return;`.
type ReturnStmtNode struct {
	Value Expr
	span  source.Span
}

func (s *ReturnStmtNode) Span() source.Span { return s.span }
func (*ReturnStmtNode) stmtNode()           {}

// DeclStmtNode declares a local variable, optionally with an
// initializer.
type DeclStmtNode struct {
	Decl *Decl
	Init Expr
	span source.Span
}

func (s *DeclStmtNode) Span() source.Span { return s.span }
func (*DeclStmtNode) stmtNode()           {}

// WhileStmtNode is a while loop — the construct that gives the CFG
// builder its back edge.
type WhileStmtNode struct {
	Cond Expr
	Body []Stmt
	span source.Span
}

func (s *WhileStmtNode) Span() source.Span { return s.span }
func (*WhileStmtNode) stmtNode()           {}

// IfStmtNode is a two-way conditional.
type IfStmtNode struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	span source.Span
}

func (s *IfStmtNode) Span() source.Span { return s.span }
func (*IfStmtNode) stmtNode()           {}

// Param is a function parameter. All parameters are by-value record
// types unless TypeName is one of the recognized primitive spellings
// (see primitiveTypes in types.go).
type Param struct {
	Name     string
	TypeName string
	Decl     *Decl
}

// FuncDefNode is one parsed function definition.
type FuncDefNode struct {
	Name       string
	ReturnType string
	Params     []Param
	Body       []Stmt
	span       source.Span
}

// TranslationUnit is the parsed form of a single source file: the
// top-level function definitions found in it, in declaration order.
type TranslationUnit struct {
	Funcs []*FuncDefNode
}
