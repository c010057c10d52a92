package cxxlite

import (
	"testing"

	"movefix/internal/source"
)

func parseSource(t *testing.T, content string) *TranslationUnit {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cxl", []byte(content))
	tu, err := NewParser(fs.Get(fileID)).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return tu
}

func TestParseSimpleFunction(t *testing.T) {
	tu := parseSource(t, `void process(Buffer data) { consume(data); }`)
	if len(tu.Funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(tu.Funcs))
	}
	fn := tu.Funcs[0]
	if fn.Name != "process" || len(fn.Params) != 1 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if fn.Params[0].Decl == nil || !fn.Params[0].Decl.IsParameter() {
		t.Fatal("expected the parameter's Decl to report IsParameter")
	}
	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body))
	}
	call, ok := fn.Body[0].(*ExprStmtNode).X.(*CallExprNode)
	if !ok {
		t.Fatalf("expected a call expression statement, got %T", fn.Body[0])
	}
	if call.Callee != "consume" || len(call.Args) != 1 {
		t.Fatalf("unexpected call shape: %+v", call)
	}
	arg, ok := call.Args[0].(*IdentExpr)
	if !ok || arg.Name != "data" {
		t.Fatalf("expected the argument to reference 'data', got %+v", call.Args[0])
	}
	if arg.Decl != fn.Params[0].Decl {
		t.Fatal("expected the argument to resolve to the parameter's Decl")
	}
}

func TestParseLocalDeclarationAndReturn(t *testing.T) {
	tu := parseSource(t, `Buffer make() { Buffer result = process(); return result; }`)
	fn := tu.Funcs[0]
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
	decl, ok := fn.Body[0].(*DeclStmtNode)
	if !ok || decl.Decl.Name != "result" || !decl.Decl.HasLocalStorage() {
		t.Fatalf("expected a local declaration named 'result', got %+v", fn.Body[0])
	}
	ret, ok := fn.Body[1].(*ReturnStmtNode)
	if !ok {
		t.Fatalf("expected a return statement, got %T", fn.Body[1])
	}
	ident, ok := ret.Value.(*IdentExpr)
	if !ok || ident.Decl != decl.Decl {
		t.Fatal("expected the return value to resolve to the local declaration")
	}
}

func TestParseWhileLoop(t *testing.T) {
	tu := parseSource(t, `void run(bool cond, Buffer s) { while (cond) { consume(s); } }`)
	fn := tu.Funcs[0]
	loop, ok := fn.Body[0].(*WhileStmtNode)
	if !ok {
		t.Fatalf("expected a while statement, got %T", fn.Body[0])
	}
	if len(loop.Body) != 1 {
		t.Fatalf("expected 1 statement in the loop body, got %d", len(loop.Body))
	}
}

func TestParseIfElse(t *testing.T) {
	tu := parseSource(t, `void run(bool cond, Buffer s) { if (cond) { consume(s); } else { discard(s); } }`)
	fn := tu.Funcs[0]
	stmt, ok := fn.Body[0].(*IfStmtNode)
	if !ok {
		t.Fatalf("expected an if statement, got %T", fn.Body[0])
	}
	if len(stmt.Then) != 1 || len(stmt.Else) != 1 {
		t.Fatalf("expected both branches populated, got then=%d else=%d", len(stmt.Then), len(stmt.Else))
	}
}

func TestParseStdMoveExpression(t *testing.T) {
	tu := parseSource(t, `void run(Buffer s) { consume(std::move(s)); }`)
	fn := tu.Funcs[0]
	call := fn.Body[0].(*ExprStmtNode).X.(*CallExprNode)
	move, ok := call.Args[0].(*MoveExpr)
	if !ok {
		t.Fatalf("expected the argument to parse as a MoveExpr, got %T", call.Args[0])
	}
	if _, isDeclRef := move.ReferencedDecl(); isDeclRef {
		t.Fatal("expected a MoveExpr to not report a referenced declaration")
	}
	inner, ok := move.Inner.(*IdentExpr)
	if !ok || inner.Name != "s" {
		t.Fatalf("expected the move's inner expression to reference 's', got %+v", move.Inner)
	}
}

func TestParseConstReferenceParam(t *testing.T) {
	tu := parseSource(t, `void observe(const Buffer& data) { touch(data); }`)
	fn := tu.Funcs[0]
	typ := fn.Params[0].Decl.Type
	if !typ.IsConstQualified() {
		t.Fatal("expected a const-qualified parameter type")
	}
	nonRef := typ.NonReference()
	if !nonRef.IsRecord() {
		t.Fatal("expected the non-reference form to still report a record type")
	}
}

func TestParseReturnOfByValueParameter(t *testing.T) {
	tu := parseSource(t, `Buffer identity(Buffer input) { return input; }`)
	fn := tu.Funcs[0]
	ret := fn.Body[0].(*ReturnStmtNode)
	ident := ret.Value.(*IdentExpr)
	if !ident.Decl.IsParameter() {
		t.Fatal("expected the returned identifier to resolve to a parameter")
	}
}
