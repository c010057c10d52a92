package analysis

import "testing"

func TestIsFunctionArgCopyAcceptsRecordDeclRef(t *testing.T) {
	decl := &fakeDecl{name: "buffer", localVar: true}
	arg := declRef(0, 8, 14, decl, movableRecordType())

	_, gotDecl, ok := IsFunctionArgCopy(arg)
	if !ok {
		t.Fatal("expected a record-typed variable reference to classify as a copy")
	}
	if gotDecl != Decl(decl) {
		t.Fatal("expected the classified decl to be the referenced declaration")
	}
}

func TestIsFunctionArgCopyRejectsNonRecordType(t *testing.T) {
	decl := &fakeDecl{name: "count", localVar: true}
	arg := declRef(0, 0, 5, decl, &fakeType{record: false})

	if _, _, ok := IsFunctionArgCopy(arg); ok {
		t.Fatal("expected a non-record type to not classify as a copy")
	}
}

func TestIsFunctionArgCopyRejectsNonDeclRef(t *testing.T) {
	arg := &fakeExpr{typ: movableRecordType(), lvalue: true, isCall: true}
	if _, _, ok := IsFunctionArgCopy(arg); ok {
		t.Fatal("expected a non-declaration-referencing expression to not classify")
	}
}

func TestIsReturnOfParameterCopyAcceptsParameter(t *testing.T) {
	decl := &fakeDecl{name: "data", param: true}
	value := declRef(0, 0, 4, decl, movableRecordType())

	if _, _, ok := IsReturnOfParameterCopy(value); !ok {
		t.Fatal("expected a by-value parameter to classify for a return move")
	}
}

func TestIsReturnOfParameterCopyRejectsLocal(t *testing.T) {
	// A local returned by value is NRVO's territory, not this analyzer's:
	// the classifier only recognizes parameters in a return statement.
	decl := &fakeDecl{name: "result", localVar: true}
	value := declRef(0, 0, 6, decl, movableRecordType())

	if _, _, ok := IsReturnOfParameterCopy(value); ok {
		t.Fatal("expected a local variable return to be rejected (NRVO territory)")
	}
}

func TestClassifyCopyNilExpr(t *testing.T) {
	if _, _, ok := IsFunctionArgCopy(nil); ok {
		t.Fatal("expected a nil expression to not classify")
	}
}
