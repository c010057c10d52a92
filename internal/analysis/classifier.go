package analysis

// IsFunctionArgCopy recognizes the function-argument copy shape: after
// stripping implicit conversions, arg must directly name a declaration
// whose non-reference type is a record. The source language has no
// implicit copy-constructor call node distinct from a plain identifier
// reference, so this reduces to a single DeclRefExpr-to-record-var
// check.
func IsFunctionArgCopy(arg Expr) (Expr, Decl, bool) {
	return classifyCopy(arg)
}

// IsReturnOfParameterCopy recognizes the return-of-parameter copy
// shape: the same record-typed DeclRefExpr shape as IsFunctionArgCopy,
// additionally restricted to a by-value parameter of the enclosing
// function — a returned local is never considered here.
func IsReturnOfParameterCopy(value Expr) (Expr, Decl, bool) {
	e, decl, ok := classifyCopy(value)
	if !ok || !decl.IsParameter() {
		return nil, nil, false
	}
	return e, decl, true
}

func classifyCopy(expr Expr) (Expr, Decl, bool) {
	if expr == nil {
		return nil, nil, false
	}
	e := expr.StripImplicit()
	if e == nil {
		return nil, nil, false
	}
	decl, ok := e.ReferencedDecl()
	if !ok {
		return nil, nil, false
	}
	if !e.Type().NonReference().IsRecord() {
		return nil, nil, false
	}
	return e, decl, true
}
