package analysis

import "movefix/internal/source"

// Context distinguishes where a classified candidate appears, since the
// last-use test only applies to call arguments: a return statement ends
// the variable's lifetime unconditionally, so a return-of-parameter
// candidate is accepted without checking last use.
type Context uint8

const (
	ContextCallArg Context = iota
	ContextReturn
)

// HasMoveConstructor reports whether t declares a move constructor.
func HasMoveConstructor(t Type) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Constructors() {
		if c.IsMove {
			return true
		}
	}
	return false
}

// IsSafe approves a classified candidate expression for rewriting:
// lvalue, named storage (parameter or local, never global/static),
// non-const record type with a move constructor, then a
// context-specific last-use check.
//
// idx and oracle must be built from the CFG of the function enclosing
// expr.
func IsSafe(expr Expr, decl Decl, ctx Context, idx *UseIndex, oracle *ReachabilityOracle) bool {
	if expr == nil || decl == nil {
		return false
	}
	if !expr.IsLValue() {
		return false
	}
	if !decl.IsParameter() && !decl.HasLocalStorage() {
		return false
	}
	t := expr.Type().NonReference()
	if !t.IsRecord() || t.IsConstQualified() {
		return false
	}
	if !HasMoveConstructor(t) {
		return false
	}

	switch ctx {
	case ContextReturn:
		return true
	case ContextCallArg:
		return isLastUse(decl, expr.Span(), idx, oracle)
	default:
		return false
	}
}

// isLastUse reports whether the use of decl at span is both its sole
// recorded reference in the enclosing function and safe from recurring
// on a back edge. A variable referenced more than once is never a move
// candidate here, at any of its occurrences, so this requires decl have
// exactly one recorded use before even considering it. It also does not
// exclude the candidate's own position from the reachability check:
// CanOccurAfter(current, current) is exactly the self-reachability
// check a same-block, same-element comparison falls back to, and it is
// the only way a single textual use inside a loop body is ever flagged
// as reachable again via the back edge, which a use inside a loop body
// must be rejected for.
func isLastUse(decl Decl, span source.Span, idx *UseIndex, oracle *ReachabilityOracle) bool {
	current, ok := idx.Lookup(decl, span)
	if !ok {
		return false
	}
	if len(idx.UsesOf(decl)) != 1 {
		return false
	}
	return !oracle.CanOccurAfter(current, current)
}
