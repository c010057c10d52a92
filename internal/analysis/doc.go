// Package analysis implements the move-safety analyzer: it classifies
// copy expressions at call-argument sites and return statements, runs a
// last-use safety predicate over each function's control-flow graph, and
// emits Transformation records for the ones it approves.
//
// The package is frontend-agnostic. It consumes a language frontend
// through the Frontend/FuncDecl/Expr/Type/Decl contracts in frontend.go
// and drives rewriting through the Rewriter contract in rewriter.go.
// internal/cxxlite is the only concrete Frontend/Rewriter implementation
// in this module; a different language surface would need nothing more
// than a second implementation of those same interfaces.
package analysis
