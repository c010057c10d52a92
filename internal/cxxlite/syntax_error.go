package cxxlite

import (
	"fmt"

	"movefix/internal/diag"
	"movefix/internal/source"
)

// SyntaxError wraps a diag.Diagnostic so a caller that only wants an
// error message can treat it as one, while a caller that wants to
// report it properly (internal/batch) can recover the
// structured diag.Diagnostic via errors.As.
type SyntaxError struct {
	Diagnostic diag.Diagnostic
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("cxxlite: %s at %s", e.Diagnostic.Message, e.Diagnostic.Primary)
}

func syntaxErrorf(code diag.Code, span source.Span, format string, args ...any) error {
	return &SyntaxError{Diagnostic: diag.NewError(code, span, fmt.Sprintf(format, args...))}
}
