package diag

import "movefix/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Notes:    nil,
		Fixes:    nil,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithFix attaches a fix whose edits are already known.
func (d Diagnostic) WithFix(title string, kind FixKind, applicability FixApplicability, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{
		Title:         title,
		Kind:          kind,
		Applicability: applicability,
		Edits:         edits,
	})
	return d
}

// WithFixSuggestion attaches a fix whose edits are not yet computed,
// deferring the work to MaterializeFixes via thunk.
func (d Diagnostic) WithFixSuggestion(title string, kind FixKind, applicability FixApplicability, thunk FixThunk) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{
		Title:         title,
		Kind:          kind,
		Applicability: applicability,
		Thunk:         thunk,
	})
	return d
}
