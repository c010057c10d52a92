package diag

import (
	"fmt"

	"movefix/internal/source"
)

// Note attaches secondary context to a Diagnostic, pointing at a span
// distinct from its primary location.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit describes a single textual replacement. OldText is the
// expected current contents of Span; a caller applying the edit can
// compare it with the source to detect that the source moved out from
// under it between collection and application.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind classifies how a Fix should be presented and batched.
type FixKind uint8

const (
	FixKindUnknown FixKind = iota
	// FixKindQuickFix is a small, local edit offered alongside the
	// diagnostic it fixes.
	FixKindQuickFix
	// FixKindRefactorRewrite is a larger rewrite, normally driven by a
	// batch run rather than accepted one at a time.
	FixKindRefactorRewrite
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	}
	return "unknown"
}

// FixApplicability bounds how freely a Fix may be applied without a
// human looking at the result.
type FixApplicability uint8

const (
	FixApplicabilityUnspecified FixApplicability = iota
	// FixApplicabilityAlwaysSafe fixes preserve behavior under every
	// input.
	FixApplicabilityAlwaysSafe
	// FixApplicabilitySafeWithHeuristics fixes rely on a heuristic that
	// holds in common cases but is not proven sound.
	FixApplicabilitySafeWithHeuristics
	// FixApplicabilityManualReview fixes change externally observable
	// behavior and must be reviewed before landing.
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unspecified"
}

// FixBuildContext is the environment a FixThunk needs to materialize
// its edits. It is constructed once per run and passed down rather
// than captured, so a Fix can be serialized before its edits exist.
type FixBuildContext struct {
	FileSet *source.FileSet
}

// FixThunk lazily builds the edits for a Fix. Planners that discover a
// candidate before they have computed its exact replacement text use
// this instead of populating Edits eagerly.
type FixThunk func(ctx FixBuildContext) ([]TextEdit, error)

// Fix describes one way to resolve a Diagnostic. Edits is populated
// either directly or by invoking Thunk through MaterializeFixes.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	// RequiresAll marks a fix that is only meaningful as part of a
	// batch of fixes, not standalone. No code in movefix sets or reads it.
	RequiresAll bool
	Edits       []TextEdit
	Thunk       FixThunk
}

// MaterializeFixes resolves every Thunk-backed Fix in fixes into one
// carrying concrete Edits, leaving already-populated fixes untouched.
func MaterializeFixes(ctx FixBuildContext, fixes []Fix) ([]Fix, error) {
	out := make([]Fix, len(fixes))
	for i, f := range fixes {
		if f.Thunk == nil {
			out[i] = f
			continue
		}
		edits, err := f.Thunk(ctx)
		if err != nil {
			return nil, fmt.Errorf("materialize fix %q: %w", f.Title, err)
		}
		f.Edits = edits
		f.Thunk = nil
		out[i] = f
	}
	return out, nil
}

// Diagnostic is the unit of reporting: one observation at one
// location, optionally carrying notes and candidate fixes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
