// Package diag defines the core diagnostic model shared by the frontend,
// analysis, and rewrite-planning phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer / parser / candidate collector.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that a caller can materialise
//     and apply; movefix's batch runner and CLI do neither.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/report,
// and internal/batch collects one Bag per file. No package in movefix applies
// Fix records.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. “value
// declared here”) rather than repeating the diagnostic message.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries:
//
//   - Title – short label used in UI listings.
//   - Kind – coarse classification (quick fix or refactor rewrite).
//   - Applicability – confidence level: AlwaysSafe, SafeWithHeuristics,
//     ManualReview.
//   - IsPreferred – optionally mark the most relevant fix when several exist.
//   - Edits – concrete text edits (Span + new/old text) to apply.
//   - Thunk – optional lazy builder used when edits are expensive to construct.
//
// Fixes are intentionally data-only. Producers can attach thunks to defer heavy
// computation; MaterializeFixes expands them deterministically.
//
// TextEdit enforces spans in source coordinates; OldText is an optional guard a
// caller can check to validate the context before applying edits.
//
// # Emitting diagnostics
//
// A phase can use a diag.Reporter to decouple emission from storage, by
// constructing a ReportBuilder via NewReportBuilder (or the helper functions
// ReportError/ReportWarning/ReportInfo) and chaining WithNote /
// WithFixSuggestion before calling Emit. movefix's own producers build
// Diagnostic values directly instead: the cxxlite parser wraps one in a
// SyntaxError, and analysis.Plan returns its records in a Bag.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. For convenience, diag.BagReporter aggregates diagnostics into a Bag,
// which supports sorting, deduplication, and merging.
//
// # Consumers
//
//   - internal/report: renders Diagnostics into terminal and summary formats.
//   - internal/batch: coordinates bag collection per file and transports
//     diagnostic data to CLI commands.
//
// Keep the data model deterministic: any new fields should honour the package’s
// layering constraints and avoid side effects, so the CLI and future tooling can
// safely serialise diagnostics for caching and testing.
package diag
