// Package diag defines the diagnostic model shared by the generator phases.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the go/token position of the offending declaration.
//   - Notes – optional secondary positions, e.g. "first declared here".
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission is decoupled from storage.
// ReportError / ReportWarning / ReportInfo return a ReportBuilder that can
// be decorated with WithNote before Emit. BagReporter collects into a Bag,
// which supports sorting, deduplication and merging across jobs.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
