// Package trace records span events for the enumtablegen pipeline.
//
// A run opens a ScopeRun span, each pipeline phase (load, analyze, render,
// write) a ScopePhase span, and with --trace-level=debug every derived type
// gets a ScopeType span:
//
//	enumtablegen gen --trace=- --trace-level=phase ./...
//
// Tracers are goroutine-safe; the driver's jobs emit concurrently.
package trace
