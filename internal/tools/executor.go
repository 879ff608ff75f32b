// In file: internal/tools/executor.go
package tools

import "context"

// ToolExecutor defines the standard interface for any tool the catalogue can
// dispatch to.
//
// Execute performs exactly one externally visible effect and always reports
// through an Outcome; it never returns a Go error or panics past its own
// boundary.
type ToolExecutor interface {
	// Definition returns the tool's schema, which is provided to the LLM
	// so it understands the tool's capabilities, name, and arguments.
	Definition() Tool

	// Execute runs the tool against arguments that already passed validation.
	Execute(ctx context.Context, args Args) Outcome
}
