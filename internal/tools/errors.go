// In file: internal/tools/errors.go
package tools

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalogue operations.
var (
	// ErrToolNotFound is wrapped by UnknownToolError.
	ErrToolNotFound = errors.New("tool not found")

	// ErrDuplicateTool is returned when registering a name twice.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrToolNameRequired is returned when registering a tool without a name.
	ErrToolNameRequired = errors.New("tool name is required")
)

// UnknownToolError is returned when the controller names a tool the catalogue
// does not hold. It indicates the controller and catalogue are out of sync.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool '%s' not found", e.Name)
}

func (e *UnknownToolError) Unwrap() error { return ErrToolNotFound }

// ValidationError reports an argument payload that does not match the tool's schema.
type ValidationError struct {
	Tool   string
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: field %s: %s", e.Tool, e.Field, e.Detail)
}

// ExecutionError is the cause carried by a failed Outcome. StatusCode is zero
// for transport failures.
type ExecutionError struct {
	Tool       string
	StatusCode int
	Err        error
}

func (e *ExecutionError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("tool %s: upstream returned status %d", e.Tool, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("tool %s: execution failed", e.Tool)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
