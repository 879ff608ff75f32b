// In file: internal/tools/outcome.go
package tools

// Outcome is the result of a single tool execution. It keeps success and
// failure apart internally; Text collapses both into what gets spoken.
type Outcome struct {
	text string
	err  error
}

// Ok builds a successful outcome.
func Ok(text string) Outcome {
	return Outcome{text: text}
}

// Failed builds a failed outcome. text is the user-safe fallback message,
// err the cause kept for logs and tests.
func Failed(text string, err error) Outcome {
	if err == nil {
		err = &ExecutionError{}
	}
	return Outcome{text: text, err: err}
}

// Text is the string handed back to the conversation controller.
func (o Outcome) Text() string { return o.text }

// Failed reports whether the execution failed.
func (o Outcome) Failed() bool { return o.err != nil }

// Err returns the underlying cause of a failed outcome, or nil.
func (o Outcome) Err() error { return o.err }
