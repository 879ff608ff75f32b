// In file: internal/tools/manager.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

// Recorder observes every executed invocation. Implementations must be safe
// for concurrent use.
type Recorder interface {
	RecordInvocation(ctx context.Context, tool string, outcome Outcome, latency time.Duration)
	RecordRejection(ctx context.Context, tool string, err error)
}

// ToolManager is the tool catalogue: it owns the registered tools for the
// lifetime of an agent and dispatches invocations to them.
type ToolManager struct {
	mu        sync.RWMutex
	tools     map[string]ToolExecutor
	validator *SchemaValidator
	recorder  Recorder
}

// NewToolManager creates an empty catalogue.
func NewToolManager() *ToolManager {
	return &ToolManager{
		tools:     make(map[string]ToolExecutor),
		validator: NewSchemaValidator(),
	}
}

// SetRecorder attaches an observer for invocation outcomes.
func (tm *ToolManager) SetRecorder(r Recorder) {
	tm.mu.Lock()
	tm.recorder = r
	tm.mu.Unlock()
}

// Register adds a new tool to the catalogue. Names must be unique.
func (tm *ToolManager) Register(tool ToolExecutor) error {
	name := tool.Definition().Function.Name
	if name == "" {
		return ErrToolNameRequired
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if _, exists := tm.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	tm.tools[name] = tool
	tm.validator.Forget(name)
	return nil
}

// MustRegister is Register for static catalogues assembled at startup.
func (tm *ToolManager) MustRegister(tools ...ToolExecutor) {
	for _, tool := range tools {
		if err := tm.Register(tool); err != nil {
			panic(err)
		}
	}
}

// Describe returns one definition per registered tool, ordered by name.
func (tm *ToolManager) Describe() []Tool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	defs := make([]Tool, 0, len(tm.tools))
	for _, tool := range tm.tools {
		defs = append(defs, tool.Definition())
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Function.Name < defs[j].Function.Name
	})
	return defs
}

// Names returns the registered tool names, ordered.
func (tm *ToolManager) Names() []string {
	defs := tm.Describe()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Function.Name
	}
	return names
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return len(tm.tools)
}

// Invoke runs a tool by name and returns the text to speak.
//
// A non-nil error is either *UnknownToolError or *ValidationError; in both
// cases nothing was executed. Execution failures are not errors: they come
// back as the tool's fallback text.
func (tm *ToolManager) Invoke(ctx context.Context, name string, raw map[string]any) (string, error) {
	outcome, err := tm.InvokeOutcome(ctx, name, raw)
	if err != nil {
		return "", err
	}
	return outcome.Text(), nil
}

// InvokeJSON is Invoke for the JSON-encoded argument strings LLM providers emit.
func (tm *ToolManager) InvokeJSON(ctx context.Context, name, arguments string) (string, error) {
	raw := map[string]any{}
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &raw); err != nil {
			if _, ok := tm.lookup(name); !ok {
				return "", tm.reject(ctx, name, &UnknownToolError{Name: name})
			}
			return "", tm.reject(ctx, name, &ValidationError{Tool: name, Field: rootField, Detail: "arguments are not a JSON object: " + err.Error()})
		}
	}
	return tm.Invoke(ctx, name, raw)
}

// InvokeOutcome is Invoke without collapsing the outcome to text.
func (tm *ToolManager) InvokeOutcome(ctx context.Context, name string, raw map[string]any) (Outcome, error) {
	tool, ok := tm.lookup(name)
	if !ok {
		return Outcome{}, tm.reject(ctx, name, &UnknownToolError{Name: name})
	}

	args, err := tm.validator.Validate(tool.Definition(), raw)
	if err != nil {
		return Outcome{}, tm.reject(ctx, name, err)
	}

	start := time.Now()
	outcome := tool.Execute(ctx, args)
	latency := time.Since(start)

	if outcome.Failed() {
		log.Printf("⚠️ Tool %s failed after %s: %v", name, latency, outcome.Err())
	} else {
		log.Printf("🛠️ Tool %s succeeded in %s", name, latency)
	}
	if r := tm.getRecorder(); r != nil {
		r.RecordInvocation(ctx, name, outcome, latency)
	}
	return outcome, nil
}

func (tm *ToolManager) lookup(name string) (ToolExecutor, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	tool, ok := tm.tools[name]
	return tool, ok
}

func (tm *ToolManager) getRecorder() Recorder {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.recorder
}

// reject logs a contract violation and hands the error back.
func (tm *ToolManager) reject(ctx context.Context, name string, err error) error {
	switch err.(type) {
	case *UnknownToolError:
		log.Printf("🚨 Unknown tool requested: %q (catalogue has %v)", name, tm.Names())
	default:
		log.Printf("❌ Rejected invocation of %s: %v", name, err)
	}
	if r := tm.getRecorder(); r != nil {
		r.RecordRejection(ctx, name, err)
	}
	return err
}
