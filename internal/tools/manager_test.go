package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTool records how often it runs and returns a fixed outcome.
type countingTool struct {
	name    string
	schema  JSONSchema
	outcome Outcome
	calls   atomic.Int32
	lastArg Args
	mu      sync.Mutex
}

func (c *countingTool) Definition() Tool {
	return NewFunctionTool(c.name, "test tool "+c.name, c.schema)
}

func (c *countingTool) Execute(_ context.Context, args Args) Outcome {
	c.calls.Add(1)
	c.mu.Lock()
	c.lastArg = args
	c.mu.Unlock()
	return c.outcome
}

type fakeRecorder struct {
	mu         sync.Mutex
	invoked    []string
	rejections []error
}

func (f *fakeRecorder) RecordInvocation(_ context.Context, tool string, _ Outcome, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invoked = append(f.invoked, tool)
}

func (f *fakeRecorder) RecordRejection(_ context.Context, _ string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections = append(f.rejections, err)
}

func newEchoTool(name string) *countingTool {
	return &countingTool{
		name: name,
		schema: ObjectSchema(map[string]*JSONSchema{
			"text": {Type: "string"},
		}, "text"),
		outcome: Ok("done " + name),
	}
}

func TestToolManager_Register(t *testing.T) {
	t.Run("duplicate names are rejected", func(t *testing.T) {
		tm := NewToolManager()
		require.NoError(t, tm.Register(newEchoTool("echo")))
		err := tm.Register(newEchoTool("echo"))
		assert.ErrorIs(t, err, ErrDuplicateTool)
		assert.Equal(t, 1, tm.ToolCount())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		tm := NewToolManager()
		assert.ErrorIs(t, tm.Register(newEchoTool("")), ErrToolNameRequired)
	})
}

func TestToolManager_Describe(t *testing.T) {
	tm := NewToolManager()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, tm.Register(newEchoTool(name)))
	}

	first := tm.Describe()
	second := tm.Describe()

	require.Len(t, first, 3)
	assert.Equal(t, first, second)

	seen := map[string]int{}
	for _, def := range first {
		seen[def.Function.Name]++
		assert.Equal(t, ToolTypeFunction, def.Type)
	}
	assert.Equal(t, map[string]int{"alpha": 1, "mid": 1, "zeta": 1}, seen)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, tm.Names())
}

func TestToolManager_Invoke(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tool is not validated or executed", func(t *testing.T) {
		tm := NewToolManager()
		tool := newEchoTool("echo")
		require.NoError(t, tm.Register(tool))

		_, err := tm.Invoke(ctx, "missing", map[string]any{"text": "hi"})

		var unknown *UnknownToolError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "missing", unknown.Name)
		assert.ErrorIs(t, err, ErrToolNotFound)
		assert.Zero(t, tool.calls.Load())
	})

	t.Run("missing required field blocks execution", func(t *testing.T) {
		tm := NewToolManager()
		tool := newEchoTool("echo")
		require.NoError(t, tm.Register(tool))

		_, err := tm.Invoke(ctx, "echo", map[string]any{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "text", verr.Field)
		assert.Equal(t, "echo", verr.Tool)
		assert.Zero(t, tool.calls.Load())
	})

	t.Run("success returns outcome text", func(t *testing.T) {
		tm := NewToolManager()
		tool := newEchoTool("echo")
		require.NoError(t, tm.Register(tool))

		result, err := tm.Invoke(ctx, "echo", map[string]any{"text": "hi", "extra": true})
		require.NoError(t, err)
		assert.Equal(t, "done echo", result)
		assert.Equal(t, Args{"text": "hi"}, tool.lastArg)
	})

	t.Run("failed outcome is flattened to text", func(t *testing.T) {
		tm := NewToolManager()
		tool := newEchoTool("echo")
		tool.outcome = Failed("Sorry, not now.", &ExecutionError{Tool: "echo", StatusCode: 500})
		require.NoError(t, tm.Register(tool))

		result, err := tm.Invoke(ctx, "echo", map[string]any{"text": "hi"})
		require.NoError(t, err)
		assert.Equal(t, "Sorry, not now.", result)

		outcome, err := tm.InvokeOutcome(ctx, "echo", map[string]any{"text": "hi"})
		require.NoError(t, err)
		assert.True(t, outcome.Failed())
		var execErr *ExecutionError
		require.ErrorAs(t, outcome.Err(), &execErr)
		assert.Equal(t, 500, execErr.StatusCode)
	})

	t.Run("recorder sees invocations and rejections", func(t *testing.T) {
		tm := NewToolManager()
		rec := &fakeRecorder{}
		tm.SetRecorder(rec)
		require.NoError(t, tm.Register(newEchoTool("echo")))

		_, _ = tm.Invoke(ctx, "echo", map[string]any{"text": "hi"})
		_, _ = tm.Invoke(ctx, "echo", nil)
		_, _ = tm.Invoke(ctx, "nope", nil)

		assert.Equal(t, []string{"echo"}, rec.invoked)
		require.Len(t, rec.rejections, 2)
	})
}

func TestToolManager_InvokeJSON(t *testing.T) {
	ctx := context.Background()
	tm := NewToolManager()
	tool := newEchoTool("echo")
	require.NoError(t, tm.Register(tool))

	t.Run("valid json", func(t *testing.T) {
		result, err := tm.InvokeJSON(ctx, "echo", `{"text":"hello"}`)
		require.NoError(t, err)
		assert.Equal(t, "done echo", result)
	})

	t.Run("malformed json is a validation error", func(t *testing.T) {
		_, err := tm.InvokeJSON(ctx, "echo", `{"text":`)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "(root)", verr.Field)
	})

	t.Run("malformed json for unknown tool reports the unknown tool", func(t *testing.T) {
		_, err := tm.InvokeJSON(ctx, "nope", `not json`)
		assert.ErrorIs(t, err, ErrToolNotFound)
	})

	t.Run("empty arguments", func(t *testing.T) {
		_, err := tm.InvokeJSON(ctx, "echo", "")
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
	})
}

func TestToolManager_ConcurrentInvoke(t *testing.T) {
	ctx := context.Background()
	tm := NewToolManager()
	tools := make([]*countingTool, 4)
	for i := range tools {
		tools[i] = newEchoTool(fmt.Sprintf("tool%d", i))
		require.NoError(t, tm.Register(tools[i]))
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("tool%d", i%4)
			result, err := tm.Invoke(ctx, name, map[string]any{"text": "x"})
			assert.NoError(t, err)
			assert.Equal(t, "done "+name, result)
		}(i)
	}
	wg.Wait()

	for _, tool := range tools {
		assert.EqualValues(t, 10, tool.calls.Load())
	}
}
