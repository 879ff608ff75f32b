// In file: internal/llm/client.go

// Package llm contains the language-model side of the conversation controller:
// the provider-agnostic message types and the clients that turn a conversation
// plus a tool catalogue into either a reply or a set of tool calls.
package llm

import (
	"context"

	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// Name is the tool that produced a RoleTool message.
	Name       string            `json:"name,omitempty"`
	ToolCallID string            `json:"tool_call_id,omitempty"`
	ToolCalls  []*tools.ToolCall `json:"tool_calls,omitempty"`
}

// Usage is the token accounting for one or more generations.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add accumulates other into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// GenerationConfig holds the parameters that control a generation.
type GenerationConfig struct {
	// The specific model to use for the generation (e.g., "gpt-4o", "gemini-1.5-flash").
	Model string
	// Using a pointer allows us to distinguish between a value of 0.0 and an unset value.
	Temperature *float32
	MaxTokens   int
	TopP        *float32
}

// GenerationResult holds the complete output from an LLM call.
type GenerationResult struct {
	Content string
	// Models can request several tools in one turn, so this is a slice.
	ToolCalls []*tools.ToolCall
	Usage     Usage
}

// LLMClient is the interface every model provider implements.
type LLMClient interface {
	// Generate takes the full conversation history and the tools the model may
	// call, and returns a single, complete result.
	Generate(
		ctx context.Context,
		messages []Message,
		config *GenerationConfig,
		availableTools []tools.Tool,
	) (*GenerationResult, error)
}
