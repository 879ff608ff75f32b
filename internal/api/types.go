// In file: internal/api/types.go

// Package api defines the JSON bodies of the agent's HTTP surface.
package api

import (
	"github.com/dileep-u-k/voice-tool-gateway/internal/agent"
	"github.com/dileep-u-k/voice-tool-gateway/internal/llm"
	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

// ErrorResponse is returned for every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	// Field is set for validation errors.
	Field string `json:"field,omitempty"`
}

// HealthResponse describes the running process.
type HealthResponse struct {
	Status    string `json:"status"`
	Variant   string `json:"variant"`
	Assistant string `json:"assistant"`
	Tools     int    `json:"tools"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// ToolsResponse lists the catalogue in name order.
type ToolsResponse struct {
	Tools []tools.Tool `json:"tools"`
}

// InvokeRequest carries the arguments for a direct tool invocation.
type InvokeRequest struct {
	Arguments map[string]any `json:"arguments"`
}

// InvokeResponse is the text the tool produced.
type InvokeResponse struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
}

// StartSessionResponse identifies a new session and what to say first.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

// TurnRequest is one transcribed user utterance.
type TurnRequest struct {
	Utterance string `json:"utterance" binding:"required"`
}

// TurnResponse is what the assistant should say back.
type TurnResponse struct {
	Reply     string                 `json:"reply"`
	ToolCalls []agent.ToolCallRecord `json:"tool_calls"`
	Usage     llm.Usage              `json:"usage"`
	LatencyMS int64                  `json:"latency_ms"`
}
