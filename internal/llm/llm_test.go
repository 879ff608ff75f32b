package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

func weatherDefinition() tools.Tool {
	return tools.NewWeatherTool("", time.Second).Definition()
}

func TestOpenAIClient_Generate(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "", "tool_calls": [
				{"id": "call_1", "type": "function", "function": {"name": "weather", "arguments": "{\"location\":\"Noosa\"}"}}
			]}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("sk-test", srv.URL)
	require.NoError(t, err)

	messages := []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "weather in Noosa?"},
		{Role: RoleAssistant, ToolCalls: []*tools.ToolCall{{ID: "call_0", Type: "function", Function: tools.ToolCallFunction{Name: "weather", Arguments: `{}`}}}},
		{Role: RoleTool, Name: "weather", ToolCallID: "call_0", Content: "sunny"},
	}
	result, err := client.Generate(context.Background(), messages, &GenerationConfig{Model: "gpt-4o"}, []tools.Tool{weatherDefinition()})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, "auto", got.ToolChoice)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "weather", got.Tools[0].Function.Name)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "call_0", got.Messages[3].ToolCallID)
	require.Len(t, got.Messages[2].ToolCalls, 1)

	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_1", result.ToolCalls[0].ID)
	assert.Equal(t, `{"location":"Noosa"}`, result.ToolCalls[0].Function.Arguments)
	assert.Equal(t, 15, result.Usage.TotalTokens)
}

func TestOpenAIClient_Retries(t *testing.T) {
	t.Run("server errors are retried", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
		}))
		defer srv.Close()

		client, err := NewOpenAIClient("sk-test", srv.URL)
		require.NoError(t, err)
		client.retryDelay = time.Millisecond

		result, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "gpt-4o"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", result.Content)
		assert.EqualValues(t, 3, hits.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client, err := NewOpenAIClient("sk-test", srv.URL)
		require.NoError(t, err)
		client.retryDelay = time.Millisecond

		_, err = client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "gpt-4o"}, nil)
		assert.Error(t, err)
		assert.EqualValues(t, 1, hits.Load())
	})
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("", "")
	assert.Error(t, err)
}

func TestToGeminiContents(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "You are Cleo."},
		{Role: RoleAssistant, Content: "Hello!"},
		{Role: RoleUser, Content: "Any slots tomorrow?"},
		{Role: RoleAssistant, ToolCalls: []*tools.ToolCall{
			{ID: "a", Function: tools.ToolCallFunction{Name: "checkAvailability", Arguments: `{"date":"2024-05-01"}`}},
			{ID: "b", Function: tools.ToolCallFunction{Name: "getPractitioners", Arguments: ``}},
		}},
		{Role: RoleTool, Name: "checkAvailability", ToolCallID: "a", Content: "Available slots..."},
		{Role: RoleTool, Name: "getPractitioners", ToolCallID: "b", Content: "Available practitioners..."},
	}

	system, contents := toGeminiContents(messages)
	require.NotNil(t, system)
	assert.Equal(t, genai.Text("You are Cleo."), system.Parts[0])

	require.Len(t, contents, 4)
	assert.Equal(t, "model", contents[0].Role)
	assert.Equal(t, "user", contents[1].Role)
	assert.Equal(t, "model", contents[2].Role)
	require.Len(t, contents[2].Parts, 2)
	assert.Equal(t, genai.FunctionCall{Name: "checkAvailability", Args: map[string]any{"date": "2024-05-01"}}, contents[2].Parts[0])

	assert.Equal(t, "user", contents[3].Role)
	require.Len(t, contents[3].Parts, 2)
	assert.Equal(t, genai.FunctionResponse{Name: "getPractitioners", Response: map[string]any{"result": "Available practitioners..."}}, contents[3].Parts[1])
}

func TestConvertSchema(t *testing.T) {
	schema := convertSchema(weatherDefinition().Function.Parameters)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"location"}, schema.Required)
	require.Contains(t, schema.Properties, "location")
	assert.Equal(t, genai.TypeString, schema.Properties["location"].Type)
}

func TestToGeminiTools_ArgumentlessTools(t *testing.T) {
	noArgs := tools.NewFunctionTool("getPractitioners", "List practitioners", tools.ObjectSchema(nil))

	converted := toGeminiTools([]tools.Tool{weatherDefinition(), noArgs})
	require.Len(t, converted, 1)
	decls := converted[0].FunctionDeclarations
	require.Len(t, decls, 2)

	assert.Equal(t, "weather", decls[0].Name)
	require.NotNil(t, decls[0].Parameters)
	assert.Equal(t, genai.TypeObject, decls[0].Parameters.Type)

	assert.Equal(t, "getPractitioners", decls[1].Name)
	assert.Nil(t, decls[1].Parameters)
}

func TestParseGeminiResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(" Let me check. "),
				genai.FunctionCall{Name: "weather", Args: map[string]any{"location": "Noosa"}},
			}},
		}},
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 4, CandidatesTokenCount: 2, TotalTokenCount: 6},
	}

	result, err := parseGeminiResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Let me check.", result.Content)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "gemini-weather-0", result.ToolCalls[0].ID)
	assert.JSONEq(t, `{"location":"Noosa"}`, result.ToolCalls[0].Function.Arguments)
	assert.Equal(t, 6, result.Usage.TotalTokens)

	_, err = parseGeminiResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}
