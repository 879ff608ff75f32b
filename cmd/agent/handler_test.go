package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/voice-tool-gateway/internal/agent"
	"github.com/dileep-u-k/voice-tool-gateway/internal/api"
	"github.com/dileep-u-k/voice-tool-gateway/internal/llm"
	"github.com/dileep-u-k/voice-tool-gateway/internal/stats"
	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

// weatherThenAnswer asks for the weather once, then answers with fixed text.
type weatherThenAnswer struct{}

func (weatherThenAnswer) Generate(_ context.Context, messages []llm.Message, _ *llm.GenerationConfig, _ []tools.Tool) (*llm.GenerationResult, error) {
	last := messages[len(messages)-1]
	if last.Role == llm.RoleTool {
		return &llm.GenerationResult{Content: last.Content, Usage: llm.Usage{TotalTokens: 7}}, nil
	}
	return &llm.GenerationResult{
		ToolCalls: []*tools.ToolCall{{ID: "c1", Type: tools.ToolTypeFunction, Function: tools.ToolCallFunction{Name: "weather", Arguments: `{"location":"Noosa Heads"}`}}},
		Usage:     llm.Usage{TotalTokens: 5},
	}, nil
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	weather := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Partly cloudy +22°C"))
	}))
	t.Cleanup(weather.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	variant, err := agent.NewWeatherVariant(weather.URL, time.Second)
	require.NoError(t, err)
	profiler := stats.NewProfiler(rdb, "")
	variant.Catalogue.SetRecorder(profiler)

	controller := agent.NewController(variant, weatherThenAnswer{}, llm.GenerationConfig{Model: "test"}, agent.NewRedisSessionStore(rdb, time.Minute))
	engine := gin.New()
	NewAgentHandler(controller, profiler, GetBuildInfo()).Register(engine)
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndListTools(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[api.HealthResponse](t, w)
	assert.Equal(t, "weather", health.Variant)
	assert.Equal(t, 1, health.Tools)
	assert.Equal(t, "dev", health.Version)

	w = do(t, engine, http.MethodGet, "/api/v1/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[api.ToolsResponse](t, w)
	require.Len(t, list.Tools, 1)
	assert.Equal(t, "weather", list.Tools[0].Function.Name)
	assert.Equal(t, []string{"location"}, list.Tools[0].Function.Parameters.Required)
}

func TestInvokeTool(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("success", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/tools/weather/invoke", api.InvokeRequest{Arguments: map[string]any{"location": "Noosa"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "The weather in Noosa right now is Partly cloudy +22°C.", decode[api.InvokeResponse](t, w).Result)
	})

	t.Run("unknown tool", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/tools/teleport/invoke", api.InvokeRequest{})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		w := do(t, engine, http.MethodPost, "/api/v1/tools/weather/invoke", nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "location", decode[api.ErrorResponse](t, w).Field)
	})

	t.Run("stats reflect invocations", func(t *testing.T) {
		w := do(t, engine, http.MethodGet, "/api/v1/tools/weather/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)
		profile := decode[stats.ToolProfile](t, w)
		assert.EqualValues(t, 1, profile.TotalSuccesses)
		assert.EqualValues(t, 1, profile.TotalValidation)

		w = do(t, engine, http.MethodGet, "/api/v1/tools/teleport/stats", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionLifecycle(t *testing.T) {
	engine := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	started := decode[api.StartSessionResponse](t, w)
	assert.NotEmpty(t, started.SessionID)
	assert.Equal(t, "Hey, how can I help you today", started.Greeting)

	turnPath := "/api/v1/sessions/" + started.SessionID + "/turns"
	w = do(t, engine, http.MethodPost, turnPath, api.TurnRequest{Utterance: "How's the weather in Noosa Heads?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	turn := decode[api.TurnResponse](t, w)
	assert.Equal(t, "The weather in Noosa Heads right now is Partly cloudy +22°C.", turn.Reply)
	require.Len(t, turn.ToolCalls, 1)
	assert.Equal(t, "weather", turn.ToolCalls[0].Name)
	assert.Equal(t, 12, turn.Usage.TotalTokens)

	w = do(t, engine, http.MethodPost, turnPath, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, engine, http.MethodDelete, "/api/v1/sessions/"+started.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, engine, http.MethodPost, turnPath, api.TurnRequest{Utterance: "still there?"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, engine, http.MethodDelete, "/api/v1/sessions/"+started.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
