// In file: cmd/agent/handler.go
package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/voice-tool-gateway/internal/agent"
	"github.com/dileep-u-k/voice-tool-gateway/internal/api"
	"github.com/dileep-u-k/voice-tool-gateway/internal/stats"
	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

// AgentHandler exposes the catalogue and the conversation controller to the
// voice pipeline over HTTP.
type AgentHandler struct {
	controller *agent.Controller
	catalogue  *tools.ToolManager
	profiler   *stats.Profiler
	build      BuildInfo
}

func NewAgentHandler(controller *agent.Controller, profiler *stats.Profiler, build BuildInfo) *AgentHandler {
	return &AgentHandler{
		controller: controller,
		catalogue:  controller.Variant().Catalogue,
		profiler:   profiler,
		build:      build,
	}
}

// Register mounts every route on engine.
func (h *AgentHandler) Register(engine *gin.Engine) {
	engine.GET("/healthz", h.HandleHealth)

	v1 := engine.Group("/api/v1")
	{
		v1.GET("/tools", h.HandleListTools)
		v1.POST("/tools/:name/invoke", h.HandleInvokeTool)
		v1.GET("/tools/:name/stats", h.HandleToolStats)

		v1.POST("/sessions", h.HandleStartSession)
		v1.POST("/sessions/:id/turns", h.HandleTurn)
		v1.DELETE("/sessions/:id", h.HandleEndSession)
	}
}

func (h *AgentHandler) HandleHealth(c *gin.Context) {
	variant := h.controller.Variant()
	c.JSON(http.StatusOK, api.HealthResponse{
		Status:    "ok",
		Variant:   variant.Name,
		Assistant: variant.AssistantName,
		Tools:     h.catalogue.ToolCount(),
		Version:   h.build.Version,
		GitCommit: h.build.GitCommit,
		BuildDate: h.build.BuildDate,
		GoVersion: h.build.GoVersion,
		Platform:  h.build.Platform,
	})
}

func (h *AgentHandler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, api.ToolsResponse{Tools: h.catalogue.Describe()})
}

func (h *AgentHandler) HandleInvokeTool(c *gin.Context) {
	name := c.Param("name")
	var req api.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}
	if req.Arguments == nil {
		req.Arguments = map[string]any{}
	}

	result, err := h.catalogue.Invoke(c.Request.Context(), name, req.Arguments)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.InvokeResponse{Tool: name, Result: result})
}

func (h *AgentHandler) HandleToolStats(c *gin.Context) {
	name := c.Param("name")
	if !slices.Contains(h.catalogue.Names(), name) {
		writeError(c, &tools.UnknownToolError{Name: name})
		return
	}
	profile, err := h.profiler.GetProfile(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AgentHandler) HandleStartSession(c *gin.Context) {
	session, err := h.controller.Start(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.StartSessionResponse{
		SessionID: session.ID,
		Greeting:  h.controller.Variant().Greeting,
	})
}

func (h *AgentHandler) HandleTurn(c *gin.Context) {
	startTime := time.Now()
	var req api.TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	sessionID := c.Param("id")
	log.Printf("--- New Turn (Session: %s, Utterance: '%.30s...') ---", sessionID, req.Utterance)

	result, err := h.controller.Turn(c.Request.Context(), sessionID, req.Utterance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.TurnResponse{
		Reply:     result.Reply,
		ToolCalls: result.ToolCalls,
		Usage:     result.Usage,
		LatencyMS: time.Since(startTime).Milliseconds(),
	})
}

func (h *AgentHandler) HandleEndSession(c *gin.Context) {
	if err := h.controller.End(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var validation *tools.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: err.Error(), Field: validation.Field})
	case errors.Is(err, tools.ErrToolNotFound), errors.Is(err, agent.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("❌ Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}
