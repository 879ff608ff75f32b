// In file: cmd/agent/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/voice-tool-gateway/internal/agent"
	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
	"github.com/dileep-u-k/voice-tool-gateway/internal/llm"
	"github.com/dileep-u-k/voice-tool-gateway/internal/stats"
)

// main is the composition root: it loads configuration, builds the variant's
// catalogue and controller, and serves them until signalled.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Voice Tool Gateway | %s", buildInfo)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Printf("✅ Configuration loaded (variant: %s, provider: %s/%s).", cfg.Variant, cfg.LLMProvider, cfg.LLMModel)

	// 2. INITIALIZE SERVICES
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
	}

	client, closeClient, err := initializeLLMClient(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	defer closeClient()

	variant, err := initializeVariant(cfg)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	profiler := stats.NewProfiler(rdb, "toolstats:"+variant.Name)
	variant.Catalogue.SetRecorder(profiler)
	log.Printf("✅ %s catalogue initialized with %d tools.", variant.Name, variant.Catalogue.ToolCount())

	store := agent.NewRedisSessionStore(rdb, cfg.SessionTTL)
	controller := agent.NewController(variant, client, llm.GenerationConfig{Model: cfg.LLMModel}, store)
	handler := NewAgentHandler(controller, profiler, buildInfo)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	handler.Register(engine)

	srv := &http.Server{Addr: cfg.Addr(), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeLLMClient creates the client for the configured provider and
// returns a function that releases it.
func initializeLLMClient(cfg *AppConfig) (llm.LLMClient, func(), error) {
	switch cfg.LLMProvider {
	case providerGemini:
		client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, func() { _ = client.Close() }, nil
	default:
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, "")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, func() {}, nil
	}
}

// initializeVariant builds the assistant selected by AGENT_VARIANT.
func initializeVariant(cfg *AppConfig) (*agent.Variant, error) {
	if cfg.Variant == agent.VariantWeather {
		return agent.NewWeatherVariant(cfg.WeatherBaseURL, cfg.ToolTimeout)
	}
	api := clinic.NewClient(cfg.APIBaseURL, cfg.ToolTimeout)
	log.Printf("🏥 Clinic API at %s for %s", api.BaseURL(), cfg.Profile.ClinicName)
	return agent.NewClinicVariant(api, cfg.Profile)
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Agent is listening on http://%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
