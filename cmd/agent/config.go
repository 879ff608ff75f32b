// In file: cmd/agent/config.go
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dileep-u-k/voice-tool-gateway/internal/agent"
	"github.com/dileep-u-k/voice-tool-gateway/internal/clinic"
	"github.com/dileep-u-k/voice-tool-gateway/internal/tools"
)

const (
	providerOpenAI = "openai"
	providerGemini = "gemini"
)

// AppConfig holds all configuration for the agent, loaded from the environment
// and the optional clinic profile.
type AppConfig struct {
	Variant        string
	APIBaseURL     string
	WeatherBaseURL string
	Host           string
	Port           string
	Timezone       string
	RedisAddr      string
	SessionTTL     time.Duration
	ToolTimeout    time.Duration

	LLMProvider  string
	LLMModel     string
	OpenAIAPIKey string
	GeminiAPIKey string

	Profile clinic.Profile
}

// Addr is the listen address.
func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoadConfig reads .env files (outside release mode) and then the environment.
func LoadConfig() (*AppConfig, error) {
	// In Docker (GIN_MODE=release) the environment is provided directly.
	if os.Getenv("GIN_MODE") != "release" {
		for _, file := range []string{".env.local", ".env"} {
			if _, err := os.Stat(file); err != nil {
				continue
			}
			if err := godotenv.Load(file); err != nil {
				log.Printf("WARNING: Could not load %s: %v", file, err)
			}
		}
	}
	return configFromEnv(os.Getenv)
}

// configFromEnv builds the config from a lookup function so tests do not
// have to touch the process environment.
func configFromEnv(getenv func(string) string) (*AppConfig, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &AppConfig{
		Variant:        strings.ToLower(env("AGENT_VARIANT", agent.VariantClinic)),
		APIBaseURL:     env("API_BASE_URL", clinic.DefaultBaseURL),
		WeatherBaseURL: env("WEATHER_BASE_URL", tools.DefaultWeatherBaseURL),
		Host:           env("HOST", "0.0.0.0"),
		Port:           env("PORT", "8081"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		LLMProvider:    strings.ToLower(env("LLM_PROVIDER", providerOpenAI)),
		LLMModel:       env("LLM_MODEL", ""),
		OpenAIAPIKey:   getenv("OPENAI_API_KEY"),
		GeminiAPIKey:   getenv("GEMINI_API_KEY"),
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(env("SESSION_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.ToolTimeout, err = time.ParseDuration(env("TOOL_TIMEOUT", "15s")); err != nil {
		return nil, fmt.Errorf("invalid TOOL_TIMEOUT: %w", err)
	}

	switch cfg.Variant {
	case agent.VariantClinic, agent.VariantWeather:
	default:
		return nil, fmt.Errorf("AGENT_VARIANT must be %q or %q, got %q", agent.VariantClinic, agent.VariantWeather, cfg.Variant)
	}

	switch cfg.LLMProvider {
	case providerOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		if cfg.LLMModel == "" {
			cfg.LLMModel = "gpt-4o"
		}
	case providerGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
		}
		if cfg.LLMModel == "" {
			cfg.LLMModel = "gemini-1.5-flash"
		}
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", providerOpenAI, providerGemini, cfg.LLMProvider)
	}

	cfg.Profile = clinic.DefaultProfile()
	if path := getenv("CLINIC_PROFILE"); path != "" {
		if cfg.Profile, err = clinic.LoadProfile(path); err != nil {
			return nil, err
		}
	}
	if tz := getenv("TIMEZONE"); tz != "" {
		cfg.Profile.Timezone = tz
	}
	cfg.Timezone = cfg.Profile.Timezone
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
