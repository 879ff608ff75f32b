// In file: internal/tools/weather_tool.go
package tools

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultWeatherBaseURL is wttr.in, a plain-text weather API.
const DefaultWeatherBaseURL = "https://wttr.in"

// WeatherTool reports current conditions for a location.
// It holds its own configured HTTP client for making external API calls.
type WeatherTool struct {
	baseURL    string
	httpClient *http.Client
}

var _ ToolExecutor = (*WeatherTool)(nil)

// NewWeatherTool creates a weather tool against baseURL (DefaultWeatherBaseURL
// when empty). The timeout bounds the single outbound request.
func NewWeatherTool(baseURL string, timeout time.Duration) *WeatherTool {
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	return &WeatherTool{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (wt *WeatherTool) Definition() Tool {
	return NewFunctionTool(
		"weather",
		"Get the weather in a location",
		ObjectSchema(map[string]*JSONSchema{
			"location": {
				Type:        "string",
				Description: "The location to get the weather for",
			},
		}, "location"),
	)
}

func (wt *WeatherTool) Execute(ctx context.Context, args Args) Outcome {
	location := args.String("location")
	fallback := fmt.Sprintf("Sorry, I couldn't get the weather for %s right now.", location)
	log.Printf("executing weather function for %s", location)

	// %C is the condition, %t the temperature.
	endpoint := fmt.Sprintf("%s/%s?format=%%C+%%t", wt.baseURL, url.PathEscape(strings.ReplaceAll(location, " ", "+")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Failed(fallback, &ExecutionError{Tool: "weather", Err: err})
	}
	req.Header.Set("User-Agent", "Voice-Tool-Gateway/1.0")

	resp, err := wt.httpClient.Do(req)
	if err != nil {
		return Failed(fallback, &ExecutionError{Tool: "weather", Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failed(fallback, &ExecutionError{Tool: "weather", StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(fallback, &ExecutionError{Tool: "weather", Err: fmt.Errorf("failed to read weather API response: %w", err)})
	}

	weather := strings.TrimSpace(string(body))
	if strings.Contains(weather, "Unknown location") {
		return Ok(fmt.Sprintf("I couldn't find the weather for '%s'. Please try another location.", location))
	}
	return Ok(fmt.Sprintf("The weather in %s right now is %s.", location, weather))
}
