package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Endpoint is one backend's credentials. Model may be a friendly alias
// such as "claude-haiku" or a full model id.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects and configures a backend.
type Config struct {
	Provider string

	Anthropic  Endpoint
	OpenAI     Endpoint
	Gemini     Endpoint
	OpenRouter Endpoint

	Retry RetryConfig

	// Timeout bounds a whole Generate call, retries included.
	Timeout time.Duration
}

// RetryConfig is exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the anthropic backend with default models.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// discoveryOrder lists the vendor key variables probed by DiscoverConfig.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig picks the first backend whose vendor API key variable is
// set. ok is false when none is.
func DiscoverConfig() (cfg Config, ok bool) {
	cfg = DefaultConfig()
	for _, d := range discoveryOrder {
		key := os.Getenv(d.env)
		if key == "" {
			continue
		}
		cfg.Provider = d.provider
		cfg.Endpoint(d.provider).APIKey = key
		return cfg, true
	}
	return Config{}, false
}

// Endpoint returns the settings for a named backend, or nil.
func (c *Config) Endpoint(provider string) *Endpoint {
	switch provider {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// Validate checks that the selected backend is known and has a key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	ep := c.Endpoint(c.Provider)
	if ep == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if ep.APIKey == "" {
		return fmt.Errorf("FORMWIZ_LLM_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
