package llm

import (
	"context"
	"math"
	"testing"
)

func clearKeys(t *testing.T) {
	t.Helper()
	for _, d := range discoveryOrder {
		t.Setenv(d.env, "")
	}
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		want     string
		wantNone bool
	}{
		{name: "none", wantNone: true},
		{name: "anthropic only", env: map[string]string{"ANTHROPIC_API_KEY": "a"}, want: ProviderAnthropic},
		{name: "gemini wins", env: map[string]string{"ANTHROPIC_API_KEY": "a", "GEMINI_API_KEY": "g"}, want: ProviderGemini},
		{name: "openai before anthropic", env: map[string]string{"ANTHROPIC_API_KEY": "a", "OPENAI_API_KEY": "o"}, want: ProviderOpenAI},
		{name: "openrouter last", env: map[string]string{"OPENROUTER_API_KEY": "r"}, want: ProviderOpenRouter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeys(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := DiscoverConfig()
			if tt.wantNone {
				if ok {
					t.Fatalf("expected nothing, got %q", cfg.Provider)
				}
				return
			}
			if !ok || cfg.Provider != tt.want {
				t.Fatalf("provider = %q (ok=%v), want %q", cfg.Provider, ok, tt.want)
			}
			if cfg.Endpoint(cfg.Provider).APIKey == "" {
				t.Error("api key not copied")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("validate: %v", err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil || err.Error() != "FORMWIZ_LLM_ANTHROPIC_API_KEY is required for the anthropic provider" {
		t.Errorf("missing key error = %v", err)
	}

	cfg.Provider = "bard"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown provider should fail")
	}

	cfg.Provider = ProviderMock
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock: %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Error("openai without key should fail")
	}

	cfg.OpenAI.APIKey = "k"
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestLookupPrice(t *testing.T) {
	p, ok := LookupPrice("claude-haiku")
	if !ok {
		t.Fatal("alias should resolve")
	}
	if got := p.Cost(Usage{InputTokens: 1_000_000, OutputTokens: 200_000}); math.Abs(got-2) > 1e-9 {
		t.Errorf("cost = %v, want 2", got)
	}
	if _, ok := LookupPrice("meta-llama/llama-3-8b"); ok {
		t.Error("unknown model should miss")
	}
}
