package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"
)

const reviewReply = `{"summary":"Looks complete.","issues":[]}`

func serve(t *testing.T, status int, body any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 40},
	}
}

func chatCompletion(text, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 80, "completion_tokens": 20, "total_tokens": 100},
	}
}

func reviewRequest() Request {
	return Request{
		System:    "You review form answers.",
		Prompt:    "Name: Ada\nEmail: ada@example.com",
		Schema:    reviewSchema(),
		MaxTokens: 256,
	}
}

func TestAnthropicProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr any
	}{
		{name: "ok", status: 200, body: anthropicMessage(reviewReply, "end_turn")},
		{name: "truncated", status: 200, body: anthropicMessage(`{"summary":"Lo`, "max_tokens"), wantErr: new(*ErrMaxTokensExceeded)},
		{name: "schema mismatch", status: 200, body: anthropicMessage(`{"issues":[]}`, "end_turn"), wantErr: new(*ErrInvalidResponse)},
		{name: "rate limited", status: 429, body: map[string]any{"type": "error", "error": map[string]any{"type": "rate_limit_error", "message": "slow down"}}, wantErr: new(*ErrRateLimit)},
		{name: "server error", status: 500, body: map[string]any{"type": "error", "error": map[string]any{"type": "api_error", "message": "boom"}}, wantErr: new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewAnthropicProvider(Endpoint{APIKey: "k", Model: "claude-haiku", BaseURL: serve(t, tt.status, tt.body)})
			if err != nil {
				t.Fatal(err)
			}
			resp, err := p.Generate(context.Background(), reviewRequest())
			if tt.wantErr != nil {
				if err == nil || !errors.As(err, tt.wantErr) {
					t.Fatalf("err = %v, want %T", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(resp.Content) != reviewReply {
				t.Errorf("content = %s", resp.Content)
			}
			if resp.Usage.Total() != 160 {
				t.Errorf("total tokens = %d, want 160", resp.Usage.Total())
			}
			if resp.StopReason != StopEnd {
				t.Errorf("stop = %q", resp.StopReason)
			}
		})
	}
}

func TestOpenAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantErr any
	}{
		{name: "ok", status: 200, body: chatCompletion(reviewReply, "stop")},
		{name: "truncated", status: 200, body: chatCompletion(`{"summ`, "length"), wantErr: new(*ErrMaxTokensExceeded)},
		{name: "no choices", status: 200, body: map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}}, wantErr: new(*ErrInvalidResponse)},
		{name: "rate limited", status: 429, body: map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}, wantErr: new(*ErrRateLimit)},
		{name: "server error", status: 503, body: map[string]any{"error": map[string]any{"message": "down", "type": "server_error"}}, wantErr: new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenAIProvider(Endpoint{APIKey: "k", Model: "gpt-4o-mini", BaseURL: serve(t, tt.status, tt.body) + "/v1"})
			if err != nil {
				t.Fatal(err)
			}
			resp, err := p.Generate(context.Background(), reviewRequest())
			if tt.wantErr != nil {
				if err == nil || !errors.As(err, tt.wantErr) {
					t.Fatalf("err = %v, want %T", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Usage.InputTokens != 80 || resp.Usage.OutputTokens != 20 {
				t.Errorf("usage = %+v", resp.Usage)
			}
		})
	}
}

func TestOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(Endpoint{Model: "meta-llama/llama-3-8b"}); err == nil {
		t.Fatal("expected error without API key")
	}

	p, err := NewOpenRouterProvider(Endpoint{APIKey: "k", Model: "claude-haiku"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "claude-haiku" {
		t.Errorf("model = %q, openrouter ids must pass through", p.ModelID())
	}

	url := serve(t, 200, chatCompletion(reviewReply, "stop"))
	p, err = NewOpenRouterProvider(Endpoint{APIKey: "k", Model: "anthropic/claude-3-haiku", BaseURL: url + "/v1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(context.Background(), reviewRequest()); err != nil {
		t.Fatalf("generate: %v", err)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		aliases map[string]string
		in      string
		want    string
	}{
		{anthropicAliases, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicAliases, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{openaiAliases, "gpt-4o-mini", "gpt-4o-mini"},
		{geminiAliases, "gemini-flash", "gemini-2.0-flash"},
		{geminiAliases, "gemini-2.5-pro", "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(reviewSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s", s.Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
	issues := s.Properties["issues"]
	if issues == nil || issues.Type != genai.TypeArray {
		t.Fatalf("issues = %+v", issues)
	}
	sev := issues.Items.Properties["severity"]
	if sev == nil || len(sev.Enum) != 3 {
		t.Fatalf("severity = %+v", sev)
	}
	if s.Properties["summary"].Type != genai.TypeString {
		t.Errorf("summary type = %s", s.Properties["summary"].Type)
	}
}
