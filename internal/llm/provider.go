// Package llm talks to hosted language models for the optional answer review.
// Every backend turns a single-prompt Request into validated JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a response for a prompt.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the concrete model the provider talks to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema is the JSON shape a response must have. Name is kebab-case and is
// sent as the schema name to backends that want one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a model reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// StopReason is a backend-neutral finish reason.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)
