// Package review asks a language model to sanity-check the answers
// collected by the wizard.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/llm"
)

// Purpose labels review requests in the LLM event log.
const Purpose = "review"

// ErrNoAnswers is returned when there is nothing to review.
var ErrNoAnswers = errors.New("no answers to review")

// Severity grades an issue.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one remark about a collected field.
type Issue struct {
	Field    string   `json:"field"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the model's verdict on a set of answers.
type Result struct {
	Summary string  `json:"summary"`
	Issues  []Issue `json:"issues"`
	Model   string  `json:"model"`
}

// Config tunes the review request.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the settings used by the CLI and the TUI.
func DefaultConfig() Config {
	return Config{MaxTokens: 768, Temperature: 0.2, Timeout: 30 * time.Second}
}

// Service builds review prompts and parses the replies.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService returns a Service backed by provider.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log.Named("review")}
}

type reviewOutput struct {
	Summary string `json:"summary"`
	Issues  []struct {
		Field    string `json:"field"`
		Severity string `json:"severity"`
		Message  string `json:"message"`
	} `json:"issues"`
}

// Review sends the answers in data to the model. Issues naming a field the
// wizard does not collect are dropped.
func (s *Service) Review(ctx context.Context, cat catalog.Catalog, data catalog.FieldMap) (*Result, error) {
	answers := forms.Answers(data)
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(cat, answers),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("review answers: %w", err)
	}

	var out reviewOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse review response: %w", err)
	}

	res := &Result{Summary: strings.TrimSpace(out.Summary), Model: resp.Model, Issues: []Issue{}}
	for _, is := range out.Issues {
		f, ok := forms.FieldByKey(is.Field)
		if !ok {
			s.log.Debug("dropping issue for unknown field", zap.String("field", is.Field))
			continue
		}
		res.Issues = append(res.Issues, Issue{
			Field:    is.Field,
			Label:    f.Label,
			Severity: Severity(is.Severity),
			Message:  strings.TrimSpace(is.Message),
		})
	}
	s.log.Info("answers reviewed",
		zap.String("model", resp.Model),
		zap.Int("answers", len(answers)),
		zap.Int("issues", len(res.Issues)),
	)
	return res, nil
}
