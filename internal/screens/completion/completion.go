// Package completion shows the collected answers once the wizard is done
// and can ask a language model to review them.
package completion

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/review"
	"github.com/abhisek/formwiz/internal/router"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/ui/layout"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

// Reviewer checks a set of answers. *review.Service satisfies it.
type Reviewer interface {
	Review(ctx context.Context, cat catalog.Catalog, data catalog.FieldMap) (*review.Result, error)
}

// ReviewDoneMsg carries the outcome of a review started from this screen.
type ReviewDoneMsg struct {
	Result *review.Result
	Err    error
}

// CompletionScreen lists every answer grouped by form.
type CompletionScreen struct {
	ctx      context.Context
	store    *progression.Store
	reviewer Reviewer

	reviewing bool
	result    *review.Result
	err       error
}

var _ screen.Screen = (*CompletionScreen)(nil)
var _ screen.KeyHintProvider = (*CompletionScreen)(nil)
var _ screen.Router = (*CompletionScreen)(nil)

// New creates the screen. reviewer may be nil when no LLM is configured.
func New(ctx context.Context, st *progression.Store, reviewer Reviewer) *CompletionScreen {
	return &CompletionScreen{ctx: ctx, store: st, reviewer: reviewer}
}

func (s *CompletionScreen) Init() tea.Cmd { return nil }

func (s *CompletionScreen) Title() string { return "Completion" }

func (s *CompletionScreen) Route() string { return catalog.RouteCompletion }

func (s *CompletionScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Dashboard"}}
	if s.reviewer != nil {
		hints = append(hints, layout.KeyHint{Key: "v", Description: "Review answers"})
	}
	return hints
}

func (s *CompletionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ReviewDoneMsg:
		s.reviewing = false
		s.result, s.err = msg.Result, msg.Err
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, router.NavigateCmd(catalog.RouteDashboard)
		case "v":
			return s, s.startReview()
		}
	}
	return s, nil
}

func (s *CompletionScreen) startReview() tea.Cmd {
	if s.reviewer == nil || s.reviewing {
		return nil
	}
	s.reviewing = true
	s.result, s.err = nil, nil

	ctx, reviewer := s.ctx, s.reviewer
	cat, data := s.store.Catalog(), s.store.Data()
	return func() tea.Msg {
		res, err := reviewer.Review(ctx, cat, data)
		return ReviewDoneMsg{Result: res, Err: err}
	}
}

func (s *CompletionScreen) View(width, height int) string {
	var b strings.Builder
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	overall := s.store.OverallProgress()
	heading := "All done! Thank you for completing every form."
	if overall < 100 {
		heading = fmt.Sprintf("You are %d%% through the wizard.", int(math.Round(overall)))
	}
	b.WriteString(center.Render(theme.Title.Render(heading)))
	b.WriteString("\n\n")

	answers := forms.Answers(s.store.Data())
	if len(answers) == 0 {
		b.WriteString(center.Render(theme.Hint.Render("No answers collected yet.")))
		b.WriteString("\n")
	}

	var body strings.Builder
	form := ""
	for _, a := range answers {
		if a.FormID != form {
			if form != "" {
				body.WriteString("\n")
			}
			form = a.FormID
			body.WriteString(theme.Label.Render(a.FormTitle))
			body.WriteString("\n")
		}
		body.WriteString(theme.Subtitle.Render("  "+a.Label+": ") + theme.Body.Render(a.Value))
		body.WriteString("\n")
	}

	if rv := s.reviewView(); rv != "" {
		body.WriteString("\n")
		body.WriteString(rv)
	}

	if body.Len() > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Card.Width(min(width-4, 72)).Render(strings.TrimRight(body.String(), "\n"))))
	}
	return b.String()
}

func (s *CompletionScreen) reviewView() string {
	switch {
	case s.reviewing:
		return theme.Hint.Render("Reviewing your answers...")
	case s.err != nil:
		return theme.FieldError.Render("Review failed: " + s.err.Error())
	case s.result == nil:
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Label.Render("Review"))
	b.WriteString(theme.Subtitle.Render(" (" + s.result.Model + ")"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(s.result.Summary))
	b.WriteString("\n")
	if len(s.result.Issues) == 0 {
		b.WriteString(theme.Done.Render("No issues found."))
		b.WriteString("\n")
	}
	for _, is := range s.result.Issues {
		b.WriteString(severityStyle(is.Severity).Render(fmt.Sprintf("  %s %s: %s", strings.ToUpper(string(is.Severity)), is.Label, is.Message)))
		b.WriteString("\n")
	}
	return b.String()
}

func severityStyle(sev review.Severity) lipgloss.Style {
	switch sev {
	case review.SeverityError:
		return theme.FieldError
	case review.SeverityWarning:
		return lipgloss.NewStyle().Foreground(theme.Warning)
	}
	return theme.Subtitle
}
