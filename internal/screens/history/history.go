// Package history shows the event log: wizard progression events and LLM
// requests, newest first.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/store"
	"github.com/abhisek/formwiz/internal/ui/layout"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

// Limit caps how many events of each kind are loaded.
const Limit = 100

// Entry is one line of the merged log.
type Entry struct {
	Sequence  int64
	Timestamp time.Time
	Kind      string // "form" or "llm"
	Summary   string
	Details   []string
}

type loadedMsg struct {
	Entries []Entry
	Err     error
}

// HistoryScreen lists recent events.
type HistoryScreen struct {
	ctx      context.Context
	events   store.EventRepo
	entries  []Entry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(ctx context.Context, events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{ctx: ctx, events: events, expanded: map[int]bool{}}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := Load(s.ctx, s.events, Limit)
		return loadedMsg{Entries: entries, Err: err}
	}
}

// Load reads up to limit events of each kind and merges them newest first.
func Load(ctx context.Context, events store.EventRepo, limit int) ([]Entry, error) {
	opts := store.QueryOpts{Limit: limit}

	formEvents, err := events.QueryFormEvents(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("query form events: %w", err)
	}
	llmEvents, err := events.QueryLLMRequests(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}

	entries := make([]Entry, 0, len(formEvents)+len(llmEvents))
	for _, e := range formEvents {
		entries = append(entries, formEntry(e))
	}
	for _, e := range llmEvents {
		entries = append(entries, llmEntry(e))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sequence > entries[j].Sequence })
	return entries, nil
}

func formEntry(e store.FormEventRecord) Entry {
	summary := e.Action
	if e.FormID != "" {
		summary += " " + e.FormID
	} else if e.CategoryID != "" {
		summary += " " + e.CategoryID
	}

	var details []string
	if e.Route != "" {
		details = append(details, "route: "+e.Route)
	}
	if e.Detail != "" {
		details = append(details, "detail: "+e.Detail)
	}
	details = append(details, "session: "+e.SessionID)

	return Entry{Sequence: e.Sequence, Timestamp: e.Timestamp, Kind: "form", Summary: summary, Details: details}
}

func llmEntry(e store.LLMRequestRecord) Entry {
	status := "ok"
	if !e.Success {
		status = "failed"
	}
	details := []string{
		fmt.Sprintf("model: %s/%s", e.Provider, e.Model),
		fmt.Sprintf("tokens: %d in, %d out", e.InputTokens, e.OutputTokens),
		fmt.Sprintf("latency: %dms", e.LatencyMs),
	}
	if e.ErrorMessage != "" {
		details = append(details, "error: "+e.ErrorMessage)
	}
	return Entry{
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
		Kind:      "llm",
		Summary:   fmt.Sprintf("%s request %s", e.Purpose, status),
		Details:   details,
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.entries = msg.Entries
		s.loaded = true

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.entries) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo events yet.")
	}

	// Keep the selected row on screen.
	start := 0
	if visible := max(height-2, 1); s.selected >= visible {
		start = s.selected - visible + 1
	}

	var b strings.Builder
	for i := start; i < len(s.entries); i++ {
		e := s.entries[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		kind := theme.Subtitle.Render(fmt.Sprintf("%-4s", e.Kind))
		line := fmt.Sprintf("%s#%d  %s  ", prefix, e.Sequence, e.Timestamp.Local().Format("Jan 02 15:04:05"))
		b.WriteString(style.Render(line) + kind + "  " + style.Render(e.Summary))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range e.Details {
				b.WriteString(theme.Hint.Render("      " + d))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
