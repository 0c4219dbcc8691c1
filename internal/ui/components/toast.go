package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

// DefaultToastDuration is how long a notice stays up.
const DefaultToastDuration = 3 * time.Second

// ToastExpiredMsg dismisses the toast with the matching id.
type ToastExpiredMsg struct{ ID int }

// Toasts shows queued notices one at a time, each for Duration.
type Toasts struct {
	Duration time.Duration

	queue []progression.Notice
	seq   int
}

func NewToasts(d time.Duration) Toasts {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return Toasts{Duration: d}
}

// Push enqueues n. The returned command starts the timer when n is shown
// immediately.
func (t Toasts) Push(n progression.Notice) (Toasts, tea.Cmd) {
	t.queue = append(t.queue, n)
	if len(t.queue) == 1 {
		return t, t.expire()
	}
	return t, nil
}

func (t Toasts) expire() tea.Cmd {
	id := t.seq
	return tea.Tick(t.Duration, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} })
}

func (t Toasts) Update(msg tea.Msg) (Toasts, tea.Cmd) {
	m, ok := msg.(ToastExpiredMsg)
	if !ok || m.ID != t.seq || len(t.queue) == 0 {
		return t, nil
	}
	t.queue = t.queue[1:]
	t.seq++
	if len(t.queue) > 0 {
		return t, t.expire()
	}
	return t, nil
}

// Current returns the visible notice.
func (t Toasts) Current() (progression.Notice, bool) {
	if len(t.queue) == 0 {
		return progression.Notice{}, false
	}
	return t.queue[0], true
}

// Len is the number of pending notices including the visible one.
func (t Toasts) Len() int { return len(t.queue) }

func (t Toasts) View() string {
	n, ok := t.Current()
	if !ok {
		return ""
	}
	color := theme.Secondary
	switch n.Kind {
	case progression.NoticeSuccess:
		color = theme.Success
	case progression.NoticeWarning:
		color = theme.Warning
	}
	title := lipgloss.NewStyle().Foreground(color).Bold(true).Render(n.Title)
	return title + "  " + theme.Body.Render(n.Description)
}
