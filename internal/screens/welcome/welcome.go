// Package welcome is the splash shown before the dashboard.
package welcome

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/router"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/ui/components"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen fills a progress bar up to the saved progress, then waits
// for a key and replaces itself with the dashboard.
type WelcomeScreen struct {
	dashboard    func() screen.Screen
	progress     float64
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash. progress is the overall completion restored from
// storage.
func New(progress float64, dashboard func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{dashboard: dashboard, progress: progress}
}

func (w *WelcomeScreen) Title() string { return "" }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()
	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.dashboard()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// shown is the part of the progress bar revealed so far.
func (w *WelcomeScreen) shown() float64 {
	frac := min(float64(w.elapsed)/float64(totalDur), 1)
	return w.progress * frac
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width)}

	if w.elapsed >= bannerAt {
		status := "Let's get you set up."
		if w.progress > 0 {
			status = fmt.Sprintf("Welcome back! You are %d%% done.", int(math.Round(w.progress)))
		}
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(status),
			"",
			components.NewProgressBar("", w.shown(), true, min(width-10, 50)).View(),
		)
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
