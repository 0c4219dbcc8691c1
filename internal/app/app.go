// Package app is the root Bubble Tea model. It owns the screen router and
// connects the progression store's router and notifier to the UI.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/router"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/screens/completion"
	"github.com/abhisek/formwiz/internal/screens/dashboard"
	"github.com/abhisek/formwiz/internal/screens/form"
	"github.com/abhisek/formwiz/internal/screens/placeholder"
	"github.com/abhisek/formwiz/internal/screens/welcome"
	"github.com/abhisek/formwiz/internal/store"
	"github.com/abhisek/formwiz/internal/ui/components"
	"github.com/abhisek/formwiz/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Catalog  catalog.Catalog
	Storage  progression.Storage
	Events   store.EventRepo
	Reviewer completion.Reviewer // nil hides the review action
	Logger   *zap.Logger

	// Splash shows the welcome screen before the dashboard.
	Splash bool

	ToastDuration time.Duration
}

// noticeQueue collects notices raised during an update.
type noticeQueue struct {
	pending []progression.Notice
}

func (q *noticeQueue) Notify(n progression.Notice) { q.pending = append(q.pending, n) }

func (q *noticeQueue) drain() []progression.Notice {
	out := q.pending
	q.pending = nil
	return out
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx       context.Context
	store     *progression.Store
	events    store.EventRepo
	reviewer  completion.Reviewer
	log       *zap.Logger
	router    *router.Router
	navigator *router.Navigator
	notices   *noticeQueue
	toasts    components.Toasts
	width     int
	height    int
}

// New builds the progression store and the screen stack.
func New(ctx context.Context, opts Options) (AppModel, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.Catalog) == 0 {
		opts.Catalog = catalog.Default()
	}

	m := AppModel{
		ctx:       ctx,
		events:    opts.Events,
		reviewer:  opts.Reviewer,
		log:       opts.Logger.Named("app"),
		navigator: &router.Navigator{},
		notices:   &noticeQueue{},
		toasts:    components.NewToasts(opts.ToastDuration),
	}

	st, err := progression.New(ctx, progression.Options{
		Catalog:      opts.Catalog,
		Storage:      opts.Storage,
		Router:       m.navigator,
		Notifier:     m.notices,
		Events:       opts.Events,
		Logger:       opts.Logger,
		SavedMessage: forms.SavedMessage,
	})
	if err != nil {
		return AppModel{}, fmt.Errorf("create progression store: %w", err)
	}
	m.store = st

	dash := func() screen.Screen { return dashboard.New(ctx, st, opts.Events) }
	if opts.Splash {
		m.router = router.New(welcome.New(st.OverallProgress(), dash))
	} else {
		m.router = router.New(dash())
	}
	return m, nil
}

// Store exposes the progression store.
func (m AppModel) Store() *progression.Store { return m.store }

// resolve builds the screen for a wizard route.
func (m AppModel) resolve(route string) screen.Screen {
	switch route {
	case catalog.RouteDashboard:
		return dashboard.New(m.ctx, m.store, m.events)
	case catalog.RouteCompletion:
		return completion.New(m.ctx, m.store, m.reviewer)
	}
	if f, ok := m.store.Catalog().FormByRoute(route); ok {
		if def, ok := forms.Lookup(f.ID); ok {
			return form.New(m.ctx, m.store, def)
		}
	}
	m.log.Warn("unknown route", zap.String("route", route))
	return placeholder.New(route)
}

func (m AppModel) navigate(route string) tea.Cmd {
	m.log.Debug("navigate", zap.String("route", route), zap.Int("depth", m.router.Depth()))
	return m.router.Navigate(route, m.resolve)
}

// flush applies the routes and notices the store queued during an update.
func (m AppModel) flush() (AppModel, tea.Cmd) {
	var cmds []tea.Cmd
	for _, route := range m.navigator.Drain() {
		cmds = append(cmds, m.navigate(route))
	}
	for _, n := range m.notices.drain() {
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Push(n)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.ToastExpiredMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Update(msg)
		return m, cmd

	case router.NavigateMsg:
		cmd := m.navigate(msg.Route)
		var flushed tea.Cmd
		m, flushed = m.flush()
		return m, tea.Batch(cmd, flushed)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.store.Close()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	var flushed tea.Cmd
	m, flushed = m.flush()
	return m, tea.Batch(cmd, flushed)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.store.OverallProgress(), m.width)

	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	footer := layout.RenderFooter(hints, m.toasts.View(), m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer m.store.Close()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
