package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/router"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/screens/welcome"
)

func newModel(t *testing.T, splash bool) AppModel {
	t.Helper()
	m, err := New(context.Background(), Options{Splash: splash})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(m AppModel, msg tea.Msg) AppModel {
	updated, _ := m.Update(msg)
	return updated.(AppModel)
}

func routeOf(s screen.Screen) string {
	if r, ok := s.(screen.Router); ok {
		return r.Route()
	}
	return ""
}

func TestApp_OpenFormAndBack(t *testing.T) {
	m := newModel(t, false)
	if got := routeOf(m.router.Active()); got != catalog.RouteDashboard {
		t.Fatalf("root route = %q, want dashboard", got)
	}

	m = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}
	if got := routeOf(m.router.Active()); got != "/forms/category1/form1" {
		t.Errorf("active route = %q", got)
	}
	if got := m.router.Active().Title(); got != "Personal Information › Basic Details" {
		t.Errorf("title = %q", got)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	m = send(m, cmd())
	if m.router.Depth() != 1 {
		t.Errorf("depth after esc = %d, want 1", m.router.Depth())
	}
}

func TestApp_LockedFormRaisesToast(t *testing.T) {
	m := newModel(t, false)
	m = send(m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = send(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if m.router.Depth() != 1 {
		t.Errorf("locked form should not open, depth = %d", m.router.Depth())
	}
	n, ok := m.toasts.Current()
	if !ok || n.Title != "Form Locked" {
		t.Errorf("toast = %+v, want Form Locked", n)
	}
}

func TestApp_NavigateMsg(t *testing.T) {
	tests := []struct {
		route     string
		wantDepth int
		wantTitle string
	}{
		{catalog.RouteCompletion, 2, "Completion"},
		{"/forms/category2/form2", 2, "Contact Information › Additional Contacts"},
		{"/nowhere", 2, "Unknown Page"},
		{catalog.RouteDashboard, 1, "Dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			m := newModel(t, false)
			m = send(m, router.NavigateMsg{Route: tt.route})
			if m.router.Depth() != tt.wantDepth {
				t.Errorf("depth = %d, want %d", m.router.Depth(), tt.wantDepth)
			}
			if got := m.router.Active().Title(); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestApp_SplashReplacedByDashboard(t *testing.T) {
	m := newModel(t, true)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	if cmd == nil {
		t.Fatal("keypress should leave the splash")
	}
	m = send(m, findReplace(t, cmd))
	if got := routeOf(m.router.Active()); got != catalog.RouteDashboard {
		t.Errorf("active route = %q, want dashboard", got)
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

// findReplace runs cmd and returns the ReplaceScreenMsg inside it.
func findReplace(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if r, ok := c().(router.ReplaceScreenMsg); ok {
				return r
			}
		}
	}
	if r, ok := msg.(router.ReplaceScreenMsg); ok {
		return r
	}
	t.Fatalf("no ReplaceScreenMsg in %T", msg)
	return nil
}

func TestApp_View(t *testing.T) {
	m := newModel(t, false)
	if v := m.View(); v.Content == nil {
		t.Error("expected content")
	}

	small := send(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if v := small.View(); v.Content == nil {
		t.Error("expected the resize message")
	}
}
