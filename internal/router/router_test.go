package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/screen"
)

type stubScreen struct {
	title   string
	route   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Route() string                           { return s.route }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestPopToRoot(t *testing.T) {
	r := New(&stubScreen{title: "root"})
	r.Push(&stubScreen{title: "a"})
	r.Push(&stubScreen{title: "b"})

	r.PopToRoot()
	if r.Depth() != 1 || r.Active().Title() != "root" {
		t.Fatalf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestNavigate(t *testing.T) {
	resolved := []string{}
	resolve := func(route string) screen.Screen {
		resolved = append(resolved, route)
		return &stubScreen{title: route, route: route}
	}
	r := New(&stubScreen{title: "dashboard", route: "/"})

	r.Navigate("/forms/a", resolve)
	if r.Depth() != 2 || r.Active().Title() != "/forms/a" {
		t.Fatalf("after first navigate: depth %d, active %q", r.Depth(), r.Active().Title())
	}

	r.Navigate("/forms/b", resolve)
	if r.Depth() != 2 || r.Active().Title() != "/forms/b" {
		t.Fatalf("form to form should replace: depth %d, active %q", r.Depth(), r.Active().Title())
	}

	r.Navigate("/forms/b", resolve)
	if len(resolved) != 2 {
		t.Errorf("navigating to the active route should not rebuild it, resolved %v", resolved)
	}

	r.Navigate("/", resolve)
	if r.Depth() != 1 || r.Active().Title() != "dashboard" {
		t.Fatalf("root route: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestNavigatorDrain(t *testing.T) {
	var n Navigator
	n.NavigateTo("/a")
	n.NavigateTo("/b")

	got := n.Drain()
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Fatalf("drain = %v", got)
	}
	if len(n.Drain()) != 0 {
		t.Error("second drain should be empty")
	}
}
