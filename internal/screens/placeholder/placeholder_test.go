package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/router"
)

func TestPlaceholder(t *testing.T) {
	p := New("/nowhere")
	if p.Title() != "Unknown Page" {
		t.Errorf("Title = %q", p.Title())
	}
	if p.Route() != "/nowhere" {
		t.Errorf("Route = %q", p.Route())
	}
	if !strings.Contains(p.View(80, 20), "/nowhere") {
		t.Error("view should name the route")
	}

	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should navigate")
	}
	if msg, ok := cmd().(router.NavigateMsg); !ok || msg.Route != "/" {
		t.Errorf("cmd() = %#v, want NavigateMsg{/}", msg)
	}
}
