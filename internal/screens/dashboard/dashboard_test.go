package dashboard

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/router"
)

type recorder struct {
	routes  []string
	notices []string
}

func newStore(t *testing.T, rec *recorder) *progression.Store {
	t.Helper()
	st, err := progression.New(context.Background(), progression.Options{
		Catalog:  catalog.Default(),
		Router:   progression.RouterFunc(func(r string) { rec.routes = append(rec.routes, r) }),
		Notifier: progression.NotifierFunc(func(n progression.Notice) { rec.notices = append(rec.notices, n.Title) }),
	})
	if err != nil {
		t.Fatalf("progression.New: %v", err)
	}
	return st
}

func complete(st *progression.Store, ids ...string) {
	for _, id := range ids {
		f, _ := st.Form(id)
		st.MarkFormCompleted(context.Background(), f.CategoryID, id)
	}
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestDashboard_SelectsFirstOpenForm(t *testing.T) {
	tests := []struct {
		name      string
		completed []string
		want      string
	}{
		{"fresh", nil, "form1_1"},
		{"partway", []string{"form1_1", "form1_2"}, "form1_3"},
		{"next category", []string{"form1_1", "form1_2", "form1_3"}, "form2_1"},
		{"all done", []string{"form1_1", "form1_2", "form1_3", "form2_1", "form2_2", "form3_1", "form3_2"}, "form1_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t, &recorder{})
			complete(st, tt.completed...)
			d := New(context.Background(), st, nil)
			row, ok := d.Selected()
			if !ok || row.Form.ID != tt.want {
				t.Errorf("selected = %q, want %q", row.Form.ID, tt.want)
			}
		})
	}
}

func TestDashboard_EnterOnLockedRow(t *testing.T) {
	rec := &recorder{}
	d := New(context.Background(), newStore(t, rec), nil)

	d.Update(key("down"))
	d.Update(key("enter"))

	if len(rec.routes) != 0 {
		t.Errorf("locked form opened: %v", rec.routes)
	}
	if len(rec.notices) != 1 || rec.notices[0] != "Form Locked" {
		t.Errorf("notices = %v, want [Form Locked]", rec.notices)
	}
}

func TestDashboard_EnterOpensForm(t *testing.T) {
	rec := &recorder{}
	d := New(context.Background(), newStore(t, rec), nil)

	d.Update(key("enter"))

	if len(rec.routes) != 1 || rec.routes[0] != "/forms/category1/form1" {
		t.Errorf("routes = %v, want [/forms/category1/form1]", rec.routes)
	}
}

func TestDashboard_ResetConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantReset bool
	}{
		{"confirm", "y", true},
		{"decline", "n", false},
		{"escape", "esc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			st := newStore(t, rec)
			complete(st, "form1_1")
			d := New(context.Background(), st, nil)

			d.Update(key("r"))
			if hints := d.KeyHints(); hints[0].Key != "y" {
				t.Fatalf("hints = %v, want the confirm prompt", hints)
			}
			d.Update(key(tt.answer))

			if d.confirmReset {
				t.Error("prompt should close after an answer")
			}
			reset := st.OverallProgress() == 0
			if reset != tt.wantReset {
				t.Errorf("reset = %v, want %v", reset, tt.wantReset)
			}
			if tt.wantReset {
				if len(rec.routes) != 1 || rec.routes[0] != catalog.RouteDashboard {
					t.Errorf("routes = %v, want [/]", rec.routes)
				}
				if row, _ := d.Selected(); row.Form.ID != "form1_1" {
					t.Errorf("selection after reset = %q", row.Form.ID)
				}
			}
		})
	}
}

func TestDashboard_CompletionShortcut(t *testing.T) {
	st := newStore(t, &recorder{})
	d := New(context.Background(), st, nil)

	if _, cmd := d.Update(key("c")); cmd != nil {
		t.Error("completion should be unavailable before every form is done")
	}

	complete(st, "form1_1", "form1_2", "form1_3", "form2_1", "form2_2", "form3_1", "form3_2")
	_, cmd := d.Update(key("c"))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if msg, ok := cmd().(router.NavigateMsg); !ok || msg.Route != catalog.RouteCompletion {
		t.Errorf("got %#v, want NavigateMsg to completion", msg)
	}
}

func TestDashboard_HistoryNeedsEvents(t *testing.T) {
	d := New(context.Background(), newStore(t, &recorder{}), nil)
	if _, cmd := d.Update(key("h")); cmd != nil {
		t.Error("history should be hidden without an event repo")
	}
	for _, h := range d.KeyHints() {
		if h.Key == "h" {
			t.Error("history hint shown without an event repo")
		}
	}
}

func TestDashboard_View(t *testing.T) {
	d := New(context.Background(), newStore(t, &recorder{}), nil)
	view := d.View(100, 40)
	for _, want := range []string{"Personal Information", "Contact Information", "Preferences"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
