package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/progression"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

var colors = []ChoiceOption{
	{Value: "red", Label: "Red"},
	{Value: "green", Label: "Green"},
	{Value: "blue", Label: "Blue"},
}

func TestChoice_Single(t *testing.T) {
	c := NewChoice(colors, false, "green")
	if got := c.Value(); got != "green" {
		t.Fatalf("preselected = %q, want green", got)
	}
	for _, k := range []string{"right", "space"} {
		c, _ = c.Update(key(k))
	}
	if got := c.Value(); got != "blue" {
		t.Errorf("Value() = %q, want blue", got)
	}
	c, _ = c.Update(key("right"))
	c, _ = c.Update(key("space"))
	if got := c.Value(); got != "red" {
		t.Errorf("cursor should wrap, Value() = %q", got)
	}
}

func TestChoice_Multi(t *testing.T) {
	c := NewChoice(colors, true, "blue", "nope")
	if got := c.Selected(); len(got) != 1 || got[0] != "blue" {
		t.Fatalf("preselected = %v, want [blue]", got)
	}
	c, _ = c.Update(key("space"))
	c, _ = c.Update(key("left"))
	c, _ = c.Update(key("space"))
	got := c.Selected()
	want := []string{"red"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("Selected() = %v, want %v", got, want)
	}
}

func TestToggle(t *testing.T) {
	tg := Toggle{Label: "Accept"}
	tg, _ = tg.Update(key("space"))
	if !tg.On {
		t.Error("space should turn the toggle on")
	}
	tg, _ = tg.Update(key("x"))
	if !tg.On {
		t.Error("other keys should not flip the toggle")
	}
}

func TestTextInput_NumericOnly(t *testing.T) {
	ti := NewTextInput("", "", true, 10)
	ti.Focus()
	for _, k := range []string{"4", "a", "2"} {
		ti, _ = ti.Update(key(k))
	}
	if got := ti.Value(); got != "42" {
		t.Errorf("Value() = %q, want 42", got)
	}
}

func TestToasts_Queue(t *testing.T) {
	ts := NewToasts(0)
	ts, cmd := ts.Push(progression.Notice{Title: "one"})
	if cmd == nil {
		t.Fatal("first push should start a timer")
	}
	ts, cmd = ts.Push(progression.Notice{Title: "two"})
	if cmd != nil {
		t.Error("queued push should not start a timer")
	}

	ts, _ = ts.Update(ToastExpiredMsg{ID: 7})
	if n, _ := ts.Current(); n.Title != "one" {
		t.Errorf("stale expiry dismissed %q", n.Title)
	}

	ts, cmd = ts.Update(ToastExpiredMsg{ID: 0})
	if n, _ := ts.Current(); n.Title != "two" {
		t.Errorf("Current() = %q, want two", n.Title)
	}
	if cmd == nil {
		t.Error("next toast should start a timer")
	}
	ts, _ = ts.Update(ToastExpiredMsg{ID: 1})
	if ts.Len() != 0 || ts.View() != "" {
		t.Error("queue should be empty")
	}
}
