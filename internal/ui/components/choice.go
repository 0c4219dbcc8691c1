package components

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/ui/theme"
)

// ChoiceOption is one value a Choice offers.
type ChoiceOption struct {
	Value string
	Label string
}

// Choice picks one option, or several when Multi is set. Left and right
// move the cursor; space selects in single mode and toggles in multi mode.
type Choice struct {
	Options []ChoiceOption
	Multi   bool
	Focused bool

	cursor   int
	selected []string
}

// NewChoice returns a Choice with the given values preselected. Values that
// are not options are dropped.
func NewChoice(options []ChoiceOption, multi bool, preselected ...string) Choice {
	c := Choice{Options: options, Multi: multi}
	for _, v := range preselected {
		if i := c.index(v); i >= 0 && !slices.Contains(c.selected, v) {
			c.selected = append(c.selected, v)
			if !multi {
				c.cursor = i
				break
			}
		}
	}
	return c
}

func (c Choice) index(value string) int {
	return slices.IndexFunc(c.Options, func(o ChoiceOption) bool { return o.Value == value })
}

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}
	switch key.String() {
	case "left", "h":
		c.cursor = (c.cursor + len(c.Options) - 1) % len(c.Options)
	case "right", "l":
		c.cursor = (c.cursor + 1) % len(c.Options)
	case "space":
		v := c.Options[c.cursor].Value
		switch {
		case !c.Multi:
			c.selected = []string{v}
		case slices.Contains(c.selected, v):
			c.selected = slices.DeleteFunc(c.selected, func(s string) bool { return s == v })
		default:
			c.selected = append(c.selected, v)
		}
	}
	return c, nil
}

// Selected returns the chosen values in option order.
func (c Choice) Selected() []string {
	out := []string{}
	for _, o := range c.Options {
		if slices.Contains(c.selected, o.Value) {
			out = append(out, o.Value)
		}
	}
	return out
}

// Value is the single chosen value, or "".
func (c Choice) Value() string {
	if s := c.Selected(); len(s) > 0 {
		return s[0]
	}
	return ""
}

func (c Choice) View() string {
	parts := make([]string, len(c.Options))
	for i, o := range c.Options {
		mark := "( )"
		if c.Multi {
			mark = "[ ]"
		}
		on := slices.Contains(c.selected, o.Value)
		if on && c.Multi {
			mark = "[x]"
		} else if on {
			mark = "(•)"
		}
		text := mark + " " + o.Label
		switch {
		case c.Focused && i == c.cursor:
			parts[i] = theme.Selected.Render(text)
		case on:
			parts[i] = theme.Done.Render(text)
		default:
			parts[i] = theme.Unselected.Render(text)
		}
	}
	return strings.Join(parts, "  ")
}

// Toggle is a single checkbox. Space flips it.
type Toggle struct {
	Label   string
	On      bool
	Focused bool
}

func (t Toggle) Update(msg tea.Msg) (Toggle, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "space" {
		t.On = !t.On
	}
	return t, nil
}

func (t Toggle) View() string {
	mark := "[ ]"
	if t.On {
		mark = "[x]"
	}
	style := theme.Unselected
	if t.Focused {
		style = theme.Selected
	}
	return style.Render(mark + " " + t.Label)
}
