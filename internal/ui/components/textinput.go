package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps the bubbles text input. NumericOnly drops keystrokes that
// cannot be part of a decimal number.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
}

// NewTextInput returns a blurred input.
func NewTextInput(placeholder, value string, numericOnly bool, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.SetValue(value)
	return TextInput{Model: ti, NumericOnly: numericOnly}
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

// Blur removes the cursor.
func (t *TextInput) Blur() { t.Model.Blur() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && t.NumericOnly && key.Text != "" {
		if strings.Trim(key.Text, "0123456789.-") != "" {
			return t, nil
		}
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string { return t.Model.View() }

// Value is the current text.
func (t TextInput) Value() string { return t.Model.Value() }
