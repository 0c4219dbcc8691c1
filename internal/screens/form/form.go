// Package form renders one wizard form from its field definition and hands
// validated input to the progression store.
package form

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/forms"
	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/ui/components"
	"github.com/abhisek/formwiz/internal/ui/layout"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

const inputWidth = 40

// input is the widget behind one field. Only the member matching the
// field kind is used.
type input struct {
	field  forms.Field
	text   components.TextInput
	choice components.Choice
	toggle components.Toggle
}

func newInput(f forms.Field, prefill catalog.FieldValue) input {
	in := input{field: f}
	switch f.Kind {
	case forms.KindSelect, forms.KindMultiSelect:
		opts := make([]components.ChoiceOption, len(f.Options))
		for i, o := range f.Options {
			opts[i] = components.ChoiceOption{Value: o.Value, Label: o.Label}
		}
		var pre []string
		if s, ok := prefill.AsText(); ok {
			pre = []string{s}
		} else if items, ok := prefill.AsList(); ok {
			pre = items
		}
		in.choice = components.NewChoice(opts, f.Kind == forms.KindMultiSelect, pre...)
	case forms.KindCheckbox:
		on, _ := prefill.AsBool()
		in.toggle = components.Toggle{Label: f.Label, On: on}
	default:
		s, _ := prefill.AsText()
		in.text = components.NewTextInput(f.Placeholder, s, f.Kind == forms.KindNumber, inputWidth)
	}
	return in
}

func (in *input) focus(on bool) tea.Cmd {
	switch in.field.Kind {
	case forms.KindSelect, forms.KindMultiSelect:
		in.choice.Focused = on
	case forms.KindCheckbox:
		in.toggle.Focused = on
	default:
		if on {
			return in.text.Focus()
		}
		in.text.Blur()
	}
	return nil
}

func (in input) update(msg tea.Msg) (input, tea.Cmd) {
	var cmd tea.Cmd
	switch in.field.Kind {
	case forms.KindSelect, forms.KindMultiSelect:
		in.choice, cmd = in.choice.Update(msg)
	case forms.KindCheckbox:
		in.toggle, cmd = in.toggle.Update(msg)
	default:
		in.text, cmd = in.text.Update(msg)
	}
	return in, cmd
}

// value is the raw input in the shape forms.Definition.Validate expects.
func (in input) value() catalog.FieldValue {
	switch in.field.Kind {
	case forms.KindSelect:
		return catalog.Text(in.choice.Value())
	case forms.KindMultiSelect:
		return catalog.List(in.choice.Selected()...)
	case forms.KindCheckbox:
		return catalog.Bool(in.toggle.On)
	}
	return catalog.Text(in.text.Value())
}

func (in input) view() string {
	switch in.field.Kind {
	case forms.KindSelect, forms.KindMultiSelect:
		return in.choice.View()
	case forms.KindCheckbox:
		return in.toggle.View()
	}
	return in.text.View()
}

// FormScreen collects the fields of one form.
type FormScreen struct {
	ctx      context.Context
	store    *progression.Store
	def      forms.Definition
	info     catalog.FormInfo
	category catalog.CategoryInfo

	inputs []input
	submit components.Button
	focus  int // len(inputs) is the submit button
	errs   forms.FieldErrors
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)
var _ screen.Router = (*FormScreen)(nil)

// New builds the screen for def, prefilled from the data already collected.
func New(ctx context.Context, st *progression.Store, def forms.Definition) *FormScreen {
	info, _ := st.Form(def.FormID)
	cat, _ := st.Category(def.CategoryID)
	prefill := def.Prefill(st.Data())

	s := &FormScreen{
		ctx:      ctx,
		store:    st,
		def:      def,
		info:     info,
		category: cat,
		submit:   components.NewButton("Save & Continue"),
	}
	for _, f := range def.Fields {
		s.inputs = append(s.inputs, newInput(f, prefill[f.Key]))
	}
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *FormScreen) Title() string {
	return s.category.Name + " › " + s.info.Name
}

func (s *FormScreen) Route() string {
	return s.info.Route
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Ctrl+S/N", Description: "Save & next"},
		{Key: "Ctrl+P", Description: "Prev form"},
		{Key: "Esc", Description: "Dashboard"},
	}
}

func (s *FormScreen) setFocus(i int) tea.Cmd {
	n := len(s.inputs) + 1
	i = (i%n + n) % n
	if s.focus < len(s.inputs) {
		s.inputs[s.focus].focus(false)
	}
	s.focus = i
	s.submit.Focused = i == len(s.inputs)
	if i < len(s.inputs) {
		return s.inputs[i].focus(true)
	}
	return nil
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.focus < len(s.inputs) {
			var cmd tea.Cmd
			s.inputs[s.focus], cmd = s.inputs[s.focus].update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch key.String() {
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "ctrl+s", "ctrl+n":
		// Moving forward always goes through a save so the current form
		// is completed before the next one opens.
		return s, s.save()
	case "ctrl+p":
		s.store.NavigatePrevious(s.ctx)
		return s, nil
	case "enter":
		if s.focus == len(s.inputs) {
			return s, s.save()
		}
		return s, s.setFocus(s.focus + 1)
	}

	if s.focus < len(s.inputs) {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].update(msg)
		return s, cmd
	}
	return s, nil
}

// Values returns the raw input of every field.
func (s *FormScreen) Values() catalog.FieldMap {
	raw := catalog.FieldMap{}
	for _, in := range s.inputs {
		raw[in.field.Key] = in.value()
	}
	return raw
}

// save validates the input and submits it. On failure the field messages
// are shown and focus moves to the first failing field.
func (s *FormScreen) save() tea.Cmd {
	payload, err := s.def.Validate(s.Values())
	var fe forms.FieldErrors
	if errors.As(err, &fe) {
		s.errs = fe
		for i, in := range s.inputs {
			if _, bad := fe[in.field.Key]; bad {
				return s.setFocus(i)
			}
		}
		return nil
	}
	s.errs = nil
	s.store.Submit(s.ctx, s.def.CategoryID, s.def.FormID, payload)
	return nil
}

// Errors returns the messages from the last failed save.
func (s *FormScreen) Errors() forms.FieldErrors { return s.errs }

func (s *FormScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.def.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.def.Description))
	b.WriteString("\n\n")

	for i, in := range s.inputs {
		label := in.field.Label
		if in.field.Required {
			label += " *"
		}
		if in.field.Kind != forms.KindCheckbox {
			style := theme.Label
			if i == s.focus {
				style = theme.Selected
			}
			b.WriteString(style.Render(label))
			b.WriteString("\n")
		}
		b.WriteString(in.view())
		b.WriteString("\n")
		if in.field.Help != "" {
			b.WriteString(theme.Hint.Render(in.field.Help))
			b.WriteString("\n")
		}
		if msg, bad := s.errs[in.field.Key]; bad {
			b.WriteString(theme.FieldError.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(s.submit.View())

	card := theme.Card
	if s.focus == len(s.inputs) {
		card = theme.FocusedCard
	}
	content := card.Width(min(width-4, 72)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}
