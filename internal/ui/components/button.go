package components

import (
	"github.com/abhisek/formwiz/internal/ui/theme"
)

// Button is a form action such as Submit. It is drawn focused or not; the
// owning screen decides what enter does.
type Button struct {
	Label   string
	Focused bool
}

func NewButton(label string) Button {
	return Button{Label: label}
}

func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
