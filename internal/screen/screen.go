// Package screen defines what the router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/ui/layout"
)

// Screen is one full-window view of the wizard.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between header and footer.
	View(width, height int) string

	// Title is the header breadcrumb, e.g. "Personal Information › Basic Details".
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Router is implemented by screens that belong to a catalog route.
type Router interface {
	Route() string
}
