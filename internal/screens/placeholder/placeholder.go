// Package placeholder is shown for routes the wizard does not know.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/router"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/ui/layout"
	"github.com/abhisek/formwiz/internal/ui/theme"
)

// PlaceholderScreen stands in for an unrecognised route.
type PlaceholderScreen struct {
	route string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.Router = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

func New(route string) *PlaceholderScreen {
	return &PlaceholderScreen{route: route}
}

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

func (p *PlaceholderScreen) Title() string { return "Unknown Page" }

func (p *PlaceholderScreen) Route() string { return p.route }

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Dashboard"}}
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "enter" {
		return p, router.NavigateCmd(catalog.RouteDashboard)
	}
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("╌╌ Unknown Page ╌╌\n\nNothing lives at " + p.route + "\n\nPress Enter to return to the dashboard.")
}
