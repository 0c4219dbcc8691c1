// Package dashboard is the wizard's root screen: every category with its
// progress and the forms that can be opened from it.
package dashboard

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/catalog"
	"github.com/abhisek/formwiz/internal/progression"
	"github.com/abhisek/formwiz/internal/router"
	"github.com/abhisek/formwiz/internal/screen"
	"github.com/abhisek/formwiz/internal/screens/history"
	"github.com/abhisek/formwiz/internal/store"
	"github.com/abhisek/formwiz/internal/ui/layout"
)

// DashboardScreen lists the catalog. Rows are read from the store on every
// render so they always reflect the latest completion state.
type DashboardScreen struct {
	ctx    context.Context
	store  *progression.Store
	events store.EventRepo

	selected     int
	confirmReset bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.Router = (*DashboardScreen)(nil)

// New creates the dashboard. events may be nil, which hides the history.
func New(ctx context.Context, st *progression.Store, events store.EventRepo) *DashboardScreen {
	d := &DashboardScreen{ctx: ctx, store: st, events: events}
	d.selected = d.firstOpen()
	return d
}

func (d *DashboardScreen) Init() tea.Cmd { return nil }

func (d *DashboardScreen) Title() string { return "Dashboard" }

func (d *DashboardScreen) Route() string { return catalog.RouteDashboard }

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.confirmReset {
		return []layout.KeyHint{
			{Key: "y", Description: "Reset everything"},
			{Key: "n", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "r", Description: "Reset"},
	}
	if d.events != nil {
		hints = append(hints, layout.KeyHint{Key: "h", Description: "History"})
	}
	if d.store.OverallProgress() >= 100 {
		hints = append(hints, layout.KeyHint{Key: "c", Description: "Completion"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

// rows flattens the overview into the selectable form rows.
func (d *DashboardScreen) rows() []progression.FormEntry {
	var out []progression.FormEntry
	for _, cat := range d.store.Overview() {
		out = append(out, cat.Forms...)
	}
	return out
}

// firstOpen is the first accessible form that is not yet completed, or 0.
func (d *DashboardScreen) firstOpen() int {
	for i, r := range d.rows() {
		if r.Accessible() && !r.Form.Completed {
			return i
		}
	}
	return 0
}

// Selected returns the highlighted row.
func (d *DashboardScreen) Selected() (progression.FormEntry, bool) {
	rows := d.rows()
	if d.selected < 0 || d.selected >= len(rows) {
		return progression.FormEntry{}, false
	}
	return rows[d.selected], true
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}

	if d.confirmReset {
		switch key.String() {
		case "y", "Y":
			d.confirmReset = false
			d.store.Reset(d.ctx)
			d.selected = 0
		case "n", "N", "esc":
			d.confirmReset = false
		}
		return d, nil
	}

	switch key.String() {
	case "up", "k":
		if d.selected > 0 {
			d.selected--
		}
	case "down", "j":
		if d.selected < len(d.rows())-1 {
			d.selected++
		}
	case "enter":
		if row, ok := d.Selected(); ok {
			// Locked rows are reported by the store as a notice.
			_ = d.store.OpenForm(d.ctx, row.Form.CategoryID, row.Form.ID)
		}
	case "r":
		d.confirmReset = true
	case "h":
		if d.events != nil {
			return d, func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(d.ctx, d.events)}
			}
		}
	case "c":
		if d.store.OverallProgress() >= 100 {
			return d, router.NavigateCmd(catalog.RouteCompletion)
		}
	case "q":
		return d, tea.Quit
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	return render(d.store.Overview(), d.store.OverallProgress(), d.selected, d.confirmReset, width, height)
}
