package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/screen"
)

// Navigator collects routes requested outside the update loop, such as by
// the progression store. The app drains it after every update.
type Navigator struct {
	pending []string
}

// NavigateTo queues route.
func (n *Navigator) NavigateTo(route string) {
	n.pending = append(n.pending, route)
}

// Drain returns and clears the queued routes.
func (n *Navigator) Drain() []string {
	out := n.pending
	n.pending = nil
	return out
}

// Resolver builds the screen for a route.
type Resolver func(route string) screen.Screen

// Navigate shows route. The root screen's route pops back to it, the active
// screen's route is a no-op, and any other route replaces whatever sits
// above the root.
func (r *Router) Navigate(route string, resolve Resolver) tea.Cmd {
	if routeOf(r.stack[0]) == route {
		r.PopToRoot()
		return nil
	}
	if routeOf(r.Active()) == route {
		return nil
	}
	s := resolve(route)
	if r.Depth() > 1 {
		return r.Replace(s)
	}
	return r.Push(s)
}

func routeOf(s screen.Screen) string {
	if rs, ok := s.(screen.Router); ok {
		return rs.Route()
	}
	return ""
}
