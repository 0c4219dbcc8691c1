// Package router keeps the stack of screens and turns wizard routes into
// stack operations.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/formwiz/internal/screen"
)

// PushScreenMsg pushes Screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg pops the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// NavigateMsg asks the app to show a wizard route.
type NavigateMsg struct {
	Route string
}

// NavigateCmd emits a NavigateMsg.
func NavigateCmd(route string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route} }
}

// Router is a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New returns a Router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push shows s above the current screen.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the active screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
	return nil
}

// PopToRoot drops everything above the root screen.
func (r *Router) PopToRoot() {
	r.stack = r.stack[:1]
}

// Replace swaps the active screen for s, keeping the depth.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Active is the top of the stack.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth is the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies stack messages and forwards everything else to the active
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
