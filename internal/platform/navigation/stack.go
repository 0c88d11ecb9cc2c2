// Package navigation implements the screen stack used by the terminal app.
package navigation

import (
	"log/slog"
	"sync"
)

// Route names a screen.
type Route string

const (
	RouteSignIn Route = "SignIn"
	RouteSignUp Route = "SignUp"
)

type entry struct {
	route Route
	id    uint64
}

// Stack is a navigation service backed by a stack of routes.
// The root route is never popped.
type Stack struct {
	mu      sync.Mutex
	entries []entry
	nextID  uint64
}

// NewStack returns a stack whose root is root.
func NewStack(root Route) *Stack {
	return &Stack{entries: []entry{{route: root}}, nextID: 1}
}

// Push navigates to r.
func (s *Stack) Push(r Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{route: r, id: s.nextID})
	s.nextID++
	slog.Debug("navigate", "to", string(r), "depth", len(s.entries))
}

// GoBack returns to the previous screen. It is a no-op at the root.
func (s *Stack) GoBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pop()
}

func (s *Stack) pop() {
	if len(s.entries) <= 1 {
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
	slog.Debug("navigate back", "to", string(s.entries[len(s.entries)-1].route), "depth", len(s.entries))
}

// Current returns the route on top of the stack.
func (s *Stack) Current() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1].route
}

// Depth returns the number of routes on the stack.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Scoped returns a navigator bound to the screen currently on top.
// Its GoBack only pops while that same screen is still on top, so a late
// callback from a screen the user already left cannot pop another screen.
func (s *Stack) Scoped() *ScopedNavigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &ScopedNavigator{stack: s, id: s.entries[len(s.entries)-1].id}
}

// ScopedNavigator is returned by Stack.Scoped.
type ScopedNavigator struct {
	stack *Stack
	id    uint64
}

// GoBack pops the bound screen if it is still on top.
func (n *ScopedNavigator) GoBack() {
	n.stack.mu.Lock()
	defer n.stack.mu.Unlock()
	top := n.stack.entries[len(n.stack.entries)-1]
	if top.id != n.id {
		slog.Debug("stale navigation ignored", "route", string(top.route))
		return
	}
	n.stack.pop()
}
