// Package shell is the terminal application shell: status header, screen
// registry and the single-threaded input event loop.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gobarber/internal/platform/navigation"
)

// CmdQuit leaves the application from any screen.
const CmdQuit = ":q"

// Screen is a terminal screen.
type Screen interface {
	Render(w io.Writer) error
	HandleLine(ctx context.Context, line string)
}

// waiter is implemented by screens that run work in the background.
type waiter interface {
	Wait()
}

// ScreenFactory builds a fresh screen instance each time its route becomes active.
// refresh asks the shell to redraw from a background goroutine.
type ScreenFactory func(nav *navigation.Stack, refresh func()) Screen

// Shell owns the navigation stack and dispatches input lines to the active screen.
type Shell struct {
	title     string
	nav       *navigation.Stack
	factories map[navigation.Route]ScreenFactory
	out       io.Writer
	refresh   chan struct{}

	active      Screen
	activeRoute navigation.Route
	activeDepth int
	// replaced screens still finishing background work
	draining sync.WaitGroup
}

// syncWriter serializes writes from the event loop and background submits.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// New returns a shell rooted at root.
func New(title string, root navigation.Route, out io.Writer) *Shell {
	return &Shell{
		title:     title,
		nav:       navigation.NewStack(root),
		factories: map[navigation.Route]ScreenFactory{},
		out:       &syncWriter{w: out},
		refresh:   make(chan struct{}, 1),
	}
}

// Register binds a route to its screen factory.
func (s *Shell) Register(r navigation.Route, f ScreenFactory) {
	s.factories[r] = f
}

// Output returns the shell's writer. It is safe to use from other goroutines.
func (s *Shell) Output() io.Writer { return s.out }

// Navigation returns the shell's navigation stack.
func (s *Shell) Navigation() *navigation.Stack { return s.nav }

// Run processes input lines one at a time until in is exhausted, the user
// quits, or ctx is cancelled. On exit it waits for background work of the
// screens it created.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	if err := s.sync(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			s.wait()
			return ctx.Err()
		case <-s.refresh:
			if err := s.sync(); err != nil {
				return err
			}
		case line, ok := <-lines:
			if !ok {
				s.wait()
				if err := s.sync(); err != nil {
					return err
				}
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if line == CmdQuit {
				s.wait()
				return nil
			}
			// a background submit may have navigated without the refresh being seen yet
			if err := s.activate(); err != nil {
				return err
			}
			s.active.HandleLine(ctx, line)
			if err := s.sync(); err != nil {
				return err
			}
		}
	}
}

// requestRefresh is handed to screens; it never blocks.
func (s *Shell) requestRefresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// sync swaps in a new screen when the top of the stack changed, then redraws.
func (s *Shell) sync() error {
	if err := s.activate(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.out, "\n== %s ==\n", s.title); err != nil {
		return err
	}
	return s.active.Render(s.out)
}

// activate makes the screen for the top of the stack the active one.
func (s *Shell) activate() error {
	route, depth := s.nav.Current(), s.nav.Depth()
	if s.active != nil && route == s.activeRoute && depth == s.activeDepth {
		return nil
	}
	f, ok := s.factories[route]
	if !ok {
		return fmt.Errorf("no screen registered for route %q", route)
	}
	s.retire(s.active)
	s.active = f(s.nav, s.requestRefresh)
	s.activeRoute, s.activeDepth = route, depth
	slog.Debug("screen activated", "route", string(route), "depth", depth)
	return nil
}

// retire lets a replaced screen finish its background work without keeping it around.
func (s *Shell) retire(sc Screen) {
	w, ok := sc.(waiter)
	if !ok {
		return
	}
	s.draining.Add(1)
	go func() {
		defer s.draining.Done()
		w.Wait()
	}()
}

func (s *Shell) wait() {
	if w, ok := s.active.(waiter); ok {
		w.Wait()
	}
	s.draining.Wait()
}
