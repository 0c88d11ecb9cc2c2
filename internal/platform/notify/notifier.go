// Package notify is the notification surface: title/body alerts shown to the user.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Terminal writes alerts to a terminal writer.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal returns a Terminal notifier writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Notify shows an alert. Nothing is returned to the caller.
func (t *Terminal) Notify(title, body string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width := len([]rune(title))
	if n := len([]rune(body)); n > width {
		width = n
	}
	rule := strings.Repeat("-", width+4)
	if _, err := fmt.Fprintf(t.w, "\n%s\n  %s\n  %s\n%s\n", rule, title, body, rule); err != nil {
		slog.Warn("failed to write notification", "error", err)
	}
	slog.Info("notification shown", "title", title)
}
