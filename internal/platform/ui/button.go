package ui

import (
	"fmt"
	"io"
)

// Button is a pressable region with a text label.
type Button struct {
	Label string
	Props Props
}

// Render writes the button to w.
func (b Button) Render(w io.Writer) error {
	if attrs := b.Props.String(); attrs != "" {
		_, err := fmt.Fprintf(w, "[ %s ] {%s}\n", b.Label, attrs)
		return err
	}
	_, err := fmt.Fprintf(w, "[ %s ]\n", b.Label)
	return err
}
