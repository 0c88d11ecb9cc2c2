package ui

import (
	"fmt"
	"io"
	"strings"
)

// Input is a labelled text field.
type Input struct {
	Name        string
	Icon        string
	Placeholder string
	Secure      bool // mask the value (password)
	Props       Props
}

// Render writes the field with its current value, focus marker and inline error.
func (in Input) Render(w io.Writer, value, errMsg string, focused bool) error {
	marker := " "
	if focused {
		marker = ">"
	}
	shown := value
	if in.Secure {
		shown = strings.Repeat("*", len([]rune(value)))
	}
	if shown == "" {
		shown = in.Placeholder
	}
	line := fmt.Sprintf("%s (%s) %s", marker, in.Icon, shown)
	if attrs := in.Props.String(); attrs != "" {
		line += " {" + attrs + "}"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	if errMsg != "" {
		_, err := fmt.Fprintf(w, "    ! %s\n", errMsg)
		return err
	}
	return nil
}
