// Package ui holds presentational primitives for the terminal screens.
// They carry no business logic: they render a label or a field and forward
// every extra property to the output untouched.
package ui

import (
	"sort"
	"strings"
)

// Props are passthrough properties forwarded to the rendered element.
type Props map[string]string

// String renders props as sorted key=value pairs.
func (p Props) String() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+p[k])
	}
	return strings.Join(parts, " ")
}
