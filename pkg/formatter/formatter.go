// Package formatter renders catalog responses for terminal output.
package formatter

import (
	"fmt"
	"strings"
)

// Formatter formats data
type Formatter interface {
	// Format will call the getter func and render the returned data
	Format(getter func() interface{}) (string, error)
}

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// ForOutput returns the formatter registered for the given output name.
func ForOutput(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", OutputTable:
		return NewTableFormatter(), nil
	case OutputJSON:
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want %s or %s)", name, OutputTable, OutputJSON)
	}
}
