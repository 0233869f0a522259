package output

import (
	"fmt"
	"io"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter renders one command result for machine consumption.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for a machine format. Table output
// has no formatter here: every listing picks its own columns, so the
// commands build a Table or KV directly.
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json, or yaml)", format)
	}
}
