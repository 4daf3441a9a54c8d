// Package output serializes canonical records for the command line.
package output

import (
	"fmt"
	"io"

	"github.com/amishk599/hoyotext/internal/model"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer handles record serialization.
type Writer interface {
	// Write outputs or buffers records.
	Write(recs ...model.CanonicalRecord) error

	// Flush ensures all data is written.
	Flush() error
}

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// NewWriter creates a writer for the specified format. JSON and YAML always
// emit a sequence, even for a single record.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w, "  "), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
