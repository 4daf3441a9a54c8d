package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/amishk599/hoyotext/internal/model"
)

// JSONWriter writes an indented JSON array.
type JSONWriter struct {
	w      *bufio.Writer
	indent string
	items  []model.CanonicalRecord
}

// NewJSONWriter creates a JSON writer. An empty indent writes compact JSON.
func NewJSONWriter(w io.Writer, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		indent: indent,
		items:  make([]model.CanonicalRecord, 0),
	}
}

// Write buffers records for the array.
func (w *JSONWriter) Write(recs ...model.CanonicalRecord) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as a JSON array.
func (w *JSONWriter) Flush() error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(w.items); err != nil {
		return err
	}
	w.items = w.items[:0]
	return w.w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL).
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes each record as a JSON line.
func (w *JSONLWriter) Write(recs ...model.CanonicalRecord) error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}
