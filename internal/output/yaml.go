package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/hoyotext/internal/model"
)

// YAMLWriter writes a YAML sequence.
type YAMLWriter struct {
	w     *bufio.Writer
	items []model.CanonicalRecord
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]model.CanonicalRecord, 0),
	}
}

// Write buffers records.
func (w *YAMLWriter) Write(recs ...model.CanonicalRecord) error {
	w.items = append(w.items, recs...)
	return nil
}

// Flush writes the buffered records as YAML.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(w.items); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	w.items = w.items[:0]

	return w.w.Flush()
}
