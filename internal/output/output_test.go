package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/hoyotext/internal/model"
)

func sampleRecord() model.CanonicalRecord {
	return model.CanonicalRecord{
		Type:        "Character",
		Name:        "March 7th",
		Description: "An energetic girl & <friend>.",
		Path:        "Preservation",
		Modules: []model.ModuleRecord{
			{Name: "Story", Fields: []model.Field{{Key: "Story 1", Value: "Ice"}}},
		},
	}
}

func TestJSONWriter_SingleRecordIsArray(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(sampleRecord()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	var got []model.CanonicalRecord
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("expected a JSON array, got %s: %v", buf.String(), err)
	}
	if len(got) != 1 || got[0].Name != "March 7th" {
		t.Errorf("unexpected output: %+v", got)
	}
	if !strings.Contains(buf.String(), "& <friend>") {
		t.Errorf("expected HTML characters unescaped, got %s", buf.String())
	}
}

func TestJSONLWriter_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSONL)
	a, b := sampleRecord(), sampleRecord()
	b.Name = "Dan Heng"
	if err := w.Write(a, b); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var rec model.CanonicalRecord
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil || rec.Name != "Dan Heng" {
		t.Errorf("unexpected second line %q: %v", lines[1], err)
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatYAML)
	if err := w.Write(sampleRecord()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	var got []model.CanonicalRecord
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].Path != "Preservation" || got[0].Modules[0].Fields[0].Key != "Story 1" {
		t.Errorf("unexpected output: %+v", got)
	}
	if strings.Contains(buf.String(), "faction") {
		t.Errorf("expected empty attributes to be omitted, got %s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "jsonl", "yaml"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
	if _, err := NewWriter(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("expected error from NewWriter for xml")
	}
}
