package notifier

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/amishk599/hoyotext/internal/model"
)

func TestLogNotifier_Notify_zeroChanges(t *testing.T) {
	n := NewLogNotifier(discardLogger())
	if err := n.Notify(nil); err != nil {
		t.Errorf("Notify(nil) = %v, want nil", err)
	}
	if err := n.Notify([]model.RecordChange{}); err != nil {
		t.Errorf("Notify([]) = %v, want nil", err)
	}
}

func TestLogNotifier_Notify_logsEachChange(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	changes := []model.RecordChange{
		sampleChange("Kafka", "description"),
		sampleChange("Blade", "Story", "Voice-Over"),
	}
	if err := n.Notify(changes); err != nil {
		t.Fatalf("Notify(changes) = %v, want nil", err)
	}

	out := buf.String()
	if got := strings.Count(out, "record changed"); got != 2 {
		t.Errorf("expected 2 log lines, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, `changed="Story, Voice-Over"`) {
		t.Errorf("expected changed list in log output:\n%s", out)
	}
	if !strings.Contains(out, "https://wiki.hoyolab.com/pc/hsr/entry/1001") {
		t.Errorf("expected entry url in log output:\n%s", out)
	}
}
