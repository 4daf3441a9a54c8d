package notifier

import (
	"log/slog"
	"strings"

	"github.com/amishk599/hoyotext/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes changed records to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each change via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each change with wiki, page id, name and what changed.
// Returns nil (logging does not fail).
func (n *LogNotifier) Notify(changes []model.RecordChange) error {
	for _, c := range changes {
		n.logger.Info("record changed",
			"wiki", c.Family,
			"page_id", c.PageID,
			"name", c.Current.Name,
			"type", c.Current.Type,
			"changed", strings.Join(c.Changed, ", "),
			"url", model.EntryURL(c.Family, c.PageID),
		)
	}
	return nil
}
