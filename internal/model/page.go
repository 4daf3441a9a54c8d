package model

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope is the top-level HoYoLAB wiki API response.
type Envelope struct {
	Retcode int          `json:"retcode"`
	Message string       `json:"message"`
	Data    EnvelopeData `json:"data"`
}

// EnvelopeData keeps the page undecoded so its presence and shape can be checked.
type EnvelopeData struct {
	Page json.RawMessage `json:"page"`
}

// RawPage is one wiki entry page as served by HoYoLAB.
type RawPage struct {
	ID           PageID                 `json:"id"`
	Name         string                 `json:"name"`
	Desc         string                 `json:"desc"`
	MenuName     string                 `json:"menu_name"` // category label
	Modules      []RawModule            `json:"modules"`
	FilterValues map[string]FilterValue `json:"filter_values"`
}

// PageID accepts the page id whether HoYoLAB sends it as a number or a string.
type PageID string

func (id *PageID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = PageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = PageID(n.String())
	return nil
}

// FilterValue holds the game-specific attribute values (e.g. character_paths).
type FilterValue struct {
	Values []string `json:"values"`
}

// RawModule is a named page section whose content lives in an embedded JSON string.
type RawModule struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Component carries the embedded payload; Data is itself a JSON document.
type Component struct {
	ComponentID string `json:"component_id"`
	Layout      string `json:"layout"`
	Data        string `json:"data"`
	Style       string `json:"style"`
}

// Payload returns the embedded JSON of the module's first component, or ""
// when the module has no components.
func (m RawModule) Payload() string {
	if len(m.Components) == 0 {
		return ""
	}
	return m.Components[0].Data
}

// PageFetcher retrieves the raw API envelope for one wiki entry page.
type PageFetcher interface {
	FetchPage(ctx context.Context, family GameFamily, pageID int) (*Envelope, error)
}

// ArchivedRecord is a normalized page as kept in the archive.
type ArchivedRecord struct {
	Family    GameFamily
	PageID    int
	Record    CanonicalRecord
	ScrapedAt time.Time
}

// RecordArchive keeps a history of produced records. It is never read to
// answer a scrape.
type RecordArchive interface {
	Save(ctx context.Context, rec ArchivedRecord) error
	// Get returns the archived record of a page, or nil when there is none.
	Get(ctx context.Context, family GameFamily, pageID int) (*ArchivedRecord, error)
	List(ctx context.Context, family GameFamily, limit int) ([]ArchivedRecord, error)
	Cleanup(ctx context.Context, olderThan time.Duration) error
}
