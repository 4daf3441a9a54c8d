package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amishk599/hoyotext/internal/category"
	"github.com/amishk599/hoyotext/internal/model"
	"github.com/amishk599/hoyotext/internal/normalize"
)

// --- Mock/Fake Implementations ---

// MockFetcher returns a canned envelope or an error.
type MockFetcher struct {
	Env   *model.Envelope
	Err   error
	Calls int
}

func (m *MockFetcher) FetchPage(_ context.Context, _ model.GameFamily, _ int) (*model.Envelope, error) {
	m.Calls++
	return m.Env, m.Err
}

// InMemoryArchive records what was saved.
type InMemoryArchive struct {
	Saved []model.ArchivedRecord
	Err   error
}

func (a *InMemoryArchive) Save(_ context.Context, rec model.ArchivedRecord) error {
	if a.Err != nil {
		return a.Err
	}
	a.Saved = append(a.Saved, rec)
	return nil
}

func (a *InMemoryArchive) Get(_ context.Context, family model.GameFamily, pageID int) (*model.ArchivedRecord, error) {
	for i := len(a.Saved) - 1; i >= 0; i-- {
		if a.Saved[i].Family == family && a.Saved[i].PageID == pageID {
			rec := a.Saved[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (a *InMemoryArchive) List(_ context.Context, _ model.GameFamily, _ int) ([]model.ArchivedRecord, error) {
	return a.Saved, nil
}

func (a *InMemoryArchive) Cleanup(_ context.Context, _ time.Duration) error { return nil }

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func envelope(t *testing.T, page string) *model.Envelope {
	t.Helper()
	var env model.Envelope
	body := `{"retcode":0,"message":"OK","data":{"page":` + page + `}}`
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return &env
}

func newTestScraper(f model.PageFetcher, a model.RecordArchive) *Scraper {
	s := NewScraper(f, normalize.NewNormalizer(category.DefaultRegistry(), nil), a, discardLogger())
	s.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }
	return s
}

// --- Tests ---

func TestScrape_NormalizesAndArchives(t *testing.T) {
	fetcher := &MockFetcher{Env: envelope(t, `{"name":"Trailblaze","desc":"<p>Go</p>","menu_name":"Adventure"}`)}
	archive := &InMemoryArchive{}

	recs, err := newTestScraper(fetcher, archive).Scrape(context.Background(), model.StarRail, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(recs))
	}
	if recs[0].Type != "Adventure" || recs[0].Description != "Go" {
		t.Errorf("unexpected record: %+v", recs[0])
	}

	if len(archive.Saved) != 1 {
		t.Fatalf("expected 1 archived record, got %d", len(archive.Saved))
	}
	saved := archive.Saved[0]
	if saved.Family != model.StarRail || saved.PageID != 42 || saved.ScrapedAt.Year() != 2026 {
		t.Errorf("unexpected archived record: %+v", saved)
	}
}

func TestScrape_FetchErrorPropagates(t *testing.T) {
	fetchErr := &model.HTTPError{StatusCode: 502, Err: errors.New("bad gateway")}
	archive := &InMemoryArchive{}

	_, err := newTestScraper(&MockFetcher{Err: fetchErr}, archive).Scrape(context.Background(), model.Genshin, 1)
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if len(archive.Saved) != 0 {
		t.Errorf("expected nothing archived on fetch failure, got %d", len(archive.Saved))
	}
}

func TestScrape_MalformedPayloadPropagates(t *testing.T) {
	page := `{"name":"Broken","menu_name":"Relics","modules":[{"name":"Set","components":[{"data":"{oops"}]}]}`
	archive := &InMemoryArchive{}

	_, err := newTestScraper(&MockFetcher{Env: envelope(t, page)}, archive).Scrape(context.Background(), model.StarRail, 1)
	if !errors.Is(err, model.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
	if len(archive.Saved) != 0 {
		t.Errorf("expected no partial record archived, got %d", len(archive.Saved))
	}
}

func TestScrape_MissingPageIsMalformedInput(t *testing.T) {
	env := &model.Envelope{Retcode: 0, Message: "OK"}

	_, err := newTestScraper(&MockFetcher{Env: env}, &InMemoryArchive{}).Scrape(context.Background(), model.StarRail, 1)
	if !errors.Is(err, model.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestScrape_ArchiveFailureIsNotFatal(t *testing.T) {
	fetcher := &MockFetcher{Env: envelope(t, `{"name":"X","menu_name":"Unmapped Thing"}`)}
	archive := &InMemoryArchive{Err: errors.New("disk full")}

	recs, err := newTestScraper(fetcher, archive).Scrape(context.Background(), model.Genshin, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Type != "Unmapped Thing" {
		t.Errorf("unexpected records: %+v", recs)
	}
}
