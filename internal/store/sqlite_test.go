package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func archived(family model.GameFamily, id int, name string, at time.Time) model.ArchivedRecord {
	return model.ArchivedRecord{
		Family: family,
		PageID: id,
		Record: model.CanonicalRecord{
			Type:        "Relics",
			Name:        name,
			Description: "desc",
			Modules: []model.ModuleRecord{
				{Name: "Set Effect", Fields: []model.Field{{Key: "2-Pc", Value: "ATK +12%"}}},
			},
		},
		ScrapedAt: at,
	}
}

func TestSaveThenList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, archived(model.StarRail, 10, "Musketeer", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}

	recs, err := s.List(ctx, model.StarRail, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	got := recs[0]
	if got.Family != model.StarRail || got.PageID != 10 || got.Record.Name != "Musketeer" {
		t.Errorf("unexpected record: %+v", got)
	}
	if len(got.Record.Modules) != 1 || got.Record.Modules[0].Fields[0].Value != "ATK +12%" {
		t.Errorf("record body not round-tripped: %+v", got.Record)
	}
}

func TestSaveReplacesSamePage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, archived(model.Genshin, 5, "Old Name", time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(ctx, archived(model.Genshin, 5, "New Name", time.Now())); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	recs, err := s.List(ctx, model.Genshin, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || recs[0].Record.Name != "New Name" {
		t.Fatalf("expected the page to be replaced, got %+v", recs)
	}
}

func TestListFiltersByWikiAndLimits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for i, r := range []model.ArchivedRecord{
		archived(model.StarRail, 1, "a", now.Add(-3*time.Minute)),
		archived(model.StarRail, 2, "b", now.Add(-2*time.Minute)),
		archived(model.StarRail, 3, "c", now.Add(-1*time.Minute)),
		archived(model.Genshin, 1, "g", now),
	} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	recs, err := s.List(ctx, model.StarRail, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Record.Name != "c" || recs[1].Record.Name != "b" {
		t.Errorf("expected newest first (c, b), got %s, %s", recs[0].Record.Name, recs[1].Record.Name)
	}

	all, err := s.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 records across wikis, got %d", len(all))
	}
}

func TestCleanupRemovesOldKeepsFresh(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, archived(model.StarRail, 1, "old", time.Now().Add(-48*time.Hour))); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if err := s.Save(ctx, archived(model.StarRail, 2, "fresh", time.Now())); err != nil {
		t.Fatalf("Save fresh: %v", err)
	}

	if err := s.Cleanup(ctx, 24*time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	recs, err := s.List(ctx, model.StarRail, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || recs[0].Record.Name != "fresh" {
		t.Fatalf("expected only the fresh record to survive, got %+v", recs)
	}
}

func TestNopStore(t *testing.T) {
	s := NewNopStore()
	ctx := context.Background()
	if err := s.Save(ctx, archived(model.StarRail, 1, "x", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	recs, err := s.List(ctx, "", 0)
	if err != nil || len(recs) != 0 {
		t.Fatalf("expected nothing from NopStore, got %v, %v", recs, err)
	}
}

func TestGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.Get(ctx, model.Genshin, 99)
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a page never archived, got %+v", got)
	}

	if err := s.Save(ctx, archived(model.Genshin, 99, "Gladiator's Finale", time.Now())); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = s.Get(ctx, model.Genshin, 99)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Record.Name != "Gladiator's Finale" || got.Family != model.Genshin {
		t.Errorf("unexpected record: %+v", got)
	}

	if other, _ := s.Get(ctx, model.StarRail, 99); other != nil {
		t.Errorf("Get must not cross wikis, got %+v", other)
	}
}
