// Package scheduler re-scrapes a fixed set of wiki pages on an interval so
// the archive tracks upstream edits.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

// PageScraper fetches, normalizes and archives one wiki page.
type PageScraper interface {
	Scrape(ctx context.Context, family model.GameFamily, pageID int) ([]model.CanonicalRecord, error)
}

// RecordLookup returns the archived record of a page, or nil.
type RecordLookup interface {
	Get(ctx context.Context, family model.GameFamily, pageID int) (*model.ArchivedRecord, error)
}

// Target is one page to keep refreshed.
type Target struct {
	Family model.GameFamily
	PageID int
}

// Scheduler owns the main loop: ticks on an interval and scrapes every target.
// Targets of different wikis are scraped concurrently; targets of the same
// wiki run in order with minDelay between them. After each pass the notifier
// hears about every page whose record differs from its archived copy.
type Scheduler struct {
	scraper  PageScraper
	lookup   RecordLookup
	notifier model.Notifier
	targets  []Target
	interval time.Duration
	minDelay time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a scheduler that scrapes all targets at the given interval.
func NewScheduler(
	scraper PageScraper,
	lookup RecordLookup,
	notifier model.Notifier,
	targets []Target,
	interval, minDelay time.Duration,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		scraper:  scraper,
		lookup:   lookup,
		notifier: notifier,
		targets:  targets,
		interval: interval,
		minDelay: minDelay,
		logger:   logger,
	}
}

// Run starts the refresh loop. It runs one immediate cycle, then ticks on the
// configured interval. It returns nil when ctx is cancelled (graceful shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"pages", len(s.targets),
	)

	s.scrapeAll(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.scrapeAll(ctx)
		}
	}
}

func (s *Scheduler) groupByWiki() map[model.GameFamily][]Target {
	groups := make(map[model.GameFamily][]Target)
	for _, t := range s.targets {
		groups[t.Family] = append(groups[t.Family], t)
	}
	return groups
}

// scrapeAll runs one pass, waits for every wiki group to finish, then
// notifies about changed records.
func (s *Scheduler) scrapeAll(ctx context.Context) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changes []model.RecordChange
	)
	for family, targets := range s.groupByWiki() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			found := s.scrapeGroup(ctx, family, targets)
			mu.Lock()
			changes = append(changes, found...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(changes) == 0 {
		return
	}
	if err := s.notifier.Notify(changes); err != nil {
		s.logger.Error("notification failed", "changes", len(changes), "error", err)
	}
}

func (s *Scheduler) scrapeGroup(ctx context.Context, family model.GameFamily, targets []Target) []model.RecordChange {
	var changes []model.RecordChange
	for i, t := range targets {
		if ctx.Err() != nil {
			return changes
		}

		if c, ok := s.refresh(ctx, t); ok {
			changes = append(changes, c)
		}

		if i < len(targets)-1 && s.minDelay > 0 {
			select {
			case <-ctx.Done():
				return changes
			case <-time.After(s.minDelay):
			}
		}
	}
	return changes
}

// refresh scrapes one target and reports whether its record changed since
// it was last archived. Pages seen for the first time are not changes.
func (s *Scheduler) refresh(ctx context.Context, t Target) (model.RecordChange, bool) {
	prev, err := s.lookup.Get(ctx, t.Family, t.PageID)
	if err != nil {
		s.logger.Warn("reading archived record failed", "wiki", t.Family, "page_id", t.PageID, "error", err)
		prev = nil
	}

	records, err := s.scraper.Scrape(ctx, t.Family, t.PageID)
	if err != nil {
		s.logger.Error("refresh failed",
			"wiki", t.Family,
			"page_id", t.PageID,
			"error", err,
		)
		return model.RecordChange{}, false
	}
	if prev == nil || len(records) == 0 {
		return model.RecordChange{}, false
	}

	changed := Diff(prev.Record, records[0])
	if len(changed) == 0 {
		return model.RecordChange{}, false
	}
	return model.RecordChange{
		Family:   t.Family,
		PageID:   t.PageID,
		Previous: prev.Record,
		Current:  records[0],
		Changed:  changed,
	}, true
}
