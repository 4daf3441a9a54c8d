package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

// PageNormalizer turns an API envelope into canonical records.
type PageNormalizer interface {
	NormalizeEnvelope(env model.Envelope, family model.GameFamily) ([]model.CanonicalRecord, error)
}

// Scraper owns the full pipeline for one wiki page:
// fetch → normalize → archive.
type Scraper struct {
	fetcher    model.PageFetcher
	normalizer PageNormalizer
	archive    model.RecordArchive
	logger     *slog.Logger
	now        func() time.Time
}

// NewScraper creates a scraper wired with all its dependencies.
func NewScraper(
	fetcher model.PageFetcher,
	normalizer PageNormalizer,
	archive model.RecordArchive,
	logger *slog.Logger,
) *Scraper {
	return &Scraper{
		fetcher:    fetcher,
		normalizer: normalizer,
		archive:    archive,
		logger:     logger,
		now:        time.Now,
	}
}

// Scrape fetches one page and returns its canonical records (always one).
// A failure to archive is logged and does not fail the scrape.
func (s *Scraper) Scrape(ctx context.Context, family model.GameFamily, pageID int) ([]model.CanonicalRecord, error) {
	s.logger.Info("scraping wiki page",
		"wiki", family.DisplayName(),
		"page_id", pageID,
	)

	env, err := s.fetcher.FetchPage(ctx, family, pageID)
	if err != nil {
		return nil, fmt.Errorf("scraping %s/%d: %w", family, pageID, err)
	}

	records, err := s.normalizer.NormalizeEnvelope(*env, family)
	if err != nil {
		return nil, fmt.Errorf("scraping %s/%d: %w", family, pageID, err)
	}

	for _, rec := range records {
		err := s.archive.Save(ctx, model.ArchivedRecord{
			Family:    family,
			PageID:    pageID,
			Record:    rec,
			ScrapedAt: s.now(),
		})
		if err != nil {
			s.logger.Warn("archiving record failed", "wiki", family, "page_id", pageID, "error", err)
		}

		s.logger.Info("scraped wiki page",
			"wiki", family.DisplayName(),
			"page_id", pageID,
			"name", rec.Name,
			"type", rec.Type,
			"modules", len(rec.Modules),
		)
	}

	return records, nil
}
