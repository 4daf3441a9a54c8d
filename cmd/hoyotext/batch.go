package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/amishk599/hoyotext/internal/filter"
	"github.com/amishk599/hoyotext/internal/model"
	"github.com/amishk599/hoyotext/internal/output"
)

var (
	batchWiki        string
	batchConcurrency int
	batchFormat      string
	batchFailFast    bool
	batchTypes       []string
	batchNames       []string
)

var batchCmd = &cobra.Command{
	Use:   "batch <id>...",
	Short: "Scrape several pages of one wiki concurrently",
	Long:  "Scrapes every page id concurrently and writes the records in argument order. Failed pages are logged and skipped unless --fail-fast is set.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchWiki, "wiki", "", "wiki to query (genshin or hsr)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "maximum pages in flight")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "jsonl", "output format (json, jsonl, yaml)")
	batchCmd.Flags().BoolVar(&batchFailFast, "fail-fast", false, "stop at the first failed page")
	batchCmd.Flags().StringSliceVar(&batchTypes, "type", nil, "only output records of these types")
	batchCmd.Flags().StringSliceVar(&batchNames, "name", nil, "only output records whose name contains one of these keywords")
	_ = batchCmd.MarkFlagRequired("wiki")
	rootCmd.AddCommand(batchCmd)
}

// pageScraper is satisfied by *scraper.Scraper.
type pageScraper interface {
	Scrape(ctx context.Context, family model.GameFamily, pageID int) ([]model.CanonicalRecord, error)
}

func parsePageIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid page id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// scrapeBatch scrapes ids with at most concurrency requests in flight and
// returns the records in the order of ids. Without failFast a failed page is
// logged and leaves no record.
func scrapeBatch(ctx context.Context, s pageScraper, family model.GameFamily, ids []int, concurrency int, failFast bool, logger *slog.Logger) ([]model.CanonicalRecord, int, error) {
	results := make([][]model.CanonicalRecord, len(ids))
	failed := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, id := range ids {
		g.Go(func() error {
			recs, err := s.Scrape(gctx, family, id)
			if err != nil {
				if failFast {
					return err
				}
				logger.Error("page failed", "wiki", family, "page_id", id, "error", err)
				failed[i] = true
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var out []model.CanonicalRecord
	nFailed := 0
	for i := range ids {
		if failed[i] {
			nFailed++
			continue
		}
		out = append(out, results[i]...)
	}
	return out, nFailed, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	family, err := parseWiki(batchWiki)
	if err != nil {
		return err
	}
	ids, err := parsePageIDs(args)
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(batchFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	archive, closeArchive, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer closeArchive()

	s, err := buildScraper(cfg, archive, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records, nFailed, err := scrapeBatch(ctx, s, family, ids, batchConcurrency, batchFailFast, logger)
	if err != nil {
		return err
	}
	records = filter.NewRecordFilter(batchTypes, batchNames).Records(records)

	w, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		return err
	}
	if err := w.Write(records...); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logger.Info("batch complete", "pages", len(ids), "records", len(records), "failed", nFailed)
	if nFailed > 0 {
		return fmt.Errorf("%d of %d pages failed", nFailed, len(ids))
	}
	return nil
}
