package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/output"
)

var (
	scrapeWiki   string
	scrapeID     int
	scrapeFormat string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch and normalize one wiki page",
	Long:  "One-shot scrape: fetches a page, writes its record to stdout and exits.",
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeWiki, "wiki", "", "wiki to query (genshin or hsr)")
	scrapeCmd.Flags().IntVar(&scrapeID, "id", 0, "entry page id")
	scrapeCmd.Flags().StringVarP(&scrapeFormat, "format", "f", "json", "output format (json, jsonl, yaml)")
	_ = scrapeCmd.MarkFlagRequired("wiki")
	_ = scrapeCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	family, err := parseWiki(scrapeWiki)
	if err != nil {
		return err
	}
	if scrapeID <= 0 {
		return fmt.Errorf("--id must be a positive page id, got %d", scrapeID)
	}
	format, err := output.ParseFormat(scrapeFormat)
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

	records, err := s.Scrape(ctx, family, scrapeID)
	if err != nil {
		return err
	}

	w, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		return err
	}
	if err := w.Write(records...); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return w.Flush()
}
