package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/model"
	"github.com/amishk599/hoyotext/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the configured pages refreshed in the archive",
	Long:  "Re-scrapes every page under watch.pages each watch.interval and notifies when an archived record changes; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watchTargets(pages map[model.GameFamily][]int) []scheduler.Target {
	var targets []scheduler.Target
	for _, family := range model.Families {
		for _, id := range pages[family] {
			targets = append(targets, scheduler.Target{Family: family, PageID: id})
		}
	}
	return targets
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	targets := watchTargets(cfg.Watch.Pages)
	if len(targets) == 0 {
		return errors.New("no pages to watch; add them under watch.pages")
	}
	if !cfg.Archive.Enabled {
		logger.Warn("archive is disabled; refreshed records will not be kept and no changes can be detected")
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

	if cfg.Archive.Retention > 0 {
		if err := archive.Cleanup(ctx, cfg.Archive.Retention); err != nil {
			logger.Warn("archive cleanup failed", "error", err)
		}
	}

	n := setupNotifier(cfg, logger)
	sched := scheduler.NewScheduler(s, archive, n, targets, cfg.Watch.Interval, cfg.RateLimit.MinDelay, logger)
	if err := sched.Run(ctx); err != nil {
		return fmt.Errorf("watching pages: %w", err)
	}

	logger.Info("goodbye")
	return nil
}
