package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/adapter"
	"github.com/amishk599/hoyotext/internal/config"
	"github.com/amishk599/hoyotext/internal/model"
	"github.com/amishk599/hoyotext/internal/normalize"
	"github.com/amishk599/hoyotext/internal/ratelimit"
	"github.com/amishk599/hoyotext/internal/retry"
	"github.com/amishk599/hoyotext/internal/scraper"
	"github.com/amishk599/hoyotext/internal/store"
)

const defaultConfigPath = "config.yaml"

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "hoyotext",
	Short: "HoYoLAB wiki pages as plain-text records",
	Long:  "hoyotext fetches Genshin Impact and Honkai: Star Rail wiki pages from HoYoLAB and normalizes them into schema-uniform plain-text records.",
	// Default to `serve` so that `hoyotext` with no args runs the HTTP server.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: HOYOTEXT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > HOYOTEXT_CONFIG env var > "./config.yaml".
// Only the implicit default may be missing; defaults apply then.
func loadConfig(path string) (*config.Config, error) {
	explicit := true
	if path == "" {
		if env := os.Getenv("HOYOTEXT_CONFIG"); env != "" {
			path = env
		} else {
			path = defaultConfigPath
			explicit = false
		}
	}
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// setupLogger logs to stderr so stdout stays free for records.
func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildFetcher wires adapter → rate limiter → retry. Every retry attempt
// goes through the limiter.
func buildFetcher(cfg *config.Config, logger *slog.Logger) model.PageFetcher {
	httpClient := &http.Client{Timeout: cfg.HoYoLAB.Timeout}

	var fetcher model.PageFetcher = adapter.NewHoYoLABAdapter(
		cfg.HoYoLAB.BaseURL,
		cfg.HoYoLAB.Language,
		cfg.HoYoLAB.UserAgent,
		httpClient,
	)

	limiter := ratelimit.NewWikiRateLimiter(cfg.RateLimit.MinDelay, cfg.RateLimit.WikiOverrides)
	fetcher = ratelimit.NewRateLimitedFetcher(fetcher, limiter)
	logger.Debug("rate limiter configured", "min_delay", cfg.RateLimit.MinDelay.String())

	if cfg.Retry.MaxRetries > 0 {
		fetcher = retry.NewRetryFetcher(fetcher, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
	}
	return fetcher
}

// openArchive opens the SQLite archive when enabled, or a NopStore otherwise.
// The returned close func is always safe to call.
func openArchive(cfg *config.Config, logger *slog.Logger) (model.RecordArchive, func(), error) {
	if !cfg.Archive.Enabled {
		return store.NewNopStore(), func() {}, nil
	}
	sqlStore, err := store.NewSQLiteStore(cfg.Archive.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening archive: %w", err)
	}
	logger.Debug("archive opened", "path", cfg.Archive.Path)
	return sqlStore, func() { sqlStore.Close() }, nil
}

// buildScraper wires the full fetch → normalize → archive pipeline.
func buildScraper(cfg *config.Config, archive model.RecordArchive, logger *slog.Logger) (*scraper.Scraper, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return scraper.NewScraper(
		buildFetcher(cfg, logger),
		normalize.NewNormalizer(reg, logger),
		archive,
		logger,
	), nil
}

// parseWiki validates a --wiki flag value.
func parseWiki(s string) (model.GameFamily, error) {
	family, err := model.ParseGameFamily(s)
	if err != nil {
		return "", fmt.Errorf("--wiki: %w (want genshin or hsr)", err)
	}
	return family, nil
}
