package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/amishk599/hoyotext/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long:  "Serve POST /probe, POST /silver-wolf and GET /health; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("config loaded",
		"addr", cfg.Server.Addr,
		"base_url", cfg.HoYoLAB.BaseURL,
		"language", cfg.HoYoLAB.Language,
		"archive", cfg.Archive.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	archive, closeArchive, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	defer closeArchive()

	if cfg.Archive.Retention > 0 {
		if err := archive.Cleanup(ctx, cfg.Archive.Retention); err != nil {
			logger.Warn("archive cleanup failed", "error", err)
		}
	}

	s, err := buildScraper(cfg, archive, logger)
	if err != nil {
		return err
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(s, logger)
	if err := srv.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return err
	}

	logger.Info("goodbye")
	return nil
}
