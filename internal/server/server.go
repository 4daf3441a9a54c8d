// Package server exposes the scraper over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amishk599/hoyotext/internal/model"
)

const shutdownTimeout = 10 * time.Second

// PageScraper fetches and normalizes one wiki page.
type PageScraper interface {
	Scrape(ctx context.Context, family model.GameFamily, pageID int) ([]model.CanonicalRecord, error)
}

// Server wires the HTTP routes to a scraper.
type Server struct {
	scraper PageScraper
	logger  *slog.Logger
	router  *gin.Engine
}

// New creates a server and registers its routes.
func New(scraper PageScraper, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(logger))

	s := &Server{scraper: scraper, logger: logger, router: router}
	s.RegisterRoutes(router)
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) RegisterRoutes(r gin.IRoutes) {
	r.POST("/probe", s.probe)
	r.POST("/silver-wolf", s.scrape)
	r.GET("/health", s.health)
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
