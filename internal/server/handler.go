package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amishk599/hoyotext/internal/model"
)

const (
	msgInvalidRequest = "Invalid Wiki Request"
	msgInternal       = "Internal Server Error"
	msgUpstream       = "Upstream Wiki Error"
)

// scrapeRequest is the body of POST /silver-wolf.
type scrapeRequest struct {
	Wiki   string `json:"miHoYoWiki" binding:"required"`
	PageID int    `json:"miHoYoWikiID" binding:"required,gt=0"`
}

// probe answers the host's liveness check.
func (s *Server) probe(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}
	family, err := model.ParseGameFamily(req.Wiki)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	records, err := s.scraper.Scrape(c.Request.Context(), family, req.PageID)
	if err != nil {
		status, msg := statusFor(err)
		s.logger.Error("scrape failed",
			"request_id", c.GetString(ctxRequestIDKey),
			"wiki", family,
			"page_id", req.PageID,
			"status", status,
			"error", err,
		)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, records)
}

// statusFor maps a scrape error to a response status and message.
func statusFor(err error) (int, string) {
	var httpErr *model.HTTPError
	var apiErr *model.APIError
	switch {
	case errors.Is(err, model.ErrUnknownGameFamily):
		return http.StatusBadRequest, msgInvalidRequest
	case errors.Is(err, model.ErrMalformedInput),
		errors.Is(err, model.ErrMalformedPayload),
		errors.As(err, &httpErr),
		errors.As(err, &apiErr):
		return http.StatusBadGateway, msgUpstream
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
