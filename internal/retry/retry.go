package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

// Ensure RetryFetcher implements model.PageFetcher.
var _ model.PageFetcher = (*RetryFetcher)(nil)

// RetryFetcher is a decorator that retries transient failures with exponential
// backoff and jitter before delegating to the wrapped PageFetcher.
type RetryFetcher struct {
	inner      model.PageFetcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetryFetcher wraps a PageFetcher with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
func NewRetryFetcher(inner model.PageFetcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryFetcher {
	return &RetryFetcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// maxDelay caps a single wait, including a server supplied Retry-After.
const maxDelay = time.Minute

// FetchPage attempts to fetch the page, retrying on transient errors.
func (f *RetryFetcher) FetchPage(ctx context.Context, family model.GameFamily, pageID int) (*model.Envelope, error) {
	for attempt := 0; ; attempt++ {
		env, err := f.inner.FetchPage(ctx, family, pageID)
		if err == nil {
			return env, nil
		}
		if !isRetryable(err) || attempt == f.maxRetries {
			return nil, err
		}

		delay := f.backoffDelay(attempt+1, err)
		f.logger.Warn("retrying after transient error",
			"wiki", family,
			"page_id", pageID,
			"attempt", attempt+1,
			"max_retries", f.maxRetries,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

// backoffDelay is baseDelay doubled per attempt with ±30% jitter, capped at maxDelay.
// A Retry-After carried by an HTTPError replaces the computed delay.
func (f *RetryFetcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return min(httpErr.RetryAfter, maxDelay)
	}

	delay := f.baseDelay
	for i := 1; i < attempt && delay < maxDelay; i++ {
		delay *= 2
	}
	delay = min(delay, maxDelay)
	jitter := (rand.Float64()*2 - 1) * 0.3 * float64(delay)
	return delay + time.Duration(jitter)
}

// isRetryable returns true if the error represents a transient failure worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation: never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Non-zero retcode or an undecodable body: the same page will fail again.
	var apiErr *model.APIError
	if errors.As(err, &apiErr) || errors.Is(err, model.ErrMalformedInput) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}

	// Transport failures (DNS, reset, timeout) are worth another try.
	return true
}
