package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

// WikiRateLimiter enforces a minimum delay between requests to the same wiki.
type WikiRateLimiter struct {
	mu        sync.Mutex
	lastCall  map[model.GameFamily]time.Time
	minDelay  time.Duration
	overrides map[model.GameFamily]time.Duration
}

// NewWikiRateLimiter creates a rate limiter that enforces minDelay between
// consecutive requests to the same wiki. overrides replaces minDelay for
// individual wikis and may be nil.
func NewWikiRateLimiter(minDelay time.Duration, overrides map[model.GameFamily]time.Duration) *WikiRateLimiter {
	return &WikiRateLimiter{
		lastCall:  make(map[model.GameFamily]time.Time),
		minDelay:  minDelay,
		overrides: overrides,
	}
}

func (r *WikiRateLimiter) delayFor(wiki model.GameFamily) time.Duration {
	if d, ok := r.overrides[wiki]; ok {
		return d
	}
	return r.minDelay
}

// Wait blocks until enough time has passed since the last request to the given wiki.
// Returns an error if the context is cancelled while waiting.
func (r *WikiRateLimiter) Wait(ctx context.Context, wiki model.GameFamily) error {
	r.mu.Lock()
	last, ok := r.lastCall[wiki]
	now := time.Now()
	delay := r.delayFor(wiki)

	if !ok || now.Sub(last) >= delay {
		r.lastCall[wiki] = now
		r.mu.Unlock()
		return nil
	}

	// Reserve the next slot so concurrent callers queue up behind each other.
	next := last.Add(delay)
	r.lastCall[wiki] = next
	r.mu.Unlock()

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", wiki, ctx.Err())
	case <-timer.C:
	}
	return nil
}

// Ensure RateLimitedFetcher implements model.PageFetcher.
var _ model.PageFetcher = (*RateLimitedFetcher)(nil)

// RateLimitedFetcher is a decorator that enforces wiki-level rate limiting
// before delegating to the wrapped PageFetcher.
type RateLimitedFetcher struct {
	inner   model.PageFetcher
	limiter *WikiRateLimiter
}

// NewRateLimitedFetcher wraps a PageFetcher with wiki-level rate limiting.
func NewRateLimitedFetcher(inner model.PageFetcher, limiter *WikiRateLimiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{
		inner:   inner,
		limiter: limiter,
	}
}

// FetchPage waits for the rate limiter to allow a request to the page's wiki,
// then delegates to the wrapped fetcher.
func (f *RateLimitedFetcher) FetchPage(ctx context.Context, family model.GameFamily, pageID int) (*model.Envelope, error) {
	if err := f.limiter.Wait(ctx, family); err != nil {
		return nil, err
	}
	return f.inner.FetchPage(ctx, family, pageID)
}
