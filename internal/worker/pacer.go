// Package worker provides the request pacer that keeps the scan polite.
package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out live fetches against the store API. Every call to Wait
// clears the rate limiter; every Nth call additionally takes a longer
// pause. Both are politeness measures, not correctness requirements.
type Pacer struct {
	limiter   *rate.Limiter
	longEvery int
	longPause time.Duration
	calls     int
}

// NewPacer creates a pacer with one request per delay interval. longEvery
// <= 0 disables the periodic long pause.
func NewPacer(delay time.Duration, longEvery int, longPause time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{
		limiter:   rate.NewLimiter(limit, 1),
		longEvery: longEvery,
		longPause: longPause,
	}
}

// Wait blocks until the next live fetch may proceed
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	p.calls++
	if p.longEvery > 0 && p.longPause > 0 && p.calls%p.longEvery == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.longPause):
		}
	}

	return nil
}

// Calls returns the number of completed waits
func (p *Pacer) Calls() int {
	return p.calls
}
