// Package ratelimit provides shared request pacing for remote services.
// One limiter instance is shared by all workers talking to a service, so
// concurrency never multiplies the request rate.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the polite minimum delay between consecutive requests
// to the same remote service.
const DefaultInterval = time.Second

// Limiter enforces a minimum interval between consecutive calls. It is a
// token bucket with burst 1: the first call proceeds immediately and every
// later call waits out the remainder of the interval.
type Limiter struct {
	limiter *rate.Limiter
}

// NewInterval creates a Limiter spacing calls at least d apart. A
// non-positive d disables pacing.
func NewInterval(d time.Duration) *Limiter {
	if d <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(d), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a call may proceed right now without blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
