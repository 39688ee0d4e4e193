package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter throttles remote requests per host so bulk warming stays polite.
type Limiter struct {
	limit    rate.Limit
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

// New returns a Limiter allowing perSecond requests per host.
// A non-positive rate disables throttling.
func New(perSecond float64) *Limiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Limiter{
		limit:    limit,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Unlimited returns a Limiter that never blocks.
func Unlimited() *Limiter {
	return New(0)
}

func (l *Limiter) get(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[host]
	if !exists {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[host] = limiter
	}
	return limiter
}

// Wait blocks until a request to host is permitted.
// It returns an error if the context is canceled first.
func (l *Limiter) Wait(ctx context.Context, host string) error {
	if l.limit == rate.Inf {
		return nil
	}
	return l.get(host).Wait(ctx)
}

// Allow reports whether a request to host may happen now
func (l *Limiter) Allow(host string) bool {
	if l.limit == rate.Inf {
		return true
	}
	return l.get(host).Allow()
}
