// Package ratelimit implements a fixed-window request limiter over a cache
// backend, so limits hold across replicas when Redis is configured.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"GoldTracker/pkg/cache"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Duration
}

// Limiter admits at most limit hits per key per window.
type Limiter struct {
	store  cache.Service
	limit  int
	window time.Duration
	prefix string
}

func New(store cache.Service, limit int, window time.Duration) *Limiter {
	return &Limiter{store: store, limit: limit, window: window, prefix: "ratelimit"}
}

// Allow records one hit for key and reports whether it fits the window.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	k := cache.GenerateKey(l.prefix, key)
	n, err := l.store.Hit(ctx, k, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit hit %s: %w", key, err)
	}

	d := Decision{Limit: l.limit, Reset: l.window}
	if ttl, err := l.store.TTL(ctx, k); err == nil && ttl > 0 {
		d.Reset = ttl
	}
	if n > int64(l.limit) {
		return d, nil
	}
	d.Allowed = true
	d.Remaining = l.limit - int(n)
	return d, nil
}
