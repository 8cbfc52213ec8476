package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"GoldTracker/pkg/cache"
)

type failingStore struct{ cache.Service }

func (failingStore) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}

func TestLimiterAllowsUpToLimit(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	store := cache.NewMemoryCache(cache.WithMemoryCleanup(0), cache.WithMemoryNow(func() time.Time { return now }))
	defer store.Close()

	l := New(store, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !d.Allowed || d.Remaining != 2-i {
			t.Fatalf("hit %d: %+v", i, d)
		}
	}
	d, _ := l.Allow(ctx, "10.0.0.1")
	if d.Allowed || d.Remaining != 0 || d.Reset != time.Minute {
		t.Fatalf("fourth hit should be denied: %+v", d)
	}

	// other keys have their own window
	if d, _ := l.Allow(ctx, "10.0.0.2"); !d.Allowed {
		t.Fatalf("independent key denied")
	}

	now = now.Add(time.Minute)
	if d, _ := l.Allow(ctx, "10.0.0.1"); !d.Allowed {
		t.Fatalf("new window should admit")
	}
}

func TestLimiterPropagatesStoreError(t *testing.T) {
	l := New(failingStore{}, 1, time.Second)
	if _, err := l.Allow(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
}
