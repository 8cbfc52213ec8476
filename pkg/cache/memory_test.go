package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(t *testing.T, opts ...MemoryOption) (*MemoryCache, *stepClock) {
	t.Helper()
	clk := &stepClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	opts = append([]MemoryOption{WithMemoryNow(clk.Now), WithMemoryCleanup(0)}, opts...)
	mc := NewMemoryCache(opts...)
	t.Cleanup(func() { _ = mc.Close() })
	return mc, clk
}

func TestMemoryCacheHitCountsWithinWindow(t *testing.T) {
	mc, clk := newTestCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := mc.Hit(ctx, "ip:1", time.Minute)
		if err != nil {
			t.Fatalf("hit: %v", err)
		}
		if got != want {
			t.Fatalf("hit=%d want %d", got, want)
		}
	}

	clk.Advance(30 * time.Second)
	ttl, err := mc.TTL(ctx, "ip:1")
	if err != nil || ttl != 30*time.Second {
		t.Fatalf("ttl=%v err=%v", ttl, err)
	}

	// later hits do not extend the window
	if got, _ := mc.Hit(ctx, "ip:1", time.Minute); got != 4 {
		t.Fatalf("hit=%d want 4", got)
	}
	clk.Advance(30 * time.Second)
	if got, _ := mc.Hit(ctx, "ip:1", time.Minute); got != 1 {
		t.Fatalf("expected a fresh window, got %d", got)
	}
}

func TestMemoryCacheSetGetExpiry(t *testing.T) {
	mc, clk := newTestCache(t)
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := mc.Set(ctx, "forever", "v", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, err := mc.Get(ctx, "k"); err != nil || v != "v" {
		t.Fatalf("get=%q err=%v", v, err)
	}
	clk.Advance(time.Second)
	if _, err := mc.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("want miss after expiry, got %v", err)
	}
	if ok, _ := mc.Exists(ctx, "k", "forever"); !ok {
		t.Fatalf("entry without expiry should survive")
	}
	if ttl, _ := mc.TTL(ctx, "forever"); ttl != -1 {
		t.Fatalf("ttl=%v want -1", ttl)
	}
	if err := mc.Delete(ctx, "forever"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := mc.Exists(ctx, "forever"); ok {
		t.Fatalf("deleted entry still present")
	}
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	mc, clk := newTestCache(t, WithMemoryMaxSize(2))
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", 0)
	clk.Advance(time.Millisecond)
	_ = mc.Set(ctx, "b", "2", 0)
	clk.Advance(time.Millisecond)
	if _, err := mc.Get(ctx, "a"); err != nil {
		t.Fatalf("get a: %v", err)
	}
	clk.Advance(time.Millisecond)
	_ = mc.Set(ctx, "c", "3", 0)

	if mc.Len() != 2 {
		t.Fatalf("len=%d want 2", mc.Len())
	}
	if _, err := mc.Get(ctx, "b"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("b should have been evicted")
	}
}

func TestMemoryCacheRemoveExpired(t *testing.T) {
	mc, clk := newTestCache(t)
	ctx := context.Background()

	_, _ = mc.Hit(ctx, "a", time.Second)
	_, _ = mc.Hit(ctx, "b", time.Hour)
	clk.Advance(2 * time.Second)
	mc.removeExpired()
	if mc.Len() != 1 {
		t.Fatalf("len=%d want 1", mc.Len())
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	if got := GenerateKeyWithParams("ratelimit", "10.0.0.1", 3); got != "ratelimit:10.0.0.1:3" {
		t.Fatalf("got %s", got)
	}
}
