package cache

import (
	"context"
	"sync"
	"time"

	"GoldTracker/pkg/timer"
)

// MemoryItem stores cached value with expiration.
type MemoryItem struct {
	Value    string
	Count    int64
	ExpireAt time.Time
}

func (m *MemoryItem) expired(now time.Time) bool {
	return !m.ExpireAt.IsZero() && !now.Before(m.ExpireAt)
}

// MemoryCache implements Service in process with LRU eviction.
type MemoryCache struct {
	data    map[string]*MemoryItem
	access  map[string]time.Time
	mutex   sync.Mutex
	maxSize int
	now     func() time.Time
	cleanup *timer.Handle
}

// NewMemoryCache creates an in-memory cache. Expired entries are swept every
// CleanupInterval until Close.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         10000,
		CleanupInterval: time.Minute,
		Now:             time.Now,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	mc := &MemoryCache{
		data:    make(map[string]*MemoryItem),
		access:  make(map[string]time.Time),
		maxSize: cfg.MaxSize,
		now:     cfg.Now,
	}
	if cfg.CleanupInterval > 0 {
		mc.cleanup = timer.Every(context.Background(), timer.System, cfg.CleanupInterval, func(time.Time) {
			mc.removeExpired()
		})
	}
	return mc
}

func (mc *MemoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	if _, ok := mc.data[key]; !ok && len(mc.data) >= mc.maxSize {
		mc.evictLRU()
	}

	item := &MemoryItem{Value: value}
	if expiration > 0 {
		item.ExpireAt = now.Add(expiration)
	}
	mc.data[key] = item
	mc.access[key] = now
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) (string, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	item, ok := mc.live(key)
	if !ok {
		return "", ErrCacheMiss
	}
	mc.access[key] = mc.now()
	return item.Value, nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		delete(mc.data, key)
		delete(mc.access, key)
	}
	return nil
}

func (mc *MemoryCache) Exists(_ context.Context, keys ...string) (bool, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	for _, key := range keys {
		if _, ok := mc.live(key); ok {
			return true, nil
		}
	}
	return false, nil
}

func (mc *MemoryCache) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	item, ok := mc.live(key)
	if !ok {
		if len(mc.data) >= mc.maxSize {
			mc.evictLRU()
		}
		item = &MemoryItem{ExpireAt: now.Add(window)}
		mc.data[key] = item
	}
	item.Count++
	mc.access[key] = now
	return item.Count, nil
}

func (mc *MemoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	item, ok := mc.live(key)
	if !ok {
		return 0, ErrCacheMiss
	}
	if item.ExpireAt.IsZero() {
		return -1, nil
	}
	return item.ExpireAt.Sub(mc.now()), nil
}

// Len reports the number of stored entries, expired ones included.
func (mc *MemoryCache) Len() int {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	return len(mc.data)
}

// Close stops the cleanup timer.
func (mc *MemoryCache) Close() error {
	mc.cleanup.Stop()
	return nil
}

// live returns the entry for key, dropping it when expired. Caller holds the lock.
func (mc *MemoryCache) live(key string) (*MemoryItem, bool) {
	item, ok := mc.data[key]
	if !ok {
		return nil, false
	}
	if item.expired(mc.now()) {
		delete(mc.data, key)
		delete(mc.access, key)
		return nil, false
	}
	return item, true
}

func (mc *MemoryCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	for key, accessTime := range mc.access {
		if oldestKey == "" || accessTime.Before(oldestTime) {
			oldestTime = accessTime
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(mc.data, oldestKey)
		delete(mc.access, oldestKey)
	}
}

func (mc *MemoryCache) removeExpired() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	now := mc.now()
	for key, item := range mc.data {
		if item.expired(now) {
			delete(mc.data, key)
			delete(mc.access, key)
		}
	}
}
