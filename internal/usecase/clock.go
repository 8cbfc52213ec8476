package usecase

import (
	"context"
	"sync"
	"time"

	drepo "GoldTracker/internal/domain/repository"
	"GoldTracker/pkg/timer"
)

const (
	DefaultClockInterval = time.Second
	ClockLayout          = "15:04:05"
)

// Clock keeps the header's displayed wall-clock time fresh.
type Clock struct {
	mu      sync.Mutex
	display string
	now     func() time.Time
	src     timer.Source
	period  time.Duration
	handle  *timer.Handle
	metrics drepo.Metrics
}

type ClockOption func(*Clock)

func WithClockSource(src timer.Source) ClockOption {
	return func(c *Clock) { c.src = src }
}

func WithClockNow(now func() time.Time) ClockOption {
	return func(c *Clock) { c.now = now }
}

func WithClockPeriod(d time.Duration) ClockOption {
	return func(c *Clock) {
		if d > 0 {
			c.period = d
		}
	}
}

func NewClock(metrics drepo.Metrics, opts ...ClockOption) *Clock {
	c := &Clock{
		now:     time.Now,
		src:     timer.System,
		period:  DefaultClockInterval,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.display = formatClock(c.now())
	return c
}

func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != nil {
		return
	}
	c.handle = timer.Every(ctx, c.src, c.period, func(time.Time) { c.Tick() })
}

func (c *Clock) Stop() {
	c.mu.Lock()
	h := c.handle
	c.handle = nil
	c.mu.Unlock()
	h.Stop()
}

// Tick replaces the displayed time with the current wall-clock time.
func (c *Clock) Tick() {
	s := formatClock(c.now())
	c.mu.Lock()
	c.display = s
	c.mu.Unlock()
	c.metrics.RecordTick("clock")
}

func (c *Clock) Display() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

func formatClock(t time.Time) string { return t.UTC().Format(ClockLayout) }
