package timer

import (
	"sync"
	"time"
)

// Manual is a Source whose tickers only fire when told to.
type Manual struct {
	mu      sync.Mutex
	tickers []*ManualTicker
	created chan *ManualTicker
}

func NewManual() *Manual {
	return &Manual{created: make(chan *ManualTicker, 64)}
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	t := &ManualTicker{
		Period:  d,
		c:       make(chan time.Time),
		acks:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	m.mu.Lock()
	m.tickers = append(m.tickers, t)
	m.mu.Unlock()
	select {
	case m.created <- t:
	default:
	}
	return t
}

// Next waits up to timeout for the next ticker created by the source.
func (m *Manual) Next(timeout time.Duration) *ManualTicker {
	select {
	case t := <-m.created:
		return t
	case <-time.After(timeout):
		return nil
	}
}

// Tickers returns every ticker created so far.
func (m *Manual) Tickers() []*ManualTicker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ManualTicker, len(m.tickers))
	copy(out, m.tickers)
	return out
}

// ManualTicker delivers ticks on demand.
type ManualTicker struct {
	Period  time.Duration
	c       chan time.Time
	acks    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func (t *ManualTicker) C() <-chan time.Time { return t.c }

func (t *ManualTicker) Stop() { t.once.Do(func() { close(t.stopped) }) }

func (t *ManualTicker) ack() {
	select {
	case t.acks <- struct{}{}:
	case <-t.stopped:
	}
}

// Fire delivers one tick and blocks until the callback returned.
// It reports false when the ticker was stopped or nobody received within a second.
func (t *ManualTicker) Fire(now time.Time) bool {
	select {
	case t.c <- now:
	case <-t.stopped:
		return false
	case <-time.After(time.Second):
		return false
	}
	select {
	case <-t.acks:
		return true
	case <-t.stopped:
		return false
	case <-time.After(time.Second):
		return false
	}
}

// Stopped reports whether the owner released the ticker.
func (t *ManualTicker) Stopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}
