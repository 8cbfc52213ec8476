// Package timer provides periodic callbacks bound to an owned handle.
//
// A Handle is acquired with Every and released with Stop. Once Stop returns,
// the callback is never invoked again, so owners can safely drop the state the
// callback mutates right after releasing the handle.
package timer

import (
	"context"
	"sync"
	"time"
)

// Ticker is the subset of time.Ticker used by Every.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Source creates tickers. Tests substitute a manual source.
type Source interface {
	NewTicker(d time.Duration) Ticker
}

// System is the Source backed by the runtime timer.
var System Source = systemSource{}

type systemSource struct{}

func (systemSource) NewTicker(d time.Duration) Ticker { return &systemTicker{t: time.NewTicker(d)} }

type systemTicker struct{ t *time.Ticker }

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }

// acker is implemented by tickers that want to know when a callback returned.
type acker interface{ ack() }

// Handle owns one running periodic callback.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every starts calling fn once per period until ctx is done or the handle is stopped.
// fn must not call Stop on its own handle.
func Every(ctx context.Context, src Source, period time.Duration, fn func(time.Time)) *Handle {
	if src == nil {
		src = System
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	t := src.NewTicker(period)

	go func() {
		defer close(h.done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C():
				// a cancel racing with a tick wins
				if ctx.Err() != nil {
					return
				}
				fn(now)
				if a, ok := t.(acker); ok {
					a.ack()
				}
			}
		}
	}()
	return h
}

// Stop cancels the timer and waits for an in-flight callback to return.
// It is safe to call more than once and on a nil handle.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the timer goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }
