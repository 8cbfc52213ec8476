package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestEveryFiresUntilStopped(t *testing.T) {
	src := NewManual()
	var calls atomic.Int32
	h := Every(context.Background(), src, 5*time.Second, func(time.Time) { calls.Add(1) })

	tk := src.Next(time.Second)
	if tk == nil {
		t.Fatalf("expected ticker to be created")
	}
	if tk.Period != 5*time.Second {
		t.Fatalf("expected period 5s, got %v", tk.Period)
	}
	for i := 0; i < 3; i++ {
		if !tk.Fire(time.Now()) {
			t.Fatalf("tick %d not delivered", i)
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}

	h.Stop()
	if !tk.Stopped() {
		t.Fatalf("expected underlying ticker to be stopped")
	}
	for i := 0; i < 5; i++ {
		if tk.Fire(time.Now()) {
			t.Fatalf("tick delivered after stop")
		}
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected no calls after stop, got %d", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	h := Every(context.Background(), NewManual(), time.Second, func(time.Time) {})
	h.Stop()
	h.Stop()
	var nilHandle *Handle
	nilHandle.Stop()
}

func TestContextCancelReleasesHandle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := Every(ctx, NewManual(), time.Second, func(time.Time) {})
	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatalf("handle not released after context cancel")
	}
}

func TestSystemSourceTicks(t *testing.T) {
	fired := make(chan struct{}, 1)
	h := Every(context.Background(), System, 5*time.Millisecond, func(time.Time) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	defer h.Stop()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatalf("system ticker never fired")
	}
}
