package usecase

import (
	"context"
	"sync"

	"GoldTracker/internal/domain/models"
)

type fakeMetrics struct {
	mu       sync.Mutex
	ticks    map[string]int
	mounts   map[string]int
	missing  int
	sessions int
	errors   map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{ticks: map[string]int{}, mounts: map[string]int{}, errors: map[string]int{}}
}

func (f *fakeMetrics) RecordTick(c string) {
	f.mu.Lock()
	f.ticks[c]++
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordPanelMount(tab string) {
	f.mu.Lock()
	f.mounts[tab]++
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordMissingContainer(string) {
	f.mu.Lock()
	f.missing++
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordSessions(n int) {
	f.mu.Lock()
	f.sessions = n
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordError(kind string) {
	f.mu.Lock()
	f.errors[kind]++
	f.mu.Unlock()
}

func (f *fakeMetrics) RecordLastPrice(string, float64)  {}
func (f *fakeMetrics) RecordEmbed(string)               {}
func (f *fakeMetrics) RecordMessageSent(string, string) {}
func (f *fakeMetrics) RecordLatency(string, float64)    {}

func (f *fakeMetrics) tickCount(c string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ticks[c]
}

type recordingSink struct {
	mu    sync.Mutex
	ticks []models.TickSnapshot
}

func (r *recordingSink) OnTick(_ context.Context, snap models.TickSnapshot) {
	r.mu.Lock()
	r.ticks = append(r.ticks, snap)
	r.mu.Unlock()
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

func (r *recordingSink) last() models.TickSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks[len(r.ticks)-1]
}
