package usecase

import (
	"fmt"
	"sync"
	"time"

	drepo "GoldTracker/internal/domain/repository"
	applogger "GoldTracker/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// DashboardFactory builds the dashboard for a new session id.
type DashboardFactory func(id string) (*Dashboard, error)

// SessionRegistry tracks one dashboard per browser session and evicts idle ones
// on a cron schedule.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Dashboard
	factory  DashboardFactory
	ttl      time.Duration
	now      func() time.Time
	schedule string
	cron     *cron.Cron
	metrics  drepo.Metrics
	l        *applogger.Logger
}

type RegistryOption func(*SessionRegistry)

func WithRegistryNow(now func() time.Time) RegistryOption {
	return func(r *SessionRegistry) { r.now = now }
}

func NewSessionRegistry(factory DashboardFactory, ttl time.Duration, schedule string,
	metrics drepo.Metrics, l *applogger.Logger, opts ...RegistryOption) *SessionRegistry {
	if l == nil {
		l = applogger.Nop()
	}
	r := &SessionRegistry{
		sessions: make(map[string]*Dashboard),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		schedule: schedule,
		cron:     cron.New(),
		metrics:  metrics,
		l:        l,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start registers the idle sweep and starts the scheduler.
func (r *SessionRegistry) Start() error {
	if _, err := r.cron.AddFunc(r.schedule, func() { r.Sweep() }); err != nil {
		return fmt.Errorf("register session sweep: %w", err)
	}
	r.cron.Start()
	r.l.Info("session sweeper started", applogger.String("schedule", r.schedule), applogger.Duration("idle_ttl_ms", r.ttl))
	return nil
}

// Stop halts the scheduler, waits for a running sweep and closes every dashboard.
func (r *SessionRegistry) Stop() {
	<-r.cron.Stop().Done()

	r.mu.Lock()
	all := make([]*Dashboard, 0, len(r.sessions))
	for id, d := range r.sessions {
		all = append(all, d)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, d := range all {
		d.Close()
	}
	r.metrics.RecordSessions(0)
	r.l.Info("sessions closed", applogger.Int("count", len(all)))
}

// Get returns a live dashboard and marks it used.
func (r *SessionRegistry) Get(id string) (*Dashboard, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	d.Touch()
	return d, true
}

// GetOrCreate returns the dashboard for id, creating one when the session is
// unknown. Ids that are not UUIDs are replaced with a fresh one.
func (r *SessionRegistry) GetOrCreate(id string) (*Dashboard, error) {
	if d, ok := r.Get(id); ok {
		return d, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.sessions[id]; ok {
		d.Touch()
		return d, nil
	}
	d, err := r.factory(id)
	if err != nil {
		return nil, fmt.Errorf("create dashboard: %w", err)
	}
	r.sessions[id] = d
	r.metrics.RecordSessions(len(r.sessions))
	r.l.Debug("session created", applogger.String("session", id))
	return d, nil
}

// Sweep closes dashboards idle for longer than the ttl and returns how many were evicted.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var idle []*Dashboard
	for id, d := range r.sessions {
		if d.LastSeen().Before(cutoff) {
			idle = append(idle, d)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, d := range idle {
		d.Close()
	}
	r.metrics.RecordSessions(n)
	if len(idle) > 0 {
		r.l.Info("idle sessions evicted", applogger.Int("evicted", len(idle)), applogger.Int("remaining", n))
	}
	return len(idle)
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
