package usecase

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"GoldTracker/internal/domain/models"
	drepo "GoldTracker/internal/domain/repository"
	applogger "GoldTracker/pkg/logger"
	"GoldTracker/pkg/timer"
)

const (
	DefaultQuoteInterval = 5 * time.Second
	justNow              = "Just now"
)

// QuoteSimulator perturbs a quote grid in place on a fixed period.
type QuoteSimulator struct {
	mu      sync.Mutex
	quotes  []models.MarketQuote
	rng     *rand.Rand
	handle  *timer.Handle
	src     timer.Source
	period  time.Duration
	sink    drepo.TickSink
	session string
	metrics drepo.Metrics
	l       *applogger.Logger
}

type SimulatorOption func(*QuoteSimulator)

// WithSimulatorSource sets the ticker source (tests pass timer.Manual).
func WithSimulatorSource(src timer.Source) SimulatorOption {
	return func(s *QuoteSimulator) { s.src = src }
}

// WithSimulatorPeriod overrides the 5s tick period.
func WithSimulatorPeriod(d time.Duration) SimulatorOption {
	return func(s *QuoteSimulator) {
		if d > 0 {
			s.period = d
		}
	}
}

// WithSimulatorRand sets the random source used for jitter.
func WithSimulatorRand(rng *rand.Rand) SimulatorOption {
	return func(s *QuoteSimulator) { s.rng = rng }
}

// WithTickSink receives a snapshot after every tick.
func WithTickSink(sink drepo.TickSink) SimulatorOption {
	return func(s *QuoteSimulator) { s.sink = sink }
}

// WithSimulatorSession tags tick snapshots with the owning session.
func WithSimulatorSession(id string) SimulatorOption {
	return func(s *QuoteSimulator) { s.session = id }
}

func NewQuoteSimulator(quotes []models.MarketQuote, metrics drepo.Metrics, l *applogger.Logger, opts ...SimulatorOption) *QuoteSimulator {
	s := &QuoteSimulator{
		quotes:  quotes,
		src:     timer.System,
		period:  DefaultQuoteInterval,
		metrics: metrics,
		l:       l,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.l == nil {
		s.l = applogger.Nop()
	}
	return s
}

// Start acquires the simulator timer. Calling Start on a running simulator is a no-op.
func (s *QuoteSimulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return
	}
	s.handle = timer.Every(ctx, s.src, s.period, func(time.Time) { s.Tick(ctx) })
	s.l.Debug("quote simulator started", applogger.Duration("period_ms", s.period), applogger.Int("quotes", len(s.quotes)))
}

// Stop releases the timer; no tick mutates the grid once Stop returns.
func (s *QuoteSimulator) Stop() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()
	// the callback takes s.mu, so wait outside it
	h.Stop()
}

func (s *QuoteSimulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Tick applies one round of jitter to every quote.
func (s *QuoteSimulator) Tick(ctx context.Context) {
	start := time.Now()
	s.mu.Lock()
	for i := range s.quotes {
		jitterQuote(&s.quotes[i], s.rng)
	}
	snapshot := cloneQuotes(s.quotes)
	s.mu.Unlock()

	s.metrics.RecordTick("simulator")
	for _, q := range snapshot {
		s.metrics.RecordLastPrice(q.ID, q.Price)
	}
	if s.sink != nil {
		s.sink.OnTick(ctx, models.TickSnapshot{Session: s.session, At: start, Quotes: snapshot})
	}
	s.metrics.RecordLatency("simulator_tick", time.Since(start).Seconds())
}

// Quotes returns a copy of the current grid.
func (s *QuoteSimulator) Quotes() []models.MarketQuote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneQuotes(s.quotes)
}

// jitterQuote draws four uniforms in order: price, change, percent, freshness.
// Values are unbounded and may drift arbitrarily far over many ticks.
func jitterQuote(q *models.MarketQuote, rng *rand.Rand) {
	q.Price += (rng.Float64() - 0.5) * 2
	q.Change += (rng.Float64() - 0.5) * 0.5
	q.ChangePercent += (rng.Float64() - 0.5) * 0.1
	if rng.Float64() > 0.7 {
		q.LastUpdate = justNow
	}
}

func cloneQuotes(q []models.MarketQuote) []models.MarketQuote {
	if q == nil {
		return nil
	}
	out := make([]models.MarketQuote, len(q))
	copy(out, q)
	return out
}
