package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"GoldTracker/internal/domain/models"
	drepo "GoldTracker/internal/domain/repository"
	applogger "GoldTracker/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// QuotePipeline sits between the simulator and an external publisher.
// It validates, throttles per session and market, and hands snapshots to a background worker
// so a slow or failing downstream never delays a simulator tick.
type QuotePipeline struct {
	pub      drepo.Publisher
	metrics  drepo.Metrics
	l        *applogger.Logger
	maxRPS   int
	bufSize  int
	bufCh    chan models.TickSnapshot
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
	mu       sync.Mutex
	lastSeen map[string]time.Time // per session/market last accepted time
	now      func() time.Time
	newBO    func() backoff.BackOff
}

type PipelineOption func(*QuotePipeline)

// WithMaxRPS sets the max quotes per second per session and market.
func WithMaxRPS(n int) PipelineOption {
	return func(p *QuotePipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the queue size between ticks and the downstream.
func WithBufferSize(n int) PipelineOption {
	return func(p *QuotePipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// WithPipelineLogger sets the logger for dropped or failed quotes.
func WithPipelineLogger(l *applogger.Logger) PipelineOption {
	return func(p *QuotePipeline) { p.l = l }
}

// WithRetryBackOff sets the retry policy applied after a downstream failure.
func WithRetryBackOff(fn func() backoff.BackOff) PipelineOption {
	return func(p *QuotePipeline) { p.newBO = fn }
}

func NewQuotePipeline(pub drepo.Publisher, metrics drepo.Metrics, opts ...PipelineOption) *QuotePipeline {
	p := &QuotePipeline{
		pub:      pub,
		metrics:  metrics,
		l:        applogger.Nop(),
		maxRPS:   10,
		bufSize:  256,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
		newBO: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			b.MaxElapsedTime = 10 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan models.TickSnapshot, p.bufSize)
	return p
}

// Start launches the background publisher.
func (p *QuotePipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	ctx, p.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-p.bufCh:
				p.deliver(ctx, snap)
			}
		}
	}()
}

// Stop cancels in-flight retries and waits for the publisher to exit.
// Queued snapshots are left unsent.
func (p *QuotePipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	cancel()
	<-done
}

// OnTick implements repository.TickSink. It never blocks on the downstream.
// Quotes that fail validation or the throttle are dropped from the snapshot;
// the rest are queued as one batch.
func (p *QuotePipeline) OnTick(_ context.Context, snap models.TickSnapshot) {
	now := p.now()
	kept := make([]models.MarketQuote, 0, len(snap.Quotes))
	for _, q := range snap.Quotes {
		if err := validateQuote(&q); err != nil {
			p.metrics.RecordError("pipeline_validate")
			p.l.Debug("quote rejected",
				applogger.String("session", snap.Session),
				applogger.String("market", q.ID),
				applogger.Error(err),
			)
			continue
		}
		if !p.allow(throttleKey(snap.Session, q.ID), now) {
			p.metrics.RecordError("pipeline_throttle")
			continue
		}
		kept = append(kept, q)
	}
	if len(kept) == 0 {
		return
	}
	snap.Quotes = kept
	select {
	case p.bufCh <- snap:
	default:
		p.metrics.RecordError("pipeline_buffer_full")
	}
}

// deliver publishes snap, retrying with backoff until the policy gives up.
func (p *QuotePipeline) deliver(ctx context.Context, snap models.TickSnapshot) {
	start := time.Now()
	bo := backoff.WithContext(p.newBO(), ctx)
	op := func() error {
		err := p.pub.PublishBatch(ctx, snap)
		if errors.Is(err, models.ErrDownstreamUnavailable) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		p.metrics.RecordError("pipeline_process")
		p.l.Warn("snapshot publish failed, retrying",
			applogger.String("session", snap.Session),
			applogger.Duration("retry_in_ms", wait),
			applogger.Error(err),
		)
	}
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		p.metrics.RecordError("pipeline_buffer_drop")
		p.l.Error("snapshot dropped",
			applogger.String("session", snap.Session),
			applogger.Int("quotes", len(snap.Quotes)),
			applogger.Error(err),
		)
		return
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
}

func validateQuote(q *models.MarketQuote) error {
	if q.ID == "" {
		return fmt.Errorf("market id empty")
	}
	if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) {
		return fmt.Errorf("price not finite")
	}
	if q.Price < 0 {
		return fmt.Errorf("negative price")
	}
	return nil
}

// Evicted sessions stop ticking; their throttle entries go stale.
const (
	throttlePruneAt = 1024
	throttleStale   = time.Minute
)

func throttleKey(session, market string) string { return session + "/" + market }

func (p *QuotePipeline) allow(key string, now time.Time) bool {
	if p.maxRPS <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	last := p.lastSeen[key]
	if !last.IsZero() && now.Sub(last) < time.Second/time.Duration(p.maxRPS) {
		return false
	}
	p.lastSeen[key] = now
	if len(p.lastSeen) > throttlePruneAt {
		for k, t := range p.lastSeen {
			if now.Sub(t) > throttleStale {
				delete(p.lastSeen, k)
			}
		}
	}
	return true
}
