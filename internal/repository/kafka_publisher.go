package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GoldTracker/internal/domain/models"
	"GoldTracker/internal/domain/repository"
	pkgkafka "GoldTracker/pkg/kafka"
	applogger "GoldTracker/pkg/logger"

	"github.com/sony/gobreaker"
)

// Producer is the subset of pkg/kafka.Producer the publisher uses.
type Producer interface {
	PublishBatch(ctx context.Context, topic string, messages []pkgkafka.Message) error
	Close() error
}

// BreakerSettings tunes the circuit breaker in front of the producer.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings trips after 60% failures over at least 3 requests.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     10 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

var _ repository.Publisher = (*KafkaPublisher)(nil)

// KafkaPublisher implements repository.Publisher for Kafka behind a circuit breaker.
type KafkaPublisher struct {
	producer Producer
	topic    string
	cb       *gobreaker.CircuitBreaker
	metrics  repository.Metrics
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer Producer, topic string, bs BreakerSettings, metrics repository.Metrics, l *applogger.Logger) *KafkaPublisher {
	if l == nil {
		l = applogger.Nop()
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kafka-" + topic,
		MaxRequests: bs.MaxRequests,
		Interval:    bs.Interval,
		Timeout:     bs.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bs.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= bs.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			l.Warn("circuit breaker state changed",
				applogger.String("breaker", name),
				applogger.String("from", from.String()),
				applogger.String("to", to.String()),
			)
		},
	})
	return &KafkaPublisher{producer: producer, topic: topic, cb: cb, metrics: metrics}
}

// PublishBatch writes one message per quote of snap. Messages are keyed by
// session and quote ID so each session's walk stays ordered on one partition.
func (p *KafkaPublisher) PublishBatch(ctx context.Context, snap models.TickSnapshot) error {
	if len(snap.Quotes) == 0 {
		return nil
	}
	at := snap.At
	if at.IsZero() {
		at = time.Now()
	}
	msgs := make([]pkgkafka.Message, len(snap.Quotes))
	for i := range snap.Quotes {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(messageKey(snap.Session, snap.Quotes[i].ID)),
			Value: quoteMessage(snap.Session, &snap.Quotes[i], at),
		}
	}
	if err := p.execute(func() error { return p.producer.PublishBatch(ctx, p.topic, msgs) }); err != nil {
		return err
	}
	for i := range snap.Quotes {
		p.metrics.RecordMessageSent("kafka", snap.Quotes[i].ID)
	}
	return nil
}

// State reports the breaker state for health checks.
func (p *KafkaPublisher) State() gobreaker.State { return p.cb.State() }

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func (p *KafkaPublisher) execute(fn func() error) error {
	_, err := p.cb.Execute(func() (interface{}, error) { return nil, fn() })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		p.metrics.RecordError("kafka_breaker_open")
		return fmt.Errorf("kafka %s: %w: %v", p.topic, models.ErrDownstreamUnavailable, err)
	}
	if err != nil {
		p.metrics.RecordError("kafka_publish")
		return fmt.Errorf("kafka %s: %w", p.topic, err)
	}
	return nil
}

func messageKey(session, id string) string {
	if session == "" {
		return id
	}
	return session + ":" + id
}

func quoteMessage(session string, q *models.MarketQuote, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"session": session,
		"id":      q.ID,
		"market":  q.Name,
		"c":       q.Price,
		"chg":     q.Change,
		"pct":     q.ChangePercent,
		"status":  string(q.Status),
		"t":       at.Unix(),
	}
}
