package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ticks             *prometheus.CounterVec
	lastPrice         *prometheus.GaugeVec
	embeds            *prometheus.CounterVec
	missingContainers *prometheus.CounterVec
	panelMounts       *prometheus.CounterVec
	sessions          prometheus.Gauge
	messagesSent      *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
	latency           *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder registered on reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		ticks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldtracker_timer_ticks_total",
				Help: "Total number of periodic timer callbacks by component",
			},
			[]string{"component"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldtracker_last_price",
				Help: "Last simulated price for a market",
			},
			[]string{"market"},
		),
		embeds: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldtracker_widget_embeds_total",
				Help: "Total number of widget embeds by kind",
			},
			[]string{"kind"},
		),
		missingContainers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldtracker_widget_missing_container_total",
				Help: "Embeds skipped because the target container does not exist",
			},
			[]string{"container"},
		),
		panelMounts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldtracker_panel_mounts_total",
				Help: "Total number of panel mounts by tab",
			},
			[]string{"tab"},
		),
		sessions: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "goldtracker_sessions_active",
				Help: "Number of live dashboard sessions",
			},
		),
		messagesSent: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldtracker_messages_sent_total",
				Help: "Total number of quote snapshots sent to backend",
			},
			[]string{"backend", "market"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldtracker_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldtracker_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordTick records one timer callback for a component (simulator, clock, stream).
func (r *Recorder) RecordTick(component string) {
	r.ticks.WithLabelValues(component).Inc()
}

// RecordLastPrice records the last price for a market.
func (r *Recorder) RecordLastPrice(market string, price float64) {
	r.lastPrice.WithLabelValues(market).Set(price)
}

func (r *Recorder) RecordEmbed(kind string) {
	r.embeds.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordMissingContainer(container string) {
	r.missingContainers.WithLabelValues(container).Inc()
}

func (r *Recorder) RecordPanelMount(tab string) {
	r.panelMounts.WithLabelValues(tab).Inc()
}

// RecordSessions sets the live session gauge.
func (r *Recorder) RecordSessions(n int) {
	r.sessions.Set(float64(n))
}

// RecordMessageSent records a snapshot sent to a backend.
func (r *Recorder) RecordMessageSent(backend, market string) {
	r.messagesSent.WithLabelValues(backend, market).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
