package di

import (
	"context"
	"errors"
	"fmt"

	"GoldTracker/internal/domain/repository"
	"GoldTracker/internal/handler/api"
	mid "GoldTracker/internal/middleware"
	internalrepo "GoldTracker/internal/repository"
	"GoldTracker/internal/service/ratelimit"
	"GoldTracker/internal/usecase"
	"GoldTracker/pkg/cache"
	"GoldTracker/pkg/config"
	xhttp "GoldTracker/pkg/http"
	pkgkafka "GoldTracker/pkg/kafka"
	applogger "GoldTracker/pkg/logger"
	"GoldTracker/pkg/metrics"
	"GoldTracker/pkg/server"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sony/gobreaker"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvidePrometheusRegistry creates the registry every collector registers on.
func ProvidePrometheusRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) repository.Metrics {
	return metrics.New(reg)
}

// ProvideCache creates the rate-limit counter store: Redis when enabled,
// otherwise in process.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(context.Background(),
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
		cache.WithRedisPool(cfg.Redis.Pool.Size, cfg.Redis.Pool.MinIdleConns, cfg.Redis.Pool.Timeout),
		cache.WithRedisConnectRetry(cfg.Redis.ConnectTimeout, cfg.Redis.ConnectRetries),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("redis connected", applogger.String("host", cfg.Redis.Host), applogger.Int("port", cfg.Redis.Port))
	return rc, nil
}

// ProvideRateLimiter creates the request limiter guarding /api and /ws.
func ProvideRateLimiter(cfg *config.Config, store cache.Service) *ratelimit.Limiter {
	return ratelimit.New(store, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}

// ProvideKafkaPublisher creates the breaker-guarded Kafka publisher, or nil
// when fan-out is disabled.
func ProvideKafkaPublisher(cfg *config.Config, reg *prometheus.Registry, m repository.Metrics, l *applogger.Logger) (*internalrepo.KafkaPublisher, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic, internalrepo.DefaultBreakerSettings(), m, l), nil
}

// ProvideQuotePipeline puts validation, throttling and retries in front of
// the publisher. It is nil when there is no publisher.
func ProvideQuotePipeline(cfg *config.Config, pub *internalrepo.KafkaPublisher, m repository.Metrics, l *applogger.Logger) *mid.QuotePipeline {
	if pub == nil {
		return nil
	}
	return mid.NewQuotePipeline(pub, m,
		mid.WithMaxRPS(cfg.Kafka.Pipeline.MaxPerSecond),
		mid.WithBufferSize(cfg.Kafka.Pipeline.BufferSize),
		mid.WithPipelineLogger(l),
	)
}

// ProvideDashboardConfig collects the per-session dashboard settings.
func ProvideDashboardConfig(cfg *config.Config, pipe *mid.QuotePipeline) usecase.DashboardConfig {
	dc := usecase.DashboardConfig{
		QuoteInterval: cfg.Dashboard.QuoteInterval,
		ClockInterval: cfg.Dashboard.ClockInterval,
		ScriptBaseURL: cfg.Dashboard.Widget.ScriptBaseURL,
		Theme:         cfg.Dashboard.Widget.Theme,
		Locale:        cfg.Dashboard.Widget.Locale,
	}
	if pipe != nil {
		dc.Sink = pipe
	}
	return dc
}

// ProvideSessionRegistry creates the registry that owns every dashboard.
func ProvideSessionRegistry(cfg *config.Config, dc usecase.DashboardConfig, m repository.Metrics, l *applogger.Logger) *usecase.SessionRegistry {
	factory := func(id string) (*usecase.Dashboard, error) {
		return usecase.NewDashboard(id, dc, m, l)
	}
	return usecase.NewSessionRegistry(factory, cfg.Dashboard.SessionIdleTTL, cfg.Dashboard.SweepSchedule, m, l)
}

// ProvideTemplateRenderer parses the page templates.
func ProvideTemplateRenderer() (*api.TemplateRenderer, error) {
	return api.NewTemplateRenderer()
}

// ProvideDashboardHandler creates the HTTP handler, guarded by the rate
// limiter when enabled.
func ProvideDashboardHandler(cfg *config.Config, sessions *usecase.SessionRegistry, lim *ratelimit.Limiter, m repository.Metrics, l *applogger.Logger) *api.DashboardHandler {
	var guard []echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		guard = append(guard, mid.RateLimit(lim, m, l))
	}
	return api.NewDashboardHandler(l, sessions, api.DashboardConfig{
		CookieName:     cfg.Dashboard.CookieName,
		CookieMaxAge:   cfg.Dashboard.SessionIdleTTL,
		StreamInterval: cfg.Dashboard.StreamInterval,
	}, guard...)
}

// ProvideHTTPServer creates the Echo server with health checks for the
// optional backends.
func ProvideHTTPServer(
	cfg *config.Config,
	h *api.DashboardHandler,
	renderer *api.TemplateRenderer,
	reg *prometheus.Registry,
	store cache.Service,
	pub *internalrepo.KafkaPublisher,
	l *applogger.Logger,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithRenderer(renderer),
		xhttp.WithLogger(l),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg, reg))
	} else {
		opts = append(opts, xhttp.WithMetrics("", nil, nil))
	}
	if rc, ok := store.(*cache.RedisCache); ok {
		opts = append(opts, xhttp.WithHealthCheck("redis", func(ctx context.Context) error {
			return rc.Client().Ping(ctx).Err()
		}))
	}
	if pub != nil {
		opts = append(opts, xhttp.WithHealthCheck("kafka", func(context.Context) error {
			if pub.State() == gobreaker.StateOpen {
				return errors.New("circuit breaker open")
			}
			return nil
		}))
	}
	return xhttp.NewServer(h, opts...)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	sessions *usecase.SessionRegistry,
	pipe *mid.QuotePipeline,
	pub *internalrepo.KafkaPublisher,
	store cache.Service,
) *server.App {
	return server.New(cfg, l, httpServer, sessions, pipe, pub, store)
}
