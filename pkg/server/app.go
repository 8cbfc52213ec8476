package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mid "GoldTracker/internal/middleware"
	"GoldTracker/internal/repository"
	"GoldTracker/internal/usecase"
	"GoldTracker/pkg/cache"
	"GoldTracker/pkg/config"
	xhttp "GoldTracker/pkg/http"
	applogger "GoldTracker/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	sessions   *usecase.SessionRegistry
	pipeline   *mid.QuotePipeline
	publisher  *repository.KafkaPublisher
	store      cache.Service
}

// New creates a new App instance with all dependencies. pipeline and
// publisher are nil when tick fan-out is disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	sessions *usecase.SessionRegistry,
	pipeline *mid.QuotePipeline,
	publisher *repository.KafkaPublisher,
	store cache.Service,
) *App {
	return &App{
		cfg:        cfg,
		log:        l,
		httpServer: httpServer,
		sessions:   sessions,
		pipeline:   pipeline,
		publisher:  publisher,
		store:      store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts every component and blocks until ctx is done, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if a.pipeline != nil {
		a.pipeline.Start(context.Background())
		a.log.Info("quote fan-out started", applogger.String("topic", a.cfg.Kafka.Topic), applogger.Strings("brokers", a.cfg.Kafka.Brokers))
	}

	if err := a.sessions.Start(); err != nil {
		a.log.Error("session registry start error", applogger.Error(err))
		a.closeInfra()
		return err
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		a.sessions.Stop()
		a.closeInfra()
		return err
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops intake first, then the dashboards feeding the pipeline, then infrastructure.
func (a *App) shutdown() error {
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	a.sessions.Stop()
	a.closeInfra()

	a.log.Info("shutdown complete")
	return nil
}

func (a *App) closeInfra() {
	if a.pipeline != nil {
		a.pipeline.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("kafka publisher close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}
}
