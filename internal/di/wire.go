//go:build wireinject
// +build wireinject

package di

import (
	"GoldTracker/pkg/config"
	"GoldTracker/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvidePrometheusRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideKafkaPublisher,

		// Middleware and use cases
		ProvideRateLimiter,
		ProvideQuotePipeline,
		ProvideDashboardConfig,
		ProvideSessionRegistry,

		// HTTP
		ProvideTemplateRenderer,
		ProvideDashboardHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
