//go:build wireinject
// +build wireinject

package di

import (
	"GoldPulse/pkg/config"
	"GoldPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,

		// Domain services
		ProvideMarketDataClient,
		ProvideCandleSource,
		ProvideQuoteStream,
		ProvideMacroSource,
		ProvideNewsSource,
		ProvideNarrator,
		ProvideNotifier,

		// Repositories
		ProvideReportStore,
		ProvidePublisher,

		// Use cases
		ProvideRunner,
		ProvideEventsHandler,

		// HTTP and application server
		ProvideAPIHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
