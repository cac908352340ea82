//go:build wireinject
// +build wireinject

package di

import (
	"EcoBoard/pkg/config"
	"EcoBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Outbound client and cache backend
		ProvideHTTPClient,
		ProvideCacheStore,
		ProvideMemo,

		// Provider adapters
		ProvideRateChain,
		ProvideGoldProvider,
		ProvideStockProvider,
		ProvideNewsProvider,

		// Optional infrastructure
		ProvideClickHouseClient,
		ProvideHistoryStore,
		ProvideEventPublisher,
		ProvideLiveHub,

		// Use case and HTTP surface
		ProvideEconomicUseCase,
		ProvideHandler,

		ProvideApp,
	)
	return &server.App{}, nil
}
