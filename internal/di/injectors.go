//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"prayerd/internal"
	"prayerd/internal/clients"
	"prayerd/internal/controllers"
	"prayerd/internal/persistence"
	"prayerd/internal/providers"
	"prayerd/internal/services"
	"prayerd/internal/storage"
	"prayerd/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,
	providers.NewClockProvider,
	storage.NewStoreProvider,

	clients.NewHTTPClient,
	clients.NewPrayerTimesClient,
	clients.NewGeocodingClient,
	clients.NewIPGeoClient,

	services.NewPrayerService,
	services.NewLocationService,

	persistence.NewZstdCompressor,
	persistence.NewFileManager,
	persistence.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitResolver(cfg *structures.CliFlags) (*internal.Resolver, error) {

	wire.Build(
		coreSet,
		internal.NewResolver,
	)

	return nil, nil
}
