//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"meetsync/internal"
	"meetsync/internal/broadcast"
	"meetsync/internal/controllers"
	"meetsync/internal/persistence"
	"meetsync/internal/providers"
	"meetsync/internal/services"
	"meetsync/internal/storage"
	"meetsync/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewStore,
		broadcast.NewBroadcaster,
		wire.Bind(new(providers.SubscriptionStatsSource), new(*broadcast.Broadcaster)),
		broadcast.NewPublisher,

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,

		services.NewGroupService,
		services.NewAvailabilityService,
		services.NewInsightService,
		services.NewDemoSeeder,

		controllers.NewGroupController,
		controllers.NewAvailabilityController,
		controllers.NewInsightController,
		controllers.NewWsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
