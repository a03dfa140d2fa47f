package fx

import (
	"go.uber.org/fx"

	"league-activity/internal/api"
	"league-activity/internal/cache"
	"league-activity/internal/config"
	"league-activity/internal/database"
	"league-activity/internal/dependencies/clock"
	"league-activity/internal/dependencies/random"
	"league-activity/internal/logger"
	"league-activity/internal/repository"
	"league-activity/internal/server"
	"league-activity/internal/service"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// injectable dependencies
	fx.Provide(fx.Annotate(clock.New, fx.As(new(clock.Clock)))),
	fx.Provide(fx.Annotate(random.New, fx.As(new(random.Random)))),
	// repos
	fx.Provide(fx.Annotate(repository.NewAccountRepository, fx.As(new(service.AccountRegistry)))),
	fx.Provide(fx.Annotate(repository.NewActivityHistoryRepository, fx.As(new(service.HistoryRecorder)))),
	// upstream client
	fx.Provide(fx.Annotate(api.NewRiotClient, fx.As(new(service.MatchSource)))),
	// cache
	fx.Provide(cache.New),
	// svc
	fx.Provide(service.NewActivityService),
	// server
	fx.Provide(server.NewActivityServer),
)
