package fx

import (
	"context"
	"fmt"
	"quoridor-history/internal/config"
	"quoridor-history/internal/database"
	"quoridor-history/internal/logger"
	"quoridor-history/internal/repository"
	"quoridor-history/internal/server"
	"quoridor-history/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Stores struct {
	fx.Out

	StatusChecks repository.StatusCheckStore
	GameResults  repository.GameResultStore
}

// ProvideStores opens the one store client the process shares and ties its
// lifetime to the fx app.
func ProvideStores(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		sqlDB, err := database.New(cfg, logger)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				logger.Info().Msg("closing database")
				return sqlDB.Close()
			},
		})
		return Stores{
			StatusChecks: repository.NewSQLiteStatusCheckRepository(sqlDB, logger),
			GameResults:  repository.NewSQLiteGameResultRepository(sqlDB, logger),
		}, nil

	case config.DriverMongo:
		mongoDB, err := database.NewMongo(context.Background(), cfg, logger)
		if err != nil {
			return Stores{}, err
		}
		games := repository.NewMongoGameResultRepository(mongoDB, logger)
		lc.Append(fx.Hook{
			OnStart: games.Init,
			OnStop: func(ctx context.Context) error {
				logger.Info().Msg("disconnecting from mongo")
				return mongoDB.Client().Disconnect(ctx)
			},
		})
		return Stores{
			StatusChecks: repository.NewMongoStatusCheckRepository(mongoDB, logger),
			GameResults:  games,
		}, nil
	}

	return Stores{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

var Module = fx.Options(
	config.Module,
	logger.Module,
	fx.Provide(ProvideStores),
	// svc
	fx.Provide(service.NewStatusService),
	fx.Provide(service.NewGameService),
	// server
	fx.Provide(server.NewHistoryServer),
)
