package database

import (
	"context"
	"fmt"
	"quoridor-history/internal/config"
	"quoridor-history/internal/constants"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongo builds the shared client for cfg.MongoURL and verifies the server
// answers. The client is safe for concurrent use; callers Disconnect it once
// on shutdown.
func NewMongo(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*mongo.Database, error) {
	logger.Info().Str("db_name", cfg.DBName).Msg("connecting to mongo")

	opts := options.Client().
		ApplyURI(cfg.MongoURL).
		SetConnectTimeout(constants.DatabaseTimeout).
		SetServerSelectionTimeout(constants.DatabaseTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to mongo")
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error().Err(err).Msg("failed to ping mongo")
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info().Msg("mongo connection established")
	return client.Database(cfg.DBName), nil
}
