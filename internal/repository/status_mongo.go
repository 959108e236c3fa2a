package repository

import (
	"context"
	"fmt"
	"quoridor-history/internal/constants"
	"quoridor-history/internal/domain"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type statusCheckDocument struct {
	ID         string    `bson:"id"`
	ClientName string    `bson:"client_name"`
	Timestamp  time.Time `bson:"timestamp"`
}

type MongoStatusCheckRepository struct {
	checks *mongo.Collection
	logger zerolog.Logger
}

func NewMongoStatusCheckRepository(db *mongo.Database, logger zerolog.Logger) *MongoStatusCheckRepository {
	return &MongoStatusCheckRepository{
		checks: db.Collection(constants.StatusChecksCollection),
		logger: logger,
	}
}

func (r *MongoStatusCheckRepository) Insert(ctx context.Context, check *domain.StatusCheck) error {
	_, err := r.checks.InsertOne(ctx, statusCheckDocument{
		ID:         check.ID,
		ClientName: check.ClientName,
		Timestamp:  check.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to insert status check: %w", err)
	}
	return nil
}

func (r *MongoStatusCheckRepository) List(ctx context.Context, limit int) ([]domain.StatusCheck, error) {
	cursor, err := r.checks.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}

	var docs []statusCheckDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode status checks: %w", err)
	}

	result := make([]domain.StatusCheck, len(docs))
	for i, d := range docs {
		result[i] = domain.StatusCheck{
			ID:         d.ID,
			ClientName: d.ClientName,
			Timestamp:  d.Timestamp.UTC(),
		}
	}

	r.logger.Debug().Int("count", len(result)).Msg("status checks listed")
	return result, nil
}
