package repository

import (
	"context"
	"errors"
	"fmt"
	"quoridor-history/internal/constants"
	"quoridor-history/internal/domain"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type gameResultDocument struct {
	GameNumber int64     `bson:"game_number"`
	WinnerName string    `bson:"winner_name"`
	GameMode   string    `bson:"game_mode"`
	CreatedAt  time.Time `bson:"created_at"`
}

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

type MongoGameResultRepository struct {
	client   *mongo.Client
	games    *mongo.Collection
	counters *mongo.Collection
	logger   zerolog.Logger
}

func NewMongoGameResultRepository(db *mongo.Database, logger zerolog.Logger) *MongoGameResultRepository {
	return &MongoGameResultRepository{
		client:   db.Client(),
		games:    db.Collection(constants.GameResultsCollection),
		counters: db.Collection(constants.CountersCollection),
		logger:   logger,
	}
}

// Init creates the unique game_number index and raises the counter to the
// highest stored game number. Safe to run on every start.
func (r *MongoGameResultRepository) Init(ctx context.Context) error {
	_, err := r.games.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "game_number", Value: -1}},
		Options: options.Index().SetUnique(true).SetName("game_number_unique"),
	})
	if err != nil {
		// duplicates written before the counter existed block the index
		r.logger.Warn().Err(err).Msg("could not create unique game_number index")
	}

	highest, err := r.highestGameNumber(ctx)
	if err != nil {
		return err
	}

	_, err = r.counters.UpdateOne(ctx,
		bson.M{"_id": constants.GameNumberSequence},
		bson.M{"$max": bson.M{"value": highest}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to seed game counter: %w", err)
	}

	r.logger.Info().Int64("highest_game_number", highest).Msg("game counter seeded")
	return nil
}

func (r *MongoGameResultRepository) highestGameNumber(ctx context.Context) (int64, error) {
	var last gameResultDocument
	err := r.games.FindOne(ctx, bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "game_number", Value: -1}}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read highest game number: %w", err)
	}
	return last.GameNumber, nil
}

func (r *MongoGameResultRepository) nextGameNumber(ctx context.Context) (int64, error) {
	var counter counterDocument
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": constants.GameNumberSequence},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to assign game number: %w", err)
	}
	return counter.Value, nil
}

// Create takes the next number from the counter document and inserts the
// result. A failed insert leaves a gap in the numbering, never a duplicate.
func (r *MongoGameResultRepository) Create(ctx context.Context, game *domain.GameResult) error {
	next, err := r.nextGameNumber(ctx)
	if err != nil {
		return err
	}

	_, err = r.games.InsertOne(ctx, gameResultDocument{
		GameNumber: next,
		WinnerName: game.WinnerName,
		GameMode:   game.GameMode,
		CreatedAt:  game.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		r.logger.Error().Err(err).Int64("game_number", next).Msg("game number already taken, counter is behind stored data")
	}
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	game.GameNumber = next
	return nil
}

func (r *MongoGameResultRepository) List(ctx context.Context, limit int) ([]domain.GameResult, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "game_number", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.games.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}

	var docs []gameResultDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode game results: %w", err)
	}

	result := make([]domain.GameResult, len(docs))
	for i, d := range docs {
		result[i] = domain.GameResult{
			GameNumber: d.GameNumber,
			WinnerName: d.WinnerName,
			GameMode:   d.GameMode,
			CreatedAt:  d.CreatedAt.UTC(),
		}
	}
	return result, nil
}

func (r *MongoGameResultRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
