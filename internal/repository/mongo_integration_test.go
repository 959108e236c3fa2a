package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"quoridor-history/internal/config"
	"quoridor-history/internal/database"
	"quoridor-history/internal/domain"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

// openTestMongo connects to MONGO_URL and hands out a throwaway database that
// is dropped when the test ends.
func openTestMongo(t *testing.T) *mongo.Database {
	t.Helper()
	godotenv.Load("../../.env")

	url := os.Getenv("MONGO_URL")
	if url == "" {
		t.Skip("MONGO_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := &config.Config{
		MongoURL: url,
		DBName:   fmt.Sprintf("quoridor_test_%d", time.Now().UnixNano()),
	}
	db, err := database.NewMongo(ctx, cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db.Drop(ctx)
		db.Client().Disconnect(ctx)
	})
	return db
}

func TestMongoGameResult_Integration(t *testing.T) {
	db := openTestMongo(t)
	repo := NewMongoGameResultRepository(db, zerolog.New(io.Discard))
	ctx := context.Background()

	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	alice := &domain.GameResult{WinnerName: "Alice", GameMode: "local", CreatedAt: now}
	bob := &domain.GameResult{WinnerName: "Bob", GameMode: "ai", CreatedAt: now}
	for _, g := range []*domain.GameResult{alice, bob} {
		if err := repo.Create(ctx, g); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if alice.GameNumber != 1 || bob.GameNumber != 2 {
		t.Fatalf("expected numbers 1 and 2, got %d and %d", alice.GameNumber, bob.GameNumber)
	}

	got, err := repo.List(ctx, 100)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if diff := cmp.Diff([]domain.GameResult{*bob, *alice}, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestMongoGameResult_InitSeedsFromExistingData(t *testing.T) {
	db := openTestMongo(t)
	ctx := context.Background()

	// rows left by a deployment that numbered games by reading the max
	_, err := db.Collection("game_results").InsertMany(ctx, []any{
		gameResultDocument{GameNumber: 1, WinnerName: "A", GameMode: "local", CreatedAt: time.Now()},
		gameResultDocument{GameNumber: 7, WinnerName: "B", GameMode: "ai", CreatedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	repo := NewMongoGameResultRepository(db, zerolog.New(io.Discard))
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	// second Init must not move the counter back
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	game := &domain.GameResult{WinnerName: "C", GameMode: "local", CreatedAt: time.Now()}
	if err := repo.Create(ctx, game); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if game.GameNumber != 8 {
		t.Errorf("expected game number 8, got %d", game.GameNumber)
	}
}

func TestMongoStatusCheck_Integration(t *testing.T) {
	db := openTestMongo(t)
	repo := NewMongoStatusCheckRepository(db, zerolog.New(io.Discard))
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	checks := []domain.StatusCheck{
		{ID: "1", ClientName: "web", Timestamp: now},
		{ID: "2", ClientName: "mobile", Timestamp: now},
	}
	for i := range checks {
		if err := repo.Insert(ctx, &checks[i]); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	got, err := repo.List(ctx, 1000)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if diff := cmp.Diff(checks, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}
