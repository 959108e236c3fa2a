package repository

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"quoridor-history/internal/config"
	"quoridor-history/internal/database"
	"quoridor-history/internal/domain"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.New(cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteGameResult_SequentialNumbers(t *testing.T) {
	repo := NewSQLiteGameResultRepository(openTestDB(t), zerolog.New(io.Discard))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	inputs := []struct{ winner, mode string }{
		{"Alice", domain.GameModeLocal},
		{"Bob", domain.GameModeAI},
		{"Carol", domain.GameModeLocal},
	}
	for i, in := range inputs {
		game := &domain.GameResult{WinnerName: in.winner, GameMode: in.mode, CreatedAt: now}
		if err := repo.Create(ctx, game); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		if game.GameNumber != int64(i+1) {
			t.Errorf("expected game number %d, got %d", i+1, game.GameNumber)
		}
	}

	got, err := repo.List(ctx, 100)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []domain.GameResult{
		{GameNumber: 3, WinnerName: "Carol", GameMode: "local", CreatedAt: now},
		{GameNumber: 2, WinnerName: "Bob", GameMode: "ai", CreatedAt: now},
		{GameNumber: 1, WinnerName: "Alice", GameMode: "local", CreatedAt: now},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteGameResult_ListLimit(t *testing.T) {
	repo := NewSQLiteGameResultRepository(openTestDB(t), zerolog.New(io.Discard))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, &domain.GameResult{WinnerName: "P", GameMode: "ai", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].GameNumber != 5 || got[1].GameNumber != 4 {
		t.Errorf("expected newest games 5 and 4, got %d and %d", got[0].GameNumber, got[1].GameNumber)
	}
}

func TestSQLiteGameResult_EmptyList(t *testing.T) {
	repo := NewSQLiteGameResultRepository(openTestDB(t), zerolog.New(io.Discard))

	got, err := repo.List(context.Background(), 100)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSQLiteGameResult_ConcurrentCreatesAreDense(t *testing.T) {
	repo := NewSQLiteGameResultRepository(openTestDB(t), zerolog.New(io.Discard))
	ctx := context.Background()

	const n = 20
	numbers := make([]int64, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			game := &domain.GameResult{WinnerName: "racer", GameMode: "local", CreatedAt: time.Now()}
			errs[i] = repo.Create(ctx, game)
			numbers[i] = game.GameNumber
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for i, num := range numbers {
		if num != int64(i+1) {
			t.Fatalf("expected dense numbers 1..%d, got %v", n, numbers)
		}
	}
}

func TestSQLiteStatusCheck_InsertionOrder(t *testing.T) {
	repo := NewSQLiteStatusCheckRepository(openTestDB(t), zerolog.New(io.Discard))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	want := []domain.StatusCheck{
		{ID: "b-id", ClientName: "second-alphabetically", Timestamp: now},
		{ID: "a-id", ClientName: "first-alphabetically", Timestamp: now.Add(time.Second)},
	}
	for i := range want {
		if err := repo.Insert(ctx, &want[i]); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	got, err := repo.List(ctx, 1000)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	limited, err := repo.List(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "b-id" {
		t.Errorf("expected only the first inserted check, got %+v", limited)
	}
}

func TestSQLiteStatusCheck_DuplicateIDRejected(t *testing.T) {
	repo := NewSQLiteStatusCheckRepository(openTestDB(t), zerolog.New(io.Discard))
	ctx := context.Background()

	check := &domain.StatusCheck{ID: "same", ClientName: "c", Timestamp: time.Now()}
	if err := repo.Insert(ctx, check); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := repo.Insert(ctx, check); err == nil {
		t.Fatal("expected error on duplicate id")
	}
}
