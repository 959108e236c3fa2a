package repository

import (
	"context"
	"database/sql"
	"fmt"
	"quoridor-history/internal/constants"
	"quoridor-history/internal/domain"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SQLiteGameResultRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLiteGameResultRepository(sqlDB *sql.DB, logger zerolog.Logger) *SQLiteGameResultRepository {
	return &SQLiteGameResultRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Create bumps the game_results sequence and inserts the row in the same
// transaction, so a failed insert gives the number back and numbering stays
// dense.
func (r *SQLiteGameResultRepository) Create(ctx context.Context, game *domain.GameResult) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int64
	err = tx.QueryRowContext(ctx,
		`UPDATE sequences SET value = value + 1 WHERE name = ? RETURNING value`,
		constants.GameNumberSequence,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to assign game number: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO game_results (id, game_number, winner_name, game_mode, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, next, game.WinnerName, game.GameMode, game.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit game result: %w", err)
	}

	game.GameNumber = next
	r.logger.Debug().Int64("game_number", next).Str("row_id", id).Msg("game result stored")
	return nil
}

func (r *SQLiteGameResultRepository) List(ctx context.Context, limit int) ([]domain.GameResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT game_number, winner_name, game_mode, created_at FROM game_results ORDER BY game_number DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	result := make([]domain.GameResult, 0)
	for rows.Next() {
		var (
			game      domain.GameResult
			createdAt int64
		)
		if err := rows.Scan(&game.GameNumber, &game.WinnerName, &game.GameMode, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}
		game.CreatedAt = time.UnixMilli(createdAt).UTC()
		result = append(result, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game results: %w", err)
	}

	return result, nil
}

func (r *SQLiteGameResultRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
