package repository

import (
	"context"
	"quoridor-history/internal/domain"
)

type StatusCheckStore interface {
	Insert(ctx context.Context, check *domain.StatusCheck) error
	// List returns checks in insertion order.
	List(ctx context.Context, limit int) ([]domain.StatusCheck, error)
}

type GameResultStore interface {
	// Create assigns game.GameNumber atomically and persists the result.
	Create(ctx context.Context, game *domain.GameResult) error
	// List returns results by game number, highest first.
	List(ctx context.Context, limit int) ([]domain.GameResult, error)
	Ping(ctx context.Context) error
}
