package service

import (
	"context"
	"fmt"
	"quoridor-history/internal/constants"
	"quoridor-history/internal/domain"
	"quoridor-history/internal/repository"
	"time"

	"github.com/rs/zerolog"
)

type GameService struct {
	repo   repository.GameResultStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewGameService(repo repository.GameResultStore, logger zerolog.Logger) *GameService {
	return &GameService{repo: repo, logger: logger, now: time.Now}
}

// Create records a finished game. The store assigns the game number.
func (s *GameService) Create(ctx context.Context, winnerName, gameMode string) (*domain.GameResult, error) {
	err := domain.Collect(
		domain.RequireNonEmpty("winner_name", winnerName),
		domain.RequireNonEmpty("game_mode", gameMode),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	game := &domain.GameResult{
		WinnerName: winnerName,
		GameMode:   gameMode,
		CreatedAt:  s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.Create(ctx, game); err != nil {
		s.logger.Error().Err(err).Str("winner_name", winnerName).Str("game_mode", gameMode).Msg("failed to store game result")
		return nil, fmt.Errorf("failed to store game result: %w", err)
	}

	s.logger.Info().
		Int64("game_number", game.GameNumber).
		Str("winner_name", winnerName).
		Str("game_mode", gameMode).
		Msg("game result recorded")
	return game, nil
}

func (s *GameService) List(ctx context.Context) ([]domain.GameResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.repo.List(ctx, constants.GameResultListLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list game results")
		return nil, fmt.Errorf("failed to list game results: %w", err)
	}

	s.logger.Debug().Int("count", len(games)).Msg("game results listed")
	return games, nil
}

func (s *GameService) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Ping(ctx)
}
