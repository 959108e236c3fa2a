package service

import (
	"context"
	"fmt"
	"quoridor-history/internal/constants"
	"quoridor-history/internal/domain"
	"quoridor-history/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type StatusService struct {
	repo   repository.StatusCheckStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewStatusService(repo repository.StatusCheckStore, logger zerolog.Logger) *StatusService {
	return &StatusService{repo: repo, logger: logger, now: time.Now}
}

func (s *StatusService) Create(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	if err := domain.Collect(domain.RequireNonEmpty("client_name", clientName)); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	check := &domain.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Timestamp:  s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.Insert(ctx, check); err != nil {
		s.logger.Error().Err(err).Str("client_name", clientName).Msg("failed to store status check")
		return nil, fmt.Errorf("failed to store status check: %w", err)
	}

	s.logger.Info().Str("id", check.ID).Str("client_name", clientName).Msg("status check recorded")
	return check, nil
}

func (s *StatusService) List(ctx context.Context) ([]domain.StatusCheck, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	checks, err := s.repo.List(ctx, constants.StatusCheckListLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list status checks")
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	return checks, nil
}
