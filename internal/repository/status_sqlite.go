package repository

import (
	"context"
	"database/sql"
	"fmt"
	"quoridor-history/internal/domain"
	"time"

	"github.com/rs/zerolog"
)

type SQLiteStatusCheckRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLiteStatusCheckRepository(sqlDB *sql.DB, logger zerolog.Logger) *SQLiteStatusCheckRepository {
	return &SQLiteStatusCheckRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *SQLiteStatusCheckRepository) Insert(ctx context.Context, check *domain.StatusCheck) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO status_checks (id, client_name, checked_at) VALUES (?, ?, ?)`,
		check.ID, check.ClientName, check.Timestamp.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert status check: %w", err)
	}
	return nil
}

func (r *SQLiteStatusCheckRepository) List(ctx context.Context, limit int) ([]domain.StatusCheck, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_name, checked_at FROM status_checks ORDER BY seq LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}
	defer rows.Close()

	result := make([]domain.StatusCheck, 0)
	for rows.Next() {
		var (
			check     domain.StatusCheck
			checkedAt int64
		)
		if err := rows.Scan(&check.ID, &check.ClientName, &checkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan status check: %w", err)
		}
		check.Timestamp = time.UnixMilli(checkedAt).UTC()
		result = append(result, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status checks: %w", err)
	}

	r.logger.Debug().Int("count", len(result)).Msg("status checks listed")
	return result, nil
}
