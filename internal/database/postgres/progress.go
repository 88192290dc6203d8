package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

type progressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new PostgreSQL progress status repository
func NewProgressRepository(db *pgxpool.Pool) repository.Progress {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.ProgressStatus, error) {
	query := `
		SELECT user_id, game_id, platform_id, status, started_at, completed_at, updated_at
		FROM progress_status
		WHERE user_id = $1 AND game_id = $2 AND platform_id = $3
	`

	status, err := scanProgress(r.db.QueryRow(ctx, query, userID, gameID, platformID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return status, nil
}

func (r *progressRepository) Upsert(ctx context.Context, userID, gameID, platformID string, status domain.GameStatus) (*domain.ProgressStatus, error) {
	// started_at is only ever filled in, never cleared; completed_at
	// is stamped on the first move to a done status
	query := `
		INSERT INTO progress_status (user_id, game_id, platform_id, status, started_at, completed_at, updated_at)
		VALUES ($1, $2, $3, $4,
			CASE WHEN $4 = 'playing' THEN NOW() END,
			CASE WHEN $4 IN ('finished', 'completed') THEN NOW() END,
			NOW())
		ON CONFLICT (user_id, game_id, platform_id)
		DO UPDATE SET
			status = EXCLUDED.status,
			started_at = COALESCE(progress_status.started_at, EXCLUDED.started_at),
			completed_at = CASE
				WHEN EXCLUDED.status IN ('finished', 'completed')
					THEN COALESCE(progress_status.completed_at, NOW())
				ELSE progress_status.completed_at
			END,
			updated_at = NOW()
		RETURNING user_id, game_id, platform_id, status, started_at, completed_at, updated_at
	`

	stored, err := scanProgress(r.db.QueryRow(ctx, query, userID, gameID, platformID, string(status)))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert progress status: %w", err)
	}
	return stored, nil
}

func scanProgress(row pgx.Row) (*domain.ProgressStatus, error) {
	var p domain.ProgressStatus
	err := row.Scan(
		&p.UserID,
		&p.GameID,
		&p.PlatformID,
		&p.Status,
		&p.StartedAt,
		&p.CompletedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan progress status: %w", err)
	}
	return &p, nil
}
