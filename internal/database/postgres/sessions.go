package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

// ActiveSessionConstraint is the partial unique index enforcing at most
// one open session per user, system-wide
const ActiveSessionConstraint = "uq_play_sessions_one_active"

type sessionsRepository struct {
	db *pgxpool.Pool
}

// NewSessionsRepository creates a new PostgreSQL play session repository
func NewSessionsRepository(db *pgxpool.Pool) repository.Sessions {
	return &sessionsRepository{db: db}
}

const sessionColumns = `session_id, user_id, game_id, platform_id,
		started_at, ended_at, duration_minutes, notes, created_at`

func (r *sessionsRepository) CreateActive(ctx context.Context, session *domain.PlaySession) (*domain.PlaySession, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	insert := fmt.Sprintf(`
		INSERT INTO play_sessions (user_id, game_id, platform_id, started_at, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, sessionColumns)

	stored, err := scanSession(tx.QueryRow(ctx, insert,
		session.UserID, session.GameID, session.PlatformID,
		session.StartedAt, emptyToPtr(session.Notes)))
	if err != nil {
		if isUniqueViolation(err, ActiveSessionConstraint) {
			return nil, domain.ErrSessionActive
		}
		return nil, fmt.Errorf("failed to insert play session: %w", err)
	}

	// Auto-transition backlog -> playing inside the same transaction.
	// started_at is COALESCEd so an existing start date is never
	// overwritten; any status other than backlog is left alone.
	transition := `
		INSERT INTO progress_status (user_id, game_id, platform_id, status, started_at, updated_at)
		VALUES ($1, $2, $3, 'playing', $4, NOW())
		ON CONFLICT (user_id, game_id, platform_id)
		DO UPDATE SET
			status = 'playing',
			started_at = COALESCE(progress_status.started_at, EXCLUDED.started_at),
			updated_at = NOW()
		WHERE progress_status.status = 'backlog'
	`
	if _, err := tx.Exec(ctx, transition,
		session.UserID, session.GameID, session.PlatformID, session.StartedAt); err != nil {
		return nil, fmt.Errorf("failed to transition progress status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err, ActiveSessionConstraint) {
			return nil, domain.ErrSessionActive
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return stored, nil
}

func (r *sessionsRepository) CreateEnded(ctx context.Context, session *domain.PlaySession) (*domain.PlaySession, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	insert := fmt.Sprintf(`
		INSERT INTO play_sessions (user_id, game_id, platform_id, started_at, ended_at, duration_minutes, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, sessionColumns)

	stored, err := scanSession(tx.QueryRow(ctx, insert,
		session.UserID, session.GameID, session.PlatformID,
		session.StartedAt, session.EndedAt, session.DurationMinutes,
		emptyToPtr(session.Notes)))
	if err != nil {
		return nil, fmt.Errorf("failed to insert manual play session: %w", err)
	}

	if session.DurationMinutes != nil {
		if err := applyPlaytimeDelta(ctx, tx,
			session.UserID, session.GameID, session.PlatformID,
			*session.DurationMinutes, session.EndedAt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return stored, nil
}

func (r *sessionsRepository) End(ctx context.Context, userID, gameID, sessionID string, endedAt time.Time, durationMinutes int) (*domain.PlaySession, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	// Only an active session owned by the caller can be ended; a
	// missed update is indistinguishable from an unknown session on
	// purpose, so callers cannot enumerate other users' sessions.
	update := fmt.Sprintf(`
		UPDATE play_sessions
		SET ended_at = $4, duration_minutes = $5
		WHERE session_id = $1 AND user_id = $2 AND game_id = $3 AND ended_at IS NULL
		RETURNING %s`, sessionColumns)

	stored, err := scanSession(tx.QueryRow(ctx, update,
		sessionID, userID, gameID, endedAt, durationMinutes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to end play session: %w", err)
	}

	if err := applyPlaytimeDelta(ctx, tx,
		stored.UserID, stored.GameID, stored.PlatformID,
		durationMinutes, &endedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return stored, nil
}

func (r *sessionsRepository) Delete(ctx context.Context, userID, gameID, sessionID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	query := fmt.Sprintf(`
		SELECT %s
		FROM play_sessions
		WHERE session_id = $1 AND user_id = $2 AND game_id = $3
		FOR UPDATE`, sessionColumns)

	session, err := scanSession(tx.QueryRow(ctx, query, sessionID, userID, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("failed to load play session: %w", err)
	}

	// An active session must be ended first; deleting it would
	// silently release the exclusivity lock under a running timer
	if session.IsActive() {
		return domain.ErrSessionStillActive
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM play_sessions WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete play session: %w", err)
	}

	if session.DurationMinutes != nil {
		if err := applyPlaytimeDelta(ctx, tx,
			session.UserID, session.GameID, session.PlatformID,
			-*session.DurationMinutes, nil); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (r *sessionsRepository) GetByID(ctx context.Context, userID, gameID, sessionID string) (*domain.PlaySession, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM play_sessions
		WHERE session_id = $1 AND user_id = $2 AND game_id = $3`, sessionColumns)

	session, err := scanSession(r.db.QueryRow(ctx, query, sessionID, userID, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func (r *sessionsRepository) GetActive(ctx context.Context, userID string) (*domain.PlaySession, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM play_sessions
		WHERE user_id = $1 AND ended_at IS NULL`, sessionColumns)

	session, err := scanSession(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

func (r *sessionsRepository) List(ctx context.Context, userID, gameID, platformID string, limit, offset int) ([]domain.PlaySession, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM play_sessions
		WHERE user_id = $1 AND game_id = $2 AND platform_id = $3
	`
	if err := r.db.QueryRow(ctx, countQuery, userID, gameID, platformID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count play sessions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM play_sessions
		WHERE user_id = $1 AND game_id = $2 AND platform_id = $3
		ORDER BY started_at DESC
		LIMIT $4 OFFSET $5`, sessionColumns)

	rows, err := r.db.Query(ctx, query, userID, gameID, platformID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list play sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.PlaySession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read play sessions: %w", err)
	}

	return sessions, total, nil
}

// applyPlaytimeDelta updates the maintained aggregate as a relative delta
// (total = total + d), floored at zero, never read-then-write-absolute.
// A nil lastPlayed leaves the stored timestamp untouched.
func applyPlaytimeDelta(ctx context.Context, tx pgx.Tx, userID, gameID, platformID string, delta int, lastPlayed *time.Time) error {
	query := `
		INSERT INTO playtime_aggregates (user_id, game_id, platform_id, total_minutes, last_played)
		VALUES ($1, $2, $3, GREATEST(0, $4), $5)
		ON CONFLICT (user_id, game_id, platform_id)
		DO UPDATE SET
			total_minutes = GREATEST(0, playtime_aggregates.total_minutes + $4),
			last_played = COALESCE($5, playtime_aggregates.last_played)
	`
	if _, err := tx.Exec(ctx, query, userID, gameID, platformID, delta, lastPlayed); err != nil {
		return fmt.Errorf("failed to apply playtime delta: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*domain.PlaySession, error) {
	var s domain.PlaySession
	var notes *string
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.GameID,
		&s.PlatformID,
		&s.StartedAt,
		&s.EndedAt,
		&s.DurationMinutes,
		&notes,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan play session: %w", err)
	}
	s.Notes = textOrEmpty(notes)
	return &s, nil
}

type playtimeRepository struct {
	db *pgxpool.Pool
}

// NewPlaytimeRepository creates a new PostgreSQL playtime aggregate reader
func NewPlaytimeRepository(db *pgxpool.Pool) repository.Playtime {
	return &playtimeRepository{db: db}
}

func (r *playtimeRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error) {
	agg := &domain.PlaytimeAggregate{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
	}

	query := `
		SELECT total_minutes, last_played
		FROM playtime_aggregates
		WHERE user_id = $1 AND game_id = $2 AND platform_id = $3
	`
	err := r.db.QueryRow(ctx, query, userID, gameID, platformID).
		Scan(&agg.TotalMinutes, &agg.LastPlayed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agg, nil
		}
		return nil, fmt.Errorf("failed to get playtime aggregate: %w", err)
	}
	return agg, nil
}
