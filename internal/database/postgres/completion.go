package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

type completionLogRepository struct {
	db *pgxpool.Pool
}

// NewCompletionLogRepository creates a new PostgreSQL completion log repository
func NewCompletionLogRepository(db *pgxpool.Pool) repository.CompletionLog {
	return &completionLogRepository{db: db}
}

func (r *completionLogRepository) Append(ctx context.Context, entry *domain.CompletionLogEntry) (*domain.CompletionLogEntry, error) {
	query := `
		INSERT INTO completion_log (user_id, game_id, platform_id, percentage, logged_at, notes)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()), $6)
		RETURNING entry_id, logged_at
	`

	var loggedAt any
	if !entry.LoggedAt.IsZero() {
		loggedAt = entry.LoggedAt
	}

	stored := *entry
	err := r.db.QueryRow(ctx, query,
		entry.UserID, entry.GameID, entry.PlatformID,
		entry.Percentage, loggedAt, emptyToPtr(entry.Notes),
	).Scan(&stored.ID, &stored.LoggedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append completion log entry: %w", err)
	}
	return &stored, nil
}

func (r *completionLogRepository) GetLatest(ctx context.Context, userID, gameID, platformID string) (*domain.CompletionLogEntry, error) {
	query := `
		SELECT entry_id, user_id, game_id, platform_id, percentage, logged_at, notes
		FROM completion_log
		WHERE user_id = $1 AND game_id = $2 AND platform_id = $3
		ORDER BY logged_at DESC, entry_id DESC
		LIMIT 1
	`

	entry, err := scanLogEntry(r.db.QueryRow(ctx, query, userID, gameID, platformID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r *completionLogRepository) List(ctx context.Context, userID, gameID, platformID string, filter domain.CompletionLogFilter) ([]domain.CompletionLogEntry, int, error) {
	var where strings.Builder
	where.WriteString(`WHERE user_id = $1 AND game_id = $2 AND platform_id = $3`)

	args := []any{userID, gameID, platformID}
	argNum := 4

	if filter.From != nil {
		fmt.Fprintf(&where, " AND logged_at >= $%d", argNum)
		args = append(args, *filter.From)
		argNum++
	}
	if filter.To != nil {
		fmt.Fprintf(&where, " AND logged_at <= $%d", argNum)
		args = append(args, *filter.To)
		argNum++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM completion_log " + where.String()
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count completion log entries: %w", err)
	}

	var query strings.Builder
	query.WriteString(`SELECT entry_id, user_id, game_id, platform_id, percentage, logged_at, notes
		FROM completion_log `)
	query.WriteString(where.String())
	// The entry_id tiebreaker keeps the ordering stable when two
	// entries share a logged_at, and keeps GetLatest agreeing with the
	// first page entry
	query.WriteString(" ORDER BY logged_at DESC, entry_id DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&query, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Offset > 0 {
		fmt.Fprintf(&query, " OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list completion log entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.CompletionLogEntry{}
	for rows.Next() {
		entry, err := scanLogEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read completion log entries: %w", err)
	}

	return entries, total, nil
}

func (r *completionLogRepository) Delete(ctx context.Context, userID, gameID, entryID string) error {
	query := `
		DELETE FROM completion_log
		WHERE entry_id = $1 AND user_id = $2 AND game_id = $3
	`
	tag, err := r.db.Exec(ctx, query, entryID, userID, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete completion log entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLogEntryNotFound
	}
	return nil
}

func scanLogEntry(row pgx.Row) (*domain.CompletionLogEntry, error) {
	var entry domain.CompletionLogEntry
	var notes *string
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.GameID,
		&entry.PlatformID,
		&entry.Percentage,
		&entry.LoggedAt,
		&notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan completion log entry: %w", err)
	}
	entry.Notes = textOrEmpty(notes)
	return &entry, nil
}
