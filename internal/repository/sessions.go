package repository

import (
	"context"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// Sessions defines the interface for play session persistence. Every
// mutating method runs as a single transaction so the session row, the
// progress status transition, and the playtime aggregate can never drift
// apart.
type Sessions interface {
	// CreateActive inserts a new active session and, in the same
	// transaction, auto-transitions the game's progress status from
	// backlog to playing. Returns domain.ErrSessionActive when the
	// user already has an active session for any game (enforced by
	// the partial unique index on user_id WHERE ended_at IS NULL).
	CreateActive(ctx context.Context, session *domain.PlaySession) (*domain.PlaySession, error)

	// CreateEnded inserts a historical session that is already over,
	// applying the playtime delta in the same transaction when the
	// session carries a duration. Bypasses the exclusivity check.
	CreateEnded(ctx context.Context, session *domain.PlaySession) (*domain.PlaySession, error)

	// End closes an active session owned by the user, sets its end
	// time and duration, and applies total_minutes += duration and
	// last_played = endedAt atomically. Returns
	// domain.ErrSessionNotFound when the session does not exist, is
	// not the user's, or already ended.
	End(ctx context.Context, userID, gameID, sessionID string, endedAt time.Time, durationMinutes int) (*domain.PlaySession, error)

	// Delete removes a completed session owned by the user and
	// decrements the playtime aggregate by its duration, floored at
	// zero. Active sessions return domain.ErrSessionStillActive.
	Delete(ctx context.Context, userID, gameID, sessionID string) error

	// GetByID returns the session, or nil when it does not exist or
	// is not owned by the user
	GetByID(ctx context.Context, userID, gameID, sessionID string) (*domain.PlaySession, error)

	// GetActive returns the user's single active session across all
	// games, or nil
	GetActive(ctx context.Context, userID string) (*domain.PlaySession, error)

	// List returns a newest-first page of sessions plus the total count
	List(ctx context.Context, userID, gameID, platformID string, limit, offset int) ([]domain.PlaySession, int, error)
}

// Playtime defines the read side of the playtime aggregate. All writes
// happen inside session transactions as relative deltas.
type Playtime interface {
	// Get returns the aggregate row, or a zero aggregate when the
	// user has never logged time for the triple
	Get(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error)
}
