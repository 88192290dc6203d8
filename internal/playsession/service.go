package playsession

import (
	"context"
	"fmt"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/metrics"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

// GameVerifier reports whether a game id is registered in the catalog.
// Satisfied by catalog.Service.
type GameVerifier interface {
	VerifyGame(ctx context.Context, gameID string) error
}

// Service defines the interface for the play session state machine.
// Sessions are Active (no end time) until ended, then immutable; at most
// one active session exists per user across all games.
type Service interface {
	// Start opens a new active session. Returns
	// domain.ErrSessionActive when the user already has one running
	// for any game.
	Start(ctx context.Context, userID, gameID, platformID string, startedAt time.Time) (*domain.PlaySession, error)

	// ManualEntry backfills a historical session that is already
	// over; the exclusivity check does not apply
	ManualEntry(ctx context.Context, userID, gameID, platformID string, startedAt time.Time, endedAt *time.Time, durationMinutes *int, notes string) (*domain.PlaySession, error)

	// End closes the user's active session and credits its duration
	// to the playtime aggregate
	End(ctx context.Context, userID, gameID, sessionID string, endedAt time.Time, durationMinutes *int) (*domain.PlaySession, error)

	// Delete removes a completed session and debits its duration
	// from the aggregate, floored at zero
	Delete(ctx context.Context, userID, gameID, sessionID string) error

	// GetActive returns the user's single active session, or nil
	GetActive(ctx context.Context, userID string) (*domain.PlaySession, error)

	// List returns a newest-first page of sessions for the triple
	List(ctx context.Context, userID, gameID, platformID string, limit, offset int) ([]domain.PlaySession, int, error)

	// GetPlaytime returns the maintained playtime aggregate
	GetPlaytime(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error)
}

type service struct {
	repo         repository.Sessions
	playtimeRepo repository.Playtime
	games        GameVerifier
}

// NewService creates a new play session service
func NewService(repo repository.Sessions, playtimeRepo repository.Playtime, games GameVerifier) Service {
	return &service{
		repo:         repo,
		playtimeRepo: playtimeRepo,
		games:        games,
	}
}

func (s *service) Start(ctx context.Context, userID, gameID, platformID string, startedAt time.Time) (*domain.PlaySession, error) {
	log := logger.FromContext(ctx)

	if err := s.games.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}

	session := &domain.PlaySession{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
		StartedAt:  startedAt,
	}

	// Exclusivity, the backlog->playing transition, and the insert
	// are one transaction in the repository; two concurrent starts
	// race on the store's partial unique index and the loser gets
	// ErrSessionActive
	stored, err := s.repo.CreateActive(ctx, session)
	if err != nil {
		if domain.IsConflict(err) {
			metrics.SessionConflicts.Inc()
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgStartFailed, err)
	}

	metrics.SessionsStarted.Inc()
	log.Info(LogMsgSessionStarted,
		"user_id", userID, "game_id", gameID, "session_id", stored.ID)

	return stored, nil
}

func (s *service) ManualEntry(ctx context.Context, userID, gameID, platformID string, startedAt time.Time, endedAt *time.Time, durationMinutes *int, notes string) (*domain.PlaySession, error) {
	log := logger.FromContext(ctx)

	if endedAt == nil && durationMinutes == nil {
		return nil, fmt.Errorf("%w: manual entry needs an end time or a duration", domain.ErrInvalidInput)
	}
	if err := s.games.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	duration := durationMinutes
	if duration == nil && endedAt != nil {
		d := domain.DeriveDurationMinutes(startedAt, *endedAt)
		duration = &d
	}

	// Accepted as computed: a non-positive duration is a data-quality
	// warning for the caller, not an error
	if duration != nil && *duration <= 0 {
		log.Warn(LogMsgNonPositiveMinutes,
			"user_id", userID, "game_id", gameID, "duration_minutes", *duration)
	}

	ended := endedAt
	if ended == nil {
		// Duration-only backfill still has to land in Ended state
		t := startedAt
		if duration != nil {
			t = startedAt.Add(time.Duration(*duration) * time.Minute)
		}
		ended = &t
	}

	session := &domain.PlaySession{
		UserID:          userID,
		GameID:          gameID,
		PlatformID:      platformID,
		StartedAt:       startedAt,
		EndedAt:         ended,
		DurationMinutes: duration,
		Notes:           notes,
	}

	stored, err := s.repo.CreateEnded(ctx, session)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgManualFailed, err)
	}

	log.Info(LogMsgManualSessionAdded,
		"user_id", userID, "game_id", gameID, "session_id", stored.ID)

	return stored, nil
}

func (s *service) End(ctx context.Context, userID, gameID, sessionID string, endedAt time.Time, durationMinutes *int) (*domain.PlaySession, error) {
	log := logger.FromContext(ctx)

	if endedAt.IsZero() {
		endedAt = time.Now().UTC()
	}

	duration := 0
	if durationMinutes != nil {
		duration = *durationMinutes
	} else {
		current, err := s.repo.GetByID(ctx, userID, gameID, sessionID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgEndFailed, err)
		}
		if current == nil {
			return nil, domain.ErrSessionNotFound
		}
		duration = domain.DeriveDurationMinutes(current.StartedAt, endedAt)
	}

	stored, err := s.repo.End(ctx, userID, gameID, sessionID, endedAt, duration)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgEndFailed, err)
	}

	metrics.SessionsEnded.Inc()
	log.Info(LogMsgSessionEnded,
		"user_id", userID, "game_id", gameID,
		"session_id", sessionID, "duration_minutes", duration)

	return stored, nil
}

func (s *service) Delete(ctx context.Context, userID, gameID, sessionID string) error {
	log := logger.FromContext(ctx)

	if err := s.repo.Delete(ctx, userID, gameID, sessionID); err != nil {
		if domain.IsNotFound(err) || domain.IsConflict(err) {
			return err
		}
		return fmt.Errorf(ErrMsgDeleteFailed, err)
	}

	log.Info(LogMsgSessionDeleted,
		"user_id", userID, "game_id", gameID, "session_id", sessionID)
	return nil
}

func (s *service) GetActive(ctx context.Context, userID string) (*domain.PlaySession, error) {
	session, err := s.repo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgActiveFailed, err)
	}
	return session, nil
}

func (s *service) List(ctx context.Context, userID, gameID, platformID string, limit, offset int) ([]domain.PlaySession, int, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	sessions, total, err := s.repo.List(ctx, userID, gameID, platformID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf(ErrMsgListFailed, err)
	}
	return sessions, total, nil
}

func (s *service) GetPlaytime(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error) {
	return s.playtimeRepo.Get(ctx, userID, gameID, platformID)
}
