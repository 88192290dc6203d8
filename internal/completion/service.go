package completion

import (
	"context"
	"fmt"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/metrics"
	"github.com/mkarlsen/GameShelf_Go/internal/ownership"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

// GameVerifier reports whether a game id is registered in the catalog.
// Satisfied by catalog.Service.
type GameVerifier interface {
	VerifyGame(ctx context.Context, gameID string) error
}

// Service defines the interface for completion aggregation
type Service interface {
	// Recalculate recomputes the percentage from current effective
	// ownership and appends a log entry only when the value differs
	// from the most recent logged one
	Recalculate(ctx context.Context, userID, gameID, platformID string) (int, error)

	// AppendLog records an explicit user-driven percentage entry.
	// Always appends: each manual log is a real event.
	AppendLog(ctx context.Context, userID, gameID, platformID string, percentage int, notes string) (*domain.CompletionLogEntry, error)

	// ListLog returns a newest-first page plus the total count and
	// the triple's running playtime total
	ListLog(ctx context.Context, userID, gameID, platformID string, filter domain.CompletionLogFilter) (*domain.CompletionLogPage, error)

	// DeleteLog removes one entry; other entries are never recomputed
	DeleteLog(ctx context.Context, userID, gameID, entryID string) error
}

type service struct {
	ownershipSvc ownership.Service
	games        GameVerifier
	logRepo      repository.CompletionLog
	playtimeRepo repository.Playtime
}

// NewService creates a new completion service
func NewService(ownershipSvc ownership.Service, games GameVerifier, logRepo repository.CompletionLog, playtimeRepo repository.Playtime) Service {
	return &service{
		ownershipSvc: ownershipSvc,
		games:        games,
		logRepo:      logRepo,
		playtimeRepo: playtimeRepo,
	}
}

func (s *service) Recalculate(ctx context.Context, userID, gameID, platformID string) (int, error) {
	log := logger.FromContext(ctx)

	additions, eff, err := s.ownershipSvc.Resolve(ctx, userID, gameID, platformID)
	if err != nil {
		return 0, err
	}

	percentage := ComputePercentage(additions, eff)
	metrics.CompletionRecalculations.Inc()

	latest, err := s.logRepo.GetLatest(ctx, userID, gameID, platformID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRecalculateFailed, err)
	}

	// Unchanged percentage appends nothing, preventing duplicate log
	// spam from repeated recalculate calls
	if latest != nil && latest.Percentage == percentage {
		return percentage, nil
	}

	entry := &domain.CompletionLogEntry{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
		Percentage: percentage,
	}
	if _, err := s.logRepo.Append(ctx, entry); err != nil {
		return 0, fmt.Errorf(ErrMsgRecalculateFailed, err)
	}

	log.Info(LogMsgRecalculated,
		"user_id", userID, "game_id", gameID, "percentage", percentage)

	return percentage, nil
}

func (s *service) AppendLog(ctx context.Context, userID, gameID, platformID string, percentage int, notes string) (*domain.CompletionLogEntry, error) {
	log := logger.FromContext(ctx)

	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrPercentageOutOfRange, percentage)
	}
	if err := s.games.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	entry := &domain.CompletionLogEntry{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
		Percentage: percentage,
		Notes:      notes,
	}
	stored, err := s.logRepo.Append(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgAppendFailed, err)
	}

	log.Info(LogMsgProgressLogged,
		"user_id", userID, "game_id", gameID, "percentage", percentage)

	return stored, nil
}

func (s *service) ListLog(ctx context.Context, userID, gameID, platformID string, filter domain.CompletionLogFilter) (*domain.CompletionLogPage, error) {
	if err := s.games.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultLogLimit
	}
	if filter.Limit > MaxLogLimit {
		filter.Limit = MaxLogLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, total, err := s.logRepo.List(ctx, userID, gameID, platformID, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed, err)
	}

	// The playtime total comes from the maintained aggregate, never
	// from summing sessions at read time
	agg, err := s.playtimeRepo.Get(ctx, userID, gameID, platformID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed, err)
	}

	return &domain.CompletionLogPage{
		Entries:      entries,
		Total:        total,
		TotalMinutes: agg.TotalMinutes,
	}, nil
}

func (s *service) DeleteLog(ctx context.Context, userID, gameID, entryID string) error {
	log := logger.FromContext(ctx)

	if err := s.logRepo.Delete(ctx, userID, gameID, entryID); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return fmt.Errorf(ErrMsgDeleteFailed, err)
	}

	log.Info(LogMsgEntryDeleted, "user_id", userID, "entry_id", entryID)
	return nil
}
