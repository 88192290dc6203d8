package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

// GameVerifier reports whether a game id is registered in the catalog.
// Satisfied by catalog.Service.
type GameVerifier interface {
	VerifyGame(ctx context.Context, gameID string) error
}

// Service defines the thin upsert-only progress status store. The
// backlog->playing auto-transition itself happens inside the session
// start transaction; this surface covers reads and explicit changes.
type Service interface {
	// Get returns the stored status, or an implicit backlog row when
	// the user has never touched the game
	Get(ctx context.Context, userID, gameID, platformID string) (*domain.ProgressStatus, error)

	// Set applies an explicit user-driven status change
	Set(ctx context.Context, userID, gameID, platformID string, status domain.GameStatus) (*domain.ProgressStatus, error)
}

type service struct {
	repo  repository.Progress
	games GameVerifier
}

// NewService creates a new progress status service
func NewService(repo repository.Progress, games GameVerifier) Service {
	return &service{repo: repo, games: games}
}

func (s *service) Get(ctx context.Context, userID, gameID, platformID string) (*domain.ProgressStatus, error) {
	// The implicit backlog row only exists for games that exist
	if err := s.games.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	status, err := s.repo.Get(ctx, userID, gameID, platformID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress status: %w", err)
	}
	if status == nil {
		// No row means the game has never been started
		return &domain.ProgressStatus{
			UserID:     userID,
			GameID:     gameID,
			PlatformID: platformID,
			Status:     domain.StatusBacklog,
			UpdatedAt:  time.Time{},
		}, nil
	}
	return status, nil
}

func (s *service) Set(ctx context.Context, userID, gameID, platformID string, status domain.GameStatus) (*domain.ProgressStatus, error) {
	log := logger.FromContext(ctx)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := s.games.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	stored, err := s.repo.Upsert(ctx, userID, gameID, platformID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set progress status: %w", err)
	}

	log.Info("Progress status changed",
		"user_id", userID, "game_id", gameID, "status", status)

	return stored, nil
}
