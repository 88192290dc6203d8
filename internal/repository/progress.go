package repository

import (
	"context"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// Progress defines the interface for the progress status store
type Progress interface {
	// Get returns the stored status row, or nil when the user has no
	// row for the triple yet
	Get(ctx context.Context, userID, gameID, platformID string) (*domain.ProgressStatus, error)

	// Upsert writes an explicit status change. started_at is only
	// ever filled in (COALESCE), never cleared; moving to a done
	// status stamps completed_at if unset.
	Upsert(ctx context.Context, userID, gameID, platformID string, status domain.GameStatus) (*domain.ProgressStatus, error)
}
