package repository

import (
	"context"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// Additions defines the interface for the addition catalog. Rows are
// written by the external metadata importer; this service only reads
// them, plus the two admin-tunable fields.
type Additions interface {
	// GameExists reports whether the game is registered at all
	GameExists(ctx context.Context, gameID string) (bool, error)

	// ListByGame returns every addition registered for a game,
	// editions first, then by name
	ListByGame(ctx context.Context, gameID string) ([]domain.Addition, error)

	// GetByID returns one addition, or nil when unknown
	GetByID(ctx context.Context, additionID string) (*domain.Addition, error)

	// UpdateTuning sets the admin-editable fields (weight,
	// required_for_full) and returns the updated row
	UpdateTuning(ctx context.Context, additionID string, weight float64, requiredForFull bool) (*domain.Addition, error)
}
