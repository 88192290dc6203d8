package repository

import (
	"context"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// Ownership defines the interface for ownership record persistence
type Ownership interface {
	// Get returns the stored record, or nil when the user has never
	// touched ownership for this (game, platform)
	Get(ctx context.Context, userID, gameID, platformID string) (*domain.OwnershipRecord, error)

	// UpsertEdition sets the selected edition id (nil clears it back
	// to the standard edition), creating the record if needed
	UpsertEdition(ctx context.Context, userID, gameID, platformID string, editionID *string) error

	// ReplaceDLCOwnership applies a full-replace of per-DLC owned
	// flags in a single transaction. Every id in owned is set true,
	// every id in unowned is set false; each row write is an
	// idempotent upsert.
	ReplaceDLCOwnership(ctx context.Context, userID, gameID, platformID string, owned, unowned []string) error
}
