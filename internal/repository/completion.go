package repository

import (
	"context"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// CompletionLog defines the interface for the append-only completion
// percentage log
type CompletionLog interface {
	// Append inserts a new entry and returns it with its generated id
	Append(ctx context.Context, entry *domain.CompletionLogEntry) (*domain.CompletionLogEntry, error)

	// GetLatest returns the most recent entry for the triple, or nil
	// when none exists
	GetLatest(ctx context.Context, userID, gameID, platformID string) (*domain.CompletionLogEntry, error)

	// List returns a newest-first page plus the total matching count
	List(ctx context.Context, userID, gameID, platformID string, filter domain.CompletionLogFilter) ([]domain.CompletionLogEntry, int, error)

	// Delete removes a single entry owned by the user; returns
	// domain.ErrLogEntryNotFound when no such row exists
	Delete(ctx context.Context, userID, gameID, entryID string) error
}
