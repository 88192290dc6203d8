package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// FakeRepository is an in-memory repository.Progress for unit tests. It
// follows the real store's upsert semantics: started_at is only ever
// filled in, and completed_at is stamped on the first move to a done
// status.
type FakeRepository struct {
	mu   sync.Mutex
	rows map[string]*domain.ProgressStatus
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{rows: make(map[string]*domain.ProgressStatus)}
}

// FakeGameVerifier accepts the game ids it was seeded with and rejects
// everything else with domain.ErrGameNotFound.
type FakeGameVerifier struct {
	games map[string]bool
}

func NewFakeGameVerifier(gameIDs ...string) *FakeGameVerifier {
	games := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		games[id] = true
	}
	return &FakeGameVerifier{games: games}
}

func (f *FakeGameVerifier) VerifyGame(ctx context.Context, gameID string) error {
	if !f.games[gameID] {
		return fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}
	return nil
}

func (f *FakeRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.ProgressStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if row, ok := f.rows[userID+"|"+gameID+"|"+platformID]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (f *FakeRepository) Upsert(ctx context.Context, userID, gameID, platformID string, status domain.GameStatus) (*domain.ProgressStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	key := userID + "|" + gameID + "|" + platformID
	row, ok := f.rows[key]
	if !ok {
		row = &domain.ProgressStatus{
			UserID:     userID,
			GameID:     gameID,
			PlatformID: platformID,
		}
		f.rows[key] = row
	}

	row.Status = status
	row.UpdatedAt = now
	if status == domain.StatusPlaying && row.StartedAt == nil {
		t := now
		row.StartedAt = &t
	}
	if status.IsDone() && row.CompletedAt == nil {
		t := now
		row.CompletedAt = &t
	}

	copied := *row
	return &copied, nil
}
