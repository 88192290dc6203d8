package completion

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// FakeLogRepository is an in-memory repository.CompletionLog for unit
// tests in this package.
type FakeLogRepository struct {
	mu      sync.Mutex
	entries []domain.CompletionLogEntry
	nextID  int
}

func NewFakeLogRepository() *FakeLogRepository {
	return &FakeLogRepository{}
}

func (f *FakeLogRepository) Append(ctx context.Context, entry *domain.CompletionLogEntry) (*domain.CompletionLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	stored := *entry
	stored.ID = fmt.Sprintf("log-%d", f.nextID)
	if stored.LoggedAt.IsZero() {
		// Strictly increasing so GetLatest is deterministic even when
		// appends land within the same clock tick
		stored.LoggedAt = time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond)
	}
	f.entries = append(f.entries, stored)
	return &stored, nil
}

func (f *FakeLogRepository) GetLatest(ctx context.Context, userID, gameID, platformID string) (*domain.CompletionLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := f.match(userID, gameID, platformID, domain.CompletionLogFilter{})
	if len(matches) == 0 {
		return nil, nil
	}
	latest := matches[0]
	return &latest, nil
}

func (f *FakeLogRepository) List(ctx context.Context, userID, gameID, platformID string, filter domain.CompletionLogFilter) ([]domain.CompletionLogEntry, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := f.match(userID, gameID, platformID, filter)
	total := len(matches)

	if filter.Offset >= len(matches) {
		return []domain.CompletionLogEntry{}, total, nil
	}
	matches = matches[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, total, nil
}

func (f *FakeLogRepository) Delete(ctx context.Context, userID, gameID, entryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, e := range f.entries {
		if e.ID == entryID && e.UserID == userID && e.GameID == gameID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrLogEntryNotFound
}

// match returns the triple's entries newest first. Entries sharing a
// logged_at resolve to the most recently appended one, mirroring the
// secondary sort key in SQL. Caller must hold the mutex.
func (f *FakeLogRepository) match(userID, gameID, platformID string, filter domain.CompletionLogFilter) []domain.CompletionLogEntry {
	var out []domain.CompletionLogEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.UserID != userID || e.GameID != gameID || e.PlatformID != platformID {
			continue
		}
		if filter.From != nil && e.LoggedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.LoggedAt.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoggedAt.After(out[j].LoggedAt)
	})
	return out
}

// FakePlaytimeRepository is an in-memory repository.Playtime returning
// seeded aggregates.
type FakePlaytimeRepository struct {
	mu         sync.Mutex
	aggregates map[string]*domain.PlaytimeAggregate
}

func NewFakePlaytimeRepository() *FakePlaytimeRepository {
	return &FakePlaytimeRepository{
		aggregates: make(map[string]*domain.PlaytimeAggregate),
	}
}

// SeedMinutes sets the stored total for a triple
func (f *FakePlaytimeRepository) SeedMinutes(userID, gameID, platformID string, minutes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggregates[userID+"|"+gameID+"|"+platformID] = &domain.PlaytimeAggregate{
		UserID:       userID,
		GameID:       gameID,
		PlatformID:   platformID,
		TotalMinutes: minutes,
	}
}

func (f *FakePlaytimeRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if agg, ok := f.aggregates[userID+"|"+gameID+"|"+platformID]; ok {
		copied := *agg
		return &copied, nil
	}
	return &domain.PlaytimeAggregate{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
	}, nil
}
