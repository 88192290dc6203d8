package ownership

import (
	"context"
	"sync"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// FakeRepository is an in-memory repository.Ownership for unit tests in
// this package and its consumers.
type FakeRepository struct {
	mu      sync.Mutex
	records map[string]*domain.OwnershipRecord // keyed by user|game|platform

	ReplaceCalls int // number of ReplaceDLCOwnership invocations
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		records: make(map[string]*domain.OwnershipRecord),
	}
}

func key(userID, gameID, platformID string) string {
	return userID + "|" + gameID + "|" + platformID
}

func (f *FakeRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.OwnershipRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[key(userID, gameID, platformID)]
	if !ok {
		return nil, nil
	}
	copied := *record
	copied.OwnedDLCs = make(map[string]bool, len(record.OwnedDLCs))
	for id, owned := range record.OwnedDLCs {
		copied.OwnedDLCs[id] = owned
	}
	return &copied, nil
}

func (f *FakeRepository) UpsertEdition(ctx context.Context, userID, gameID, platformID string, editionID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := f.ensure(userID, gameID, platformID)
	record.EditionID = editionID
	record.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *FakeRepository) ReplaceDLCOwnership(ctx context.Context, userID, gameID, platformID string, owned, unowned []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ReplaceCalls++
	record := f.ensure(userID, gameID, platformID)
	for _, id := range owned {
		record.OwnedDLCs[id] = true
	}
	for _, id := range unowned {
		record.OwnedDLCs[id] = false
	}
	record.UpdatedAt = time.Now().UTC()
	return nil
}

// ensure returns the stored record, creating it lazily. Caller must hold
// the mutex.
func (f *FakeRepository) ensure(userID, gameID, platformID string) *domain.OwnershipRecord {
	k := key(userID, gameID, platformID)
	record, ok := f.records[k]
	if !ok {
		record = &domain.OwnershipRecord{
			UserID:     userID,
			GameID:     gameID,
			PlatformID: platformID,
			OwnedDLCs:  make(map[string]bool),
		}
		f.records[k] = record
	}
	return record
}
