package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// FakeRepository is an in-memory repository.Additions used by unit tests
// in this package and its consumers.
type FakeRepository struct {
	mu        sync.Mutex
	additions map[string]*domain.Addition // keyed by addition ID
	games     map[string]bool

	ListCalls int // number of ListByGame invocations, for cache assertions
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		additions: make(map[string]*domain.Addition),
		games:     make(map[string]bool),
	}
}

// Seed registers an addition, overwriting any previous row with the same
// id. The addition's game is registered along with it.
func (f *FakeRepository) Seed(a domain.Addition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := a
	f.additions[a.ID] = &copied
	f.games[a.GameID] = true
}

// SeedGame registers a game with no additions of its own
func (f *FakeRepository) SeedGame(gameID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[gameID] = true
}

func (f *FakeRepository) GameExists(ctx context.Context, gameID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.games[gameID], nil
}

func (f *FakeRepository) ListByGame(ctx context.Context, gameID string) ([]domain.Addition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++

	var out []domain.Addition
	for _, a := range f.additions {
		if a.GameID == gameID {
			out = append(out, *a)
		}
	}
	// Editions first, then by name, matching the SQL ordering
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Type == domain.AdditionTypeEdition) != (out[j].Type == domain.AdditionTypeEdition) {
			return out[i].Type == domain.AdditionTypeEdition
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *FakeRepository) GetByID(ctx context.Context, additionID string) (*domain.Addition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.additions[additionID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *FakeRepository) UpdateTuning(ctx context.Context, additionID string, weight float64, requiredForFull bool) (*domain.Addition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.additions[additionID]
	if !ok {
		return nil, domain.ErrAdditionNotFound
	}
	a.Weight = weight
	a.RequiredForFull = requiredForFull
	copied := *a
	return &copied, nil
}
