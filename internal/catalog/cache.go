package catalog

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// additionCache provides an in-memory LRU cache for per-game addition
// lists. The catalog is read on every ownership and completion call but
// only changes when the importer runs or an admin tunes a weight, so a
// short TTL read-through cache takes most of the load off the store.
type additionCache struct {
	lru *expirable.LRU[string, []domain.Addition]
}

// newAdditionCache creates a cache holding up to size game entries for ttl
func newAdditionCache(size int, ttl time.Duration) *additionCache {
	return &additionCache{
		lru: expirable.NewLRU[string, []domain.Addition](size, nil, ttl),
	}
}

// Get returns the cached addition list for a game, if present
func (c *additionCache) Get(gameID string) ([]domain.Addition, bool) {
	return c.lru.Get(gameID)
}

// Set stores the addition list for a game
func (c *additionCache) Set(gameID string, additions []domain.Addition) {
	c.lru.Add(gameID, additions)
}

// Invalidate drops the cached list for a game. Called after admin tuning
// so the next read sees the new weights.
func (c *additionCache) Invalidate(gameID string) {
	c.lru.Remove(gameID)
}

// Purge drops every cached entry
func (c *additionCache) Purge() {
	c.lru.Purge()
}
