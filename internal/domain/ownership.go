package domain

import "time"

// OwnershipRecord captures what a user owns for a (game, platform) pair:
// the selected edition (nil means the standard edition) and per-DLC owned
// flags. Created lazily on first write.
type OwnershipRecord struct {
	UserID     string          `json:"user_id"`
	GameID     string          `json:"game_id"`
	PlatformID string          `json:"platform_id"`
	EditionID  *string         `json:"edition_id"`
	OwnedDLCs  map[string]bool `json:"owned_dlcs"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EffectiveOwnership is the resolved owned/not-owned view after applying
// the complete-edition override. It is derived, never stored.
type EffectiveOwnership struct {
	EditionID          *string
	HasCompleteEdition bool
	OwnedDLCIDs        map[string]bool
}

// Owned reports whether the given DLC id is effectively owned
func (e *EffectiveOwnership) Owned(additionID string) bool {
	if e.HasCompleteEdition {
		return true
	}
	return e.OwnedDLCIDs[additionID]
}

// OwnershipView is the read-side response for a (user, game, platform)
// triple: the catalog split by type plus the resolved ownership state.
type OwnershipView struct {
	EditionID          *string    `json:"edition_id"`
	Editions           []Addition `json:"editions"`
	DLCs               []Addition `json:"dlcs"`
	OwnedDLCIDs        []string   `json:"owned_dlc_ids"`
	HasCompleteEdition bool       `json:"has_complete_edition"`
}
