package ownership

import "github.com/mkarlsen/GameShelf_Go/internal/domain"

// ComputeEffective resolves the owned/not-owned state of every DLC after
// applying the complete-edition override. Pure: no store access, no side
// effects.
//
// If the selected edition is flagged complete, every DLC is effectively
// owned and the stored per-DLC flags are preserved but not authoritative.
// Otherwise the stored flag decides, defaulting to false when the user
// has no record. Edition ownership itself is binary: an edition is owned
// iff it is the selected one.
func ComputeEffective(additions []domain.Addition, record *domain.OwnershipRecord) *domain.EffectiveOwnership {
	eff := &domain.EffectiveOwnership{
		OwnedDLCIDs: map[string]bool{},
	}
	if record != nil {
		eff.EditionID = record.EditionID
	}

	if eff.EditionID != nil {
		for i := range additions {
			a := &additions[i]
			if a.ID == *eff.EditionID && a.IsEdition() && a.IsCompleteEdition {
				eff.HasCompleteEdition = true
				break
			}
		}
	}

	for i := range additions {
		a := &additions[i]
		if !a.IsDLC() {
			continue
		}
		if eff.HasCompleteEdition {
			eff.OwnedDLCIDs[a.ID] = true
			continue
		}
		if record != nil && record.OwnedDLCs[a.ID] {
			eff.OwnedDLCIDs[a.ID] = true
		}
	}

	return eff
}
