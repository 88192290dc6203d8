package completion

import (
	"math"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// ComputePercentage converts an effective ownership set into a single
// 0-100 completion percentage. Pure: no store access, no side effects.
//
// The denominator is the summed weight of additions flagged
// required_for_full, DLCs only. Editions never enter the weighted sum;
// a complete edition influences the result solely by making every DLC
// effectively owned. Zero required weight means this engine has no
// completion signal and the result is defined as 0.
func ComputePercentage(additions []domain.Addition, eff *domain.EffectiveOwnership) int {
	var total, owned float64

	for i := range additions {
		a := &additions[i]
		if !a.IsDLC() || !a.RequiredForFull {
			continue
		}
		w := a.EffectiveWeight()
		total += w
		if eff.Owned(a.ID) {
			owned += w
		}
	}

	if total == 0 {
		return 0
	}

	pct := int(math.Round(100 * owned / total))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
