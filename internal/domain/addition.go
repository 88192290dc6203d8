package domain

import "time"

// AdditionType classifies a catalog addition
type AdditionType string

const (
	AdditionTypeEdition AdditionType = "edition"
	AdditionTypeDLC     AdditionType = "dlc"
	AdditionTypeOther   AdditionType = "other"
)

// DefaultAdditionWeight is used when the importer supplies no weight
const DefaultAdditionWeight = 1.0

// Addition is a catalog entry for a game: an edition, a DLC, or other
// purchasable content. Rows are created by the external metadata importer;
// this service only reads them, apart from the two admin-tunable fields
// Weight and RequiredForFull.
type Addition struct {
	ID                string       `json:"id"`
	GameID            string       `json:"game_id"`
	Name              string       `json:"name"`
	Type              AdditionType `json:"type"`
	IsCompleteEdition bool         `json:"is_complete_edition"`
	Weight            float64      `json:"weight"`
	RequiredForFull   bool         `json:"required_for_full"`
	ReleaseDate       *time.Time   `json:"release_date,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

// IsEdition reports whether the addition is an edition
func (a *Addition) IsEdition() bool {
	return a.Type == AdditionTypeEdition
}

// IsDLC reports whether the addition is a DLC
func (a *Addition) IsDLC() bool {
	return a.Type == AdditionTypeDLC
}

// EffectiveWeight returns the weight used in completion math. Zero is a
// legitimate weight; only a negative (unset/corrupt) value falls back to
// the default.
func (a *Addition) EffectiveWeight() float64 {
	if a.Weight < 0 {
		return DefaultAdditionWeight
	}
	return a.Weight
}
