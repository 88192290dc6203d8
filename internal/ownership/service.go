package ownership

import (
	"context"
	"fmt"

	"github.com/mkarlsen/GameShelf_Go/internal/catalog"
	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

// Service defines the interface for ownership resolution
type Service interface {
	// GetOwnership returns the catalog split by type plus the user's
	// resolved ownership state for the triple
	GetOwnership(ctx context.Context, userID, gameID, platformID string) (*domain.OwnershipView, error)

	// SetEdition selects an edition (nil = standard edition) after
	// validating it belongs to the game and really is an edition
	SetEdition(ctx context.Context, userID, gameID, platformID string, editionID *string) (*domain.OwnershipView, error)

	// SetDLCOwnership full-replaces the owned DLC set: every DLC of
	// the game ends up owned iff its id is in dlcIDs
	SetDLCOwnership(ctx context.Context, userID, gameID, platformID string, dlcIDs []string) (*domain.OwnershipView, error)

	// Resolve returns the game's additions and the effective
	// ownership after the complete-edition override. Used by the
	// completion aggregator.
	Resolve(ctx context.Context, userID, gameID, platformID string) ([]domain.Addition, *domain.EffectiveOwnership, error)
}

type service struct {
	catalogSvc catalog.Service
	repo       repository.Ownership
}

// NewService creates a new ownership service
func NewService(catalogSvc catalog.Service, repo repository.Ownership) Service {
	return &service{
		catalogSvc: catalogSvc,
		repo:       repo,
	}
}

func (s *service) GetOwnership(ctx context.Context, userID, gameID, platformID string) (*domain.OwnershipView, error) {
	additions, eff, err := s.Resolve(ctx, userID, gameID, platformID)
	if err != nil {
		return nil, err
	}
	return buildView(additions, eff), nil
}

func (s *service) SetEdition(ctx context.Context, userID, gameID, platformID string, editionID *string) (*domain.OwnershipView, error) {
	log := logger.FromContext(ctx)

	if err := s.catalogSvc.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	if editionID != nil {
		addition, err := s.catalogSvc.GetAddition(ctx, *editionID)
		if err != nil {
			return nil, err
		}
		if addition.GameID != gameID {
			return nil, fmt.Errorf("%w: addition %s does not belong to game %s",
				domain.ErrAdditionNotFound, *editionID, gameID)
		}
		if !addition.IsEdition() {
			return nil, fmt.Errorf("%w: %s is a %s", domain.ErrNotAnEdition, *editionID, addition.Type)
		}
	}

	if err := s.repo.UpsertEdition(ctx, userID, gameID, platformID, editionID); err != nil {
		return nil, fmt.Errorf(ErrMsgSetEditionFailed, err)
	}

	if editionID != nil {
		log.Info(LogMsgEditionSelected, "user_id", userID, "game_id", gameID, "edition_id", *editionID)
	} else {
		log.Info(LogMsgEditionCleared, "user_id", userID, "game_id", gameID)
	}

	return s.GetOwnership(ctx, userID, gameID, platformID)
}

func (s *service) SetDLCOwnership(ctx context.Context, userID, gameID, platformID string, dlcIDs []string) (*domain.OwnershipView, error) {
	log := logger.FromContext(ctx)

	if err := s.catalogSvc.VerifyGame(ctx, gameID); err != nil {
		return nil, err
	}

	additions, err := s.catalogSvc.ListAdditions(ctx, gameID)
	if err != nil {
		return nil, err
	}

	dlcByID := map[string]bool{}
	for i := range additions {
		if additions[i].IsDLC() {
			dlcByID[additions[i].ID] = true
		}
	}

	target := map[string]bool{}
	for _, id := range dlcIDs {
		if !dlcByID[id] {
			// Distinguish a non-DLC addition of this game from an id
			// that is simply unknown here
			if known, lookupErr := s.catalogSvc.GetAddition(ctx, id); lookupErr == nil && known.GameID == gameID {
				return nil, fmt.Errorf("%w: %s is a %s", domain.ErrNotADLC, id, known.Type)
			}
			return nil, fmt.Errorf("%w: dlc %s does not belong to game %s",
				domain.ErrAdditionNotFound, id, gameID)
		}
		target[id] = true
	}

	// Set reconciliation: explicit true for the target set, explicit
	// false for every other DLC of the game, so omitting a previously
	// owned id un-owns it
	owned := make([]string, 0, len(target))
	unowned := make([]string, 0, len(dlcByID))
	for id := range dlcByID {
		if target[id] {
			owned = append(owned, id)
		} else {
			unowned = append(unowned, id)
		}
	}

	if err := s.repo.ReplaceDLCOwnership(ctx, userID, gameID, platformID, owned, unowned); err != nil {
		return nil, fmt.Errorf(ErrMsgSetDLCsFailed, err)
	}

	log.Info(LogMsgDLCSetReplaced,
		"user_id", userID, "game_id", gameID,
		"owned", len(owned), "unowned", len(unowned))

	return s.GetOwnership(ctx, userID, gameID, platformID)
}

func (s *service) Resolve(ctx context.Context, userID, gameID, platformID string) ([]domain.Addition, *domain.EffectiveOwnership, error) {
	if err := s.catalogSvc.VerifyGame(ctx, gameID); err != nil {
		return nil, nil, err
	}

	additions, err := s.catalogSvc.ListAdditions(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	record, err := s.repo.Get(ctx, userID, gameID, platformID)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgResolveFailed, err)
	}

	return additions, ComputeEffective(additions, record), nil
}

func buildView(additions []domain.Addition, eff *domain.EffectiveOwnership) *domain.OwnershipView {
	view := &domain.OwnershipView{
		EditionID:          eff.EditionID,
		Editions:           []domain.Addition{},
		DLCs:               []domain.Addition{},
		OwnedDLCIDs:        []string{},
		HasCompleteEdition: eff.HasCompleteEdition,
	}

	for _, a := range additions {
		switch {
		case a.IsEdition():
			view.Editions = append(view.Editions, a)
		case a.IsDLC():
			view.DLCs = append(view.DLCs, a)
		}
	}
	for _, a := range view.DLCs {
		if eff.Owned(a.ID) {
			view.OwnedDLCIDs = append(view.OwnedDLCIDs, a.ID)
		}
	}

	return view
}
