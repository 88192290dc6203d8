package catalog

import (
	"context"
	"fmt"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/repository"
)

// Service defines the read-mostly view of the addition catalog. Catalog
// rows are created by the external metadata importer; this service only
// reads them and tunes the two admin-editable fields.
type Service interface {
	VerifyGame(ctx context.Context, gameID string) error
	ListAdditions(ctx context.Context, gameID string) ([]domain.Addition, error)
	GetAddition(ctx context.Context, additionID string) (*domain.Addition, error)
	UpdateTuning(ctx context.Context, additionID string, weight float64, requiredForFull bool) (*domain.Addition, error)
}

type service struct {
	repo  repository.Additions
	cache *additionCache
}

// NewService creates a new catalog service with the default cache sizing
func NewService(repo repository.Additions) Service {
	return &service{
		repo:  repo,
		cache: newAdditionCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// VerifyGame returns domain.ErrGameNotFound when the game is not
// registered. Writes against an unknown game must surface through the
// not-found class rather than as a storage failure.
func (s *service) VerifyGame(ctx context.Context, gameID string) error {
	exists, err := s.repo.GameExists(ctx, gameID)
	if err != nil {
		return fmt.Errorf(ErrMsgVerifyFailed, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}
	return nil
}

// ListAdditions returns every addition known for a game, cached
func (s *service) ListAdditions(ctx context.Context, gameID string) ([]domain.Addition, error) {
	if additions, ok := s.cache.Get(gameID); ok {
		return additions, nil
	}

	additions, err := s.repo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed, err)
	}

	s.cache.Set(gameID, additions)
	return additions, nil
}

// GetAddition returns one addition or domain.ErrAdditionNotFound
func (s *service) GetAddition(ctx context.Context, additionID string) (*domain.Addition, error) {
	addition, err := s.repo.GetByID(ctx, additionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetFailed, err)
	}
	if addition == nil {
		return nil, domain.ErrAdditionNotFound
	}
	return addition, nil
}

// UpdateTuning sets the admin-editable completion fields and invalidates
// the game's cached addition list
func (s *service) UpdateTuning(ctx context.Context, additionID string, weight float64, requiredForFull bool) (*domain.Addition, error) {
	log := logger.FromContext(ctx)

	if weight < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNegativeWeight)
	}

	addition, err := s.repo.UpdateTuning(ctx, additionID, weight, requiredForFull)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgTuneFailed, err)
	}

	s.cache.Invalidate(addition.GameID)

	log.Info(LogMsgTuningUpdated,
		"addition_id", additionID,
		"weight", weight,
		"required_for_full", requiredForFull)

	return addition, nil
}
