package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// Hand-rolled testify mocks for the service interfaces consumed by the
// handlers. Kept in one file so every handler test can share them.

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) VerifyGame(ctx context.Context, gameID string) error {
	args := m.Called(ctx, gameID)
	return args.Error(0)
}

func (m *MockCatalogService) ListAdditions(ctx context.Context, gameID string) ([]domain.Addition, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Addition), args.Error(1)
}

func (m *MockCatalogService) GetAddition(ctx context.Context, additionID string) (*domain.Addition, error) {
	args := m.Called(ctx, additionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Addition), args.Error(1)
}

func (m *MockCatalogService) UpdateTuning(ctx context.Context, additionID string, weight float64, requiredForFull bool) (*domain.Addition, error) {
	args := m.Called(ctx, additionID, weight, requiredForFull)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Addition), args.Error(1)
}

type MockOwnershipService struct {
	mock.Mock
}

func (m *MockOwnershipService) GetOwnership(ctx context.Context, userID, gameID, platformID string) (*domain.OwnershipView, error) {
	args := m.Called(ctx, userID, gameID, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnershipView), args.Error(1)
}

func (m *MockOwnershipService) SetEdition(ctx context.Context, userID, gameID, platformID string, editionID *string) (*domain.OwnershipView, error) {
	args := m.Called(ctx, userID, gameID, platformID, editionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnershipView), args.Error(1)
}

func (m *MockOwnershipService) SetDLCOwnership(ctx context.Context, userID, gameID, platformID string, dlcIDs []string) (*domain.OwnershipView, error) {
	args := m.Called(ctx, userID, gameID, platformID, dlcIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnershipView), args.Error(1)
}

func (m *MockOwnershipService) Resolve(ctx context.Context, userID, gameID, platformID string) ([]domain.Addition, *domain.EffectiveOwnership, error) {
	args := m.Called(ctx, userID, gameID, platformID)
	var additions []domain.Addition
	if args.Get(0) != nil {
		additions = args.Get(0).([]domain.Addition)
	}
	var eff *domain.EffectiveOwnership
	if args.Get(1) != nil {
		eff = args.Get(1).(*domain.EffectiveOwnership)
	}
	return additions, eff, args.Error(2)
}

type MockCompletionService struct {
	mock.Mock
}

func (m *MockCompletionService) Recalculate(ctx context.Context, userID, gameID, platformID string) (int, error) {
	args := m.Called(ctx, userID, gameID, platformID)
	return args.Int(0), args.Error(1)
}

func (m *MockCompletionService) AppendLog(ctx context.Context, userID, gameID, platformID string, percentage int, notes string) (*domain.CompletionLogEntry, error) {
	args := m.Called(ctx, userID, gameID, platformID, percentage, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionLogEntry), args.Error(1)
}

func (m *MockCompletionService) ListLog(ctx context.Context, userID, gameID, platformID string, filter domain.CompletionLogFilter) (*domain.CompletionLogPage, error) {
	args := m.Called(ctx, userID, gameID, platformID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionLogPage), args.Error(1)
}

func (m *MockCompletionService) DeleteLog(ctx context.Context, userID, gameID, entryID string) error {
	args := m.Called(ctx, userID, gameID, entryID)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Start(ctx context.Context, userID, gameID, platformID string, startedAt time.Time) (*domain.PlaySession, error) {
	args := m.Called(ctx, userID, gameID, platformID, startedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaySession), args.Error(1)
}

func (m *MockSessionService) ManualEntry(ctx context.Context, userID, gameID, platformID string, startedAt time.Time, endedAt *time.Time, durationMinutes *int, notes string) (*domain.PlaySession, error) {
	args := m.Called(ctx, userID, gameID, platformID, startedAt, endedAt, durationMinutes, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaySession), args.Error(1)
}

func (m *MockSessionService) End(ctx context.Context, userID, gameID, sessionID string, endedAt time.Time, durationMinutes *int) (*domain.PlaySession, error) {
	args := m.Called(ctx, userID, gameID, sessionID, endedAt, durationMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaySession), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, userID, gameID, sessionID string) error {
	args := m.Called(ctx, userID, gameID, sessionID)
	return args.Error(0)
}

func (m *MockSessionService) GetActive(ctx context.Context, userID string) (*domain.PlaySession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaySession), args.Error(1)
}

func (m *MockSessionService) List(ctx context.Context, userID, gameID, platformID string, limit, offset int) ([]domain.PlaySession, int, error) {
	args := m.Called(ctx, userID, gameID, platformID, limit, offset)
	var sessions []domain.PlaySession
	if args.Get(0) != nil {
		sessions = args.Get(0).([]domain.PlaySession)
	}
	return sessions, args.Int(1), args.Error(2)
}

func (m *MockSessionService) GetPlaytime(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error) {
	args := m.Called(ctx, userID, gameID, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaytimeAggregate), args.Error(1)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Get(ctx context.Context, userID, gameID, platformID string) (*domain.ProgressStatus, error) {
	args := m.Called(ctx, userID, gameID, platformID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressStatus), args.Error(1)
}

func (m *MockProgressService) Set(ctx context.Context, userID, gameID, platformID string, status domain.GameStatus) (*domain.ProgressStatus, error) {
	args := m.Called(ctx, userID, gameID, platformID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressStatus), args.Error(1)
}
