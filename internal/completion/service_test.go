package completion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/GameShelf_Go/internal/catalog"
	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/ownership"
)

const (
	testUserID   = "user-1"
	testGameID   = "game-1"
	testPlatform = "steam"
)

type testEnv struct {
	svc          Service
	ownershipSvc ownership.Service
	logRepo      *FakeLogRepository
	playtimeRepo *FakePlaytimeRepository
}

// newTestEnv wires the service against in-memory repositories and a real
// ownership service seeded with two required DLCs (weights 1 and 3).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalogRepo := catalog.NewFakeRepository()
	catalogRepo.Seed(domain.Addition{
		ID: "ed-standard", GameID: testGameID, Name: "Standard Edition",
		Type: domain.AdditionTypeEdition, Weight: 1,
	})
	catalogRepo.Seed(domain.Addition{
		ID: "dlc-a", GameID: testGameID, Name: "Expansion A",
		Type: domain.AdditionTypeDLC, Weight: 1, RequiredForFull: true,
	})
	catalogRepo.Seed(domain.Addition{
		ID: "dlc-b", GameID: testGameID, Name: "Expansion B",
		Type: domain.AdditionTypeDLC, Weight: 3, RequiredForFull: true,
	})

	catalogSvc := catalog.NewService(catalogRepo)
	ownershipRepo := ownership.NewFakeRepository()
	ownershipSvc := ownership.NewService(catalogSvc, ownershipRepo)

	logRepo := NewFakeLogRepository()
	playtimeRepo := NewFakePlaytimeRepository()

	return &testEnv{
		svc:          NewService(ownershipSvc, catalogSvc, logRepo, playtimeRepo),
		ownershipSvc: ownershipSvc,
		logRepo:      logRepo,
		playtimeRepo: playtimeRepo,
	}
}

func TestRecalculateAppendsOnChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ownershipSvc.SetDLCOwnership(ctx, testUserID, testGameID, testPlatform, []string{"dlc-a"})
	require.NoError(t, err)

	pct, err := env.svc.Recalculate(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 25, pct)

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, 25, page.Entries[0].Percentage)
}

func TestRecalculateSkipsUnchangedPercentage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ownershipSvc.SetDLCOwnership(ctx, testUserID, testGameID, testPlatform, []string{"dlc-b"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pct, err := env.svc.Recalculate(ctx, testUserID, testGameID, testPlatform)
		require.NoError(t, err)
		assert.Equal(t, 75, pct)
	}

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total, "repeated recalculates with no ownership change append once")
}

func TestRecalculateAppendsAgainAfterOwnershipChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ownershipSvc.SetDLCOwnership(ctx, testUserID, testGameID, testPlatform, []string{"dlc-a"})
	require.NoError(t, err)
	_, err = env.svc.Recalculate(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)

	_, err = env.ownershipSvc.SetDLCOwnership(ctx, testUserID, testGameID, testPlatform, []string{"dlc-a", "dlc-b"})
	require.NoError(t, err)

	pct, err := env.svc.Recalculate(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 100, pct)

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	assert.Equal(t, 100, page.Entries[0].Percentage, "newest entry first")
	assert.Equal(t, 25, page.Entries[1].Percentage)
}

func TestRecalculateZeroWithNothingOwned(t *testing.T) {
	env := newTestEnv(t)

	pct, err := env.svc.Recalculate(context.Background(), testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 0, pct)
}

func TestRecalculateUnknownGame(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Recalculate(context.Background(), testUserID, "game-missing", testPlatform)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestAppendLogUnknownGame(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.AppendLog(ctx, testUserID, "game-missing", testPlatform, 40, "")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	_, err = env.svc.ListLog(ctx, testUserID, "game-missing", testPlatform, domain.CompletionLogFilter{})
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestAppendLogAlwaysAppends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		entry, err := env.svc.AppendLog(ctx, testUserID, testGameID, testPlatform, 40, "halfway through act two")
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, 40, entry.Percentage)
	}

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total, "manual entries append even when the value repeats")
}

func TestAppendLogRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, pct := range []int{-1, 101} {
		_, err := env.svc.AppendLog(ctx, testUserID, testGameID, testPlatform, pct, "")
		assert.ErrorIs(t, err, domain.ErrPercentageOutOfRange)
	}

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
}

func TestAppendLogBoundaryValues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, pct := range []int{0, 100} {
		_, err := env.svc.AppendLog(ctx, testUserID, testGameID, testPlatform, pct, "")
		assert.NoError(t, err)
	}
}

func TestListLogClampsLimits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < DefaultLogLimit+5; i++ {
		_, err := env.svc.AppendLog(ctx, testUserID, testGameID, testPlatform, i%101, "")
		require.NoError(t, err)
	}

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Entries, DefaultLogLimit, "zero limit falls back to the default")
	assert.Equal(t, DefaultLogLimit+5, page.Total)

	page, err = env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{Limit: MaxLogLimit + 1000})
	require.NoError(t, err)
	assert.Len(t, page.Entries, DefaultLogLimit+5, "oversized limit is capped, not rejected")

	page, err = env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{Limit: 10, Offset: DefaultLogLimit})
	require.NoError(t, err)
	assert.Len(t, page.Entries, 5)
}

func TestListLogTimeRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, pct := range []int{10, 20, 30} {
		_, err := env.logRepo.Append(ctx, &domain.CompletionLogEntry{
			UserID:     testUserID,
			GameID:     testGameID,
			PlatformID: testPlatform,
			Percentage: pct,
			LoggedAt:   base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	from := base.AddDate(0, 0, 1)
	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, 30, page.Entries[0].Percentage)

	to := base.AddDate(0, 0, 1)
	page, err = env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{From: &base, To: &to})
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, 20, page.Entries[0].Percentage)
}

func TestRecalculateComparesNewestOnTimestampTie(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Two entries landing on the same logged_at. The later append must
	// win the latest-entry lookup, or duplicate suppression compares
	// against stale state.
	tied := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, pct := range []int{25, 100} {
		_, err := env.logRepo.Append(ctx, &domain.CompletionLogEntry{
			UserID:     testUserID,
			GameID:     testGameID,
			PlatformID: testPlatform,
			Percentage: pct,
			LoggedAt:   tied,
		})
		require.NoError(t, err)
	}

	latest, err := env.logRepo.GetLatest(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 100, latest.Percentage)

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, latest.ID, page.Entries[0].ID, "latest entry matches the first page entry")

	// Full ownership recalculates to 100, equal to the newest tied
	// entry, so nothing new is appended
	_, err = env.ownershipSvc.SetDLCOwnership(ctx, testUserID, testGameID, testPlatform, []string{"dlc-a", "dlc-b"})
	require.NoError(t, err)
	pct, err := env.svc.Recalculate(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 100, pct)

	page, err = env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestListLogIncludesPlaytimeAggregate(t *testing.T) {
	env := newTestEnv(t)
	env.playtimeRepo.SeedMinutes(testUserID, testGameID, testPlatform, 345)

	page, err := env.svc.ListLog(context.Background(), testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 345, page.TotalMinutes)
	assert.Equal(t, 0, page.Total)
}

func TestDeleteLogRemovesSingleEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.AppendLog(ctx, testUserID, testGameID, testPlatform, 30, "")
	require.NoError(t, err)
	_, err = env.svc.AppendLog(ctx, testUserID, testGameID, testPlatform, 60, "")
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteLog(ctx, testUserID, testGameID, first.ID))

	page, err := env.svc.ListLog(ctx, testUserID, testGameID, testPlatform, domain.CompletionLogFilter{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, 60, page.Entries[0].Percentage, "remaining entries are untouched")
}

func TestDeleteLogNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.svc.DeleteLog(ctx, testUserID, testGameID, "log-999")
	assert.ErrorIs(t, err, domain.ErrLogEntryNotFound)

	// Another user's entry is invisible to delete
	entry, err := env.svc.AppendLog(ctx, "user-2", testGameID, testPlatform, 50, "")
	require.NoError(t, err)
	err = env.svc.DeleteLog(ctx, testUserID, testGameID, entry.ID)
	assert.ErrorIs(t, err, domain.ErrLogEntryNotFound)
}
