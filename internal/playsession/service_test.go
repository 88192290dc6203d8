package playsession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

const (
	testUserID   = "user-1"
	testGameID   = "game-1"
	testPlatform = "steam"
)

func newTestService(t *testing.T) (Service, *FakeRepository) {
	t.Helper()
	repo := NewFakeRepository()
	games := NewFakeGameVerifier(testGameID, "game-2")
	return NewService(repo, repo, games), repo
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }

func TestStartDefaultsToNow(t *testing.T) {
	svc, _ := newTestService(t)

	before := time.Now().UTC()
	session, err := svc.Start(context.Background(), testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.True(t, session.IsActive())
	assert.False(t, session.StartedAt.Before(before))
	assert.False(t, session.StartedAt.After(time.Now().UTC()))
}

func TestStartRejectsSecondActiveSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)

	// The rule is per user, not per game
	_, err = svc.Start(ctx, testUserID, "game-2", testPlatform, time.Time{})
	assert.ErrorIs(t, err, domain.ErrSessionActive)

	// A different user is unaffected
	_, err = svc.Start(ctx, "user-2", testGameID, testPlatform, time.Time{})
	assert.NoError(t, err)
}

func TestStartUnknownGame(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, testUserID, "game-missing", testPlatform, time.Time{})
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	// The failed start must not count as the user's active session
	_, err = svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	assert.NoError(t, err)
}

func TestManualEntryUnknownGame(t *testing.T) {
	svc, _ := newTestService(t)

	started := time.Date(2026, 1, 2, 20, 0, 0, 0, time.UTC)
	_, err := svc.ManualEntry(context.Background(), testUserID, "game-missing", testPlatform,
		started, nil, intPtr(60), "")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestStartAllowedAfterEnding(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)
	_, err = svc.End(ctx, testUserID, testGameID, first.ID, time.Now().UTC(), intPtr(30))
	require.NoError(t, err)

	_, err = svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	assert.NoError(t, err)
}

func TestEndWithExplicitDuration(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)

	endedAt := time.Now().UTC()
	stored, err := svc.End(ctx, testUserID, testGameID, session.ID, endedAt, intPtr(45))
	require.NoError(t, err)

	assert.False(t, stored.IsActive())
	require.NotNil(t, stored.DurationMinutes)
	assert.Equal(t, 45, *stored.DurationMinutes)

	agg, err := svc.GetPlaytime(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 45, agg.TotalMinutes)
	require.NotNil(t, agg.LastPlayed)
	assert.True(t, agg.LastPlayed.Equal(endedAt))
}

func TestEndDerivesDurationFromBounds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	startedAt := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	session, err := svc.Start(ctx, testUserID, testGameID, testPlatform, startedAt)
	require.NoError(t, err)

	stored, err := svc.End(ctx, testUserID, testGameID, session.ID, startedAt.Add(90*time.Minute), nil)
	require.NoError(t, err)

	require.NotNil(t, stored.DurationMinutes)
	assert.Equal(t, 90, *stored.DurationMinutes)
}

func TestEndUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.End(context.Background(), testUserID, testGameID, "session-404", time.Now().UTC(), nil)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEndIsNotRepeatable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)
	_, err = svc.End(ctx, testUserID, testGameID, session.ID, time.Now().UTC(), intPtr(10))
	require.NoError(t, err)

	// Ended sessions are immutable; a second end must not double-credit
	_, err = svc.End(ctx, testUserID, testGameID, session.ID, time.Now().UTC(), intPtr(10))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	agg, err := svc.GetPlaytime(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 10, agg.TotalMinutes)
}

func TestManualEntryDerivesDuration(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	startedAt := time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)
	session, err := svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
		startedAt, timePtr(startedAt.Add(90*time.Minute)), nil, "couch co-op evening")
	require.NoError(t, err)

	assert.False(t, session.IsActive())
	require.NotNil(t, session.DurationMinutes)
	assert.Equal(t, 90, *session.DurationMinutes)

	agg, err := svc.GetPlaytime(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 90, agg.TotalMinutes)
}

func TestManualEntryDurationOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	startedAt := time.Date(2025, 5, 10, 18, 0, 0, 0, time.UTC)
	session, err := svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
		startedAt, nil, intPtr(120), "")
	require.NoError(t, err)

	require.NotNil(t, session.EndedAt)
	assert.True(t, session.EndedAt.Equal(startedAt.Add(120*time.Minute)),
		"end time is synthesized from the duration")
	require.NotNil(t, session.DurationMinutes)
	assert.Equal(t, 120, *session.DurationMinutes)
}

func TestManualEntryNeedsEndOrDuration(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ManualEntry(context.Background(), testUserID, testGameID, testPlatform,
		time.Now().UTC(), nil, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestManualEntryBypassesExclusivity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)

	_, err = svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
		time.Now().UTC().Add(-2*time.Hour), nil, intPtr(60), "")
	assert.NoError(t, err, "backfill is allowed while a live session runs")
}

func TestDeleteDebitsPlaytimeFlooredAtZero(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	startedAt := time.Now().UTC().Add(-3 * time.Hour)
	first, err := svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
		startedAt, nil, intPtr(40), "")
	require.NoError(t, err)
	_, err = svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
		startedAt.Add(time.Hour), nil, intPtr(20), "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testUserID, testGameID, first.ID))

	agg, err := svc.GetPlaytime(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 20, agg.TotalMinutes)

	_, total, err := svc.List(ctx, testUserID, testGameID, testPlatform, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestDeleteNeverDrivesTotalNegative(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	session, err := svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
		time.Now().UTC().Add(-time.Hour), nil, intPtr(50), "")
	require.NoError(t, err)

	// Simulate drift: the aggregate holds less than the session credit
	repo.playtime[aggKey(testUserID, testGameID, testPlatform)].TotalMinutes = 30

	require.NoError(t, svc.Delete(ctx, testUserID, testGameID, session.ID))

	agg, err := svc.GetPlaytime(ctx, testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 0, agg.TotalMinutes)
}

func TestDeleteActiveSessionConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)

	err = svc.Delete(ctx, testUserID, testGameID, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionStillActive)
}

func TestDeleteUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), testUserID, testGameID, "session-404")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetActive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	active, err := svc.GetActive(ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, active, "no session yet")

	started, err := svc.Start(ctx, testUserID, testGameID, testPlatform, time.Time{})
	require.NoError(t, err)

	active, err = svc.GetActive(ctx, testUserID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, started.ID, active.ID)

	_, err = svc.End(ctx, testUserID, testGameID, started.ID, time.Now().UTC(), intPtr(5))
	require.NoError(t, err)

	active, err = svc.GetActive(ctx, testUserID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestListNewestFirstWithClamping(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.ManualEntry(ctx, testUserID, testGameID, testPlatform,
			base.AddDate(0, 0, i), nil, intPtr(30), "")
		require.NoError(t, err)
	}

	sessions, total, err := svc.List(ctx, testUserID, testGameID, testPlatform, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].StartedAt.After(sessions[1].StartedAt))

	sessions, _, err = svc.List(ctx, testUserID, testGameID, testPlatform, 0, 0)
	require.NoError(t, err)
	assert.Len(t, sessions, 5, "zero limit falls back to the default")

	sessions, _, err = svc.List(ctx, testUserID, testGameID, testPlatform, MaxListLimit+1, 4)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestGetPlaytimeZeroForUntouchedTriple(t *testing.T) {
	svc, _ := newTestService(t)

	agg, err := svc.GetPlaytime(context.Background(), testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, 0, agg.TotalMinutes)
	assert.Nil(t, agg.LastPlayed)
}
