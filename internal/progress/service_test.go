package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

const (
	testUserID   = "user-1"
	testGameID   = "game-1"
	testPlatform = "steam"
)

func newTestService() Service {
	return NewService(NewFakeRepository(), NewFakeGameVerifier(testGameID))
}

func TestGetReturnsImplicitBacklog(t *testing.T) {
	svc := newTestService()

	status, err := svc.Get(context.Background(), testUserID, testGameID, testPlatform)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBacklog, status.Status)
	assert.Nil(t, status.StartedAt)
	assert.Nil(t, status.CompletedAt)
	assert.True(t, status.UpdatedAt.IsZero(), "implicit rows carry no update time")
}

func TestSetAcceptsEveryKnownStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, status := range domain.ValidGameStatuses {
		stored, err := svc.Set(ctx, testUserID, testGameID, testPlatform, status)
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
	}
}

func TestSetRejectsUnknownStatus(t *testing.T) {
	svc := newTestService()

	_, err := svc.Set(context.Background(), testUserID, testGameID, testPlatform, domain.GameStatus("shelved"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestStartedAtSurvivesLaterTransitions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	playing, err := svc.Set(ctx, testUserID, testGameID, testPlatform, domain.StatusPlaying)
	require.NoError(t, err)
	require.NotNil(t, playing.StartedAt)

	dropped, err := svc.Set(ctx, testUserID, testGameID, testPlatform, domain.StatusDropped)
	require.NoError(t, err)
	require.NotNil(t, dropped.StartedAt)
	assert.True(t, dropped.StartedAt.Equal(*playing.StartedAt), "started_at is never cleared")

	back, err := svc.Set(ctx, testUserID, testGameID, testPlatform, domain.StatusBacklog)
	require.NoError(t, err)
	require.NotNil(t, back.StartedAt)
	assert.True(t, back.StartedAt.Equal(*playing.StartedAt))
}

func TestCompletedAtStampedOnce(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	finished, err := svc.Set(ctx, testUserID, testGameID, testPlatform, domain.StatusFinished)
	require.NoError(t, err)
	require.NotNil(t, finished.CompletedAt)

	completed, err := svc.Set(ctx, testUserID, testGameID, testPlatform, domain.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, completed.CompletedAt.Equal(*finished.CompletedAt), "first done transition wins")
}

func TestUnknownGameNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Get(ctx, testUserID, "game-missing", testPlatform)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	_, err = svc.Set(ctx, testUserID, "game-missing", testPlatform, domain.StatusPlaying)
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestTriplesAreIndependent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Set(ctx, testUserID, testGameID, "steam", domain.StatusPlaying)
	require.NoError(t, err)

	gog, err := svc.Get(ctx, testUserID, testGameID, "gog")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBacklog, gog.Status)

	other, err := svc.Get(ctx, "user-2", testGameID, "steam")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBacklog, other.Status)
}
