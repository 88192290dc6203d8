package playsession

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
)

// FakeRepository is an in-memory repository.Sessions plus
// repository.Playtime for unit tests. It mirrors the transactional
// guarantees of the real store: session writes and playtime deltas move
// together, and the single-active-session rule is enforced on insert the
// way the partial unique index does.
type FakeRepository struct {
	mu        sync.Mutex
	sessions  map[string]*domain.PlaySession
	playtime  map[string]*domain.PlaytimeAggregate
	nextID    int
	createSeq int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		sessions: make(map[string]*domain.PlaySession),
		playtime: make(map[string]*domain.PlaytimeAggregate),
	}
}

// FakeGameVerifier accepts the game ids it was seeded with and rejects
// everything else with domain.ErrGameNotFound.
type FakeGameVerifier struct {
	games map[string]bool
}

func NewFakeGameVerifier(gameIDs ...string) *FakeGameVerifier {
	games := make(map[string]bool, len(gameIDs))
	for _, id := range gameIDs {
		games[id] = true
	}
	return &FakeGameVerifier{games: games}
}

func (f *FakeGameVerifier) VerifyGame(ctx context.Context, gameID string) error {
	if !f.games[gameID] {
		return fmt.Errorf("%w: %s", domain.ErrGameNotFound, gameID)
	}
	return nil
}

func (f *FakeRepository) CreateActive(ctx context.Context, session *domain.PlaySession) (*domain.PlaySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.UserID == session.UserID && s.EndedAt == nil {
			return nil, domain.ErrSessionActive
		}
	}
	return f.insert(session), nil
}

func (f *FakeRepository) CreateEnded(ctx context.Context, session *domain.PlaySession) (*domain.PlaySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := f.insert(session)
	if stored.DurationMinutes != nil {
		f.applyDelta(stored, *stored.DurationMinutes, stored.EndedAt)
	}
	return stored, nil
}

func (f *FakeRepository) End(ctx context.Context, userID, gameID, sessionID string, endedAt time.Time, durationMinutes int) (*domain.PlaySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID || s.GameID != gameID || s.EndedAt != nil {
		return nil, domain.ErrSessionNotFound
	}

	ended := endedAt
	s.EndedAt = &ended
	s.DurationMinutes = &durationMinutes
	f.applyDelta(s, durationMinutes, &ended)

	copied := *s
	return &copied, nil
}

func (f *FakeRepository) Delete(ctx context.Context, userID, gameID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID || s.GameID != gameID {
		return domain.ErrSessionNotFound
	}
	if s.EndedAt == nil {
		return domain.ErrSessionStillActive
	}

	if s.DurationMinutes != nil {
		f.applyDelta(s, -*s.DurationMinutes, nil)
	}
	delete(f.sessions, sessionID)
	return nil
}

func (f *FakeRepository) GetByID(ctx context.Context, userID, gameID, sessionID string) (*domain.PlaySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[sessionID]
	if !ok || s.UserID != userID || s.GameID != gameID {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *FakeRepository) GetActive(ctx context.Context, userID string) (*domain.PlaySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.UserID == userID && s.EndedAt == nil {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *FakeRepository) List(ctx context.Context, userID, gameID, platformID string, limit, offset int) ([]domain.PlaySession, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matches []*domain.PlaySession
	for _, s := range f.sessions {
		if s.UserID == userID && s.GameID == gameID && s.PlatformID == platformID {
			matches = append(matches, s)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].StartedAt.Equal(matches[j].StartedAt) {
			return matches[i].StartedAt.After(matches[j].StartedAt)
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	if offset >= total {
		return []domain.PlaySession{}, total, nil
	}
	matches = matches[offset:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}

	out := make([]domain.PlaySession, len(matches))
	for i, s := range matches {
		out[i] = *s
	}
	return out, total, nil
}

func (f *FakeRepository) Get(ctx context.Context, userID, gameID, platformID string) (*domain.PlaytimeAggregate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if agg, ok := f.playtime[aggKey(userID, gameID, platformID)]; ok {
		copied := *agg
		return &copied, nil
	}
	return &domain.PlaytimeAggregate{
		UserID:     userID,
		GameID:     gameID,
		PlatformID: platformID,
	}, nil
}

// insert stores a copy and assigns ids. Caller must hold the mutex.
func (f *FakeRepository) insert(session *domain.PlaySession) *domain.PlaySession {
	f.nextID++
	f.createSeq++
	stored := *session
	stored.ID = fmt.Sprintf("session-%d", f.nextID)
	// Monotonic CreatedAt so list ordering is stable in fast tests
	stored.CreatedAt = time.Now().UTC().Add(time.Duration(f.createSeq) * time.Millisecond)
	f.sessions[stored.ID] = &stored

	copied := stored
	return &copied
}

// applyDelta adjusts the aggregate, flooring the total at zero. Caller
// must hold the mutex.
func (f *FakeRepository) applyDelta(s *domain.PlaySession, minutes int, playedAt *time.Time) {
	key := aggKey(s.UserID, s.GameID, s.PlatformID)
	agg, ok := f.playtime[key]
	if !ok {
		agg = &domain.PlaytimeAggregate{
			UserID:     s.UserID,
			GameID:     s.GameID,
			PlatformID: s.PlatformID,
		}
		f.playtime[key] = agg
	}
	agg.TotalMinutes += minutes
	if agg.TotalMinutes < 0 {
		agg.TotalMinutes = 0
	}
	if playedAt != nil && (agg.LastPlayed == nil || playedAt.After(*agg.LastPlayed)) {
		t := *playedAt
		agg.LastPlayed = &t
	}
}

func aggKey(userID, gameID, platformID string) string {
	return userID + "|" + gameID + "|" + platformID
}
