package domain

import "time"

// PlaySession is a single sitting with a game. A session with a nil
// EndedAt is active; at most one active session may exist per user,
// system-wide. Once ended, a session is immutable (no reopening).
type PlaySession struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	GameID          string     `json:"game_id"`
	PlatformID      string     `json:"platform_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsActive reports whether the session is still running
func (s *PlaySession) IsActive() bool {
	return s.EndedAt == nil
}

// PlaytimeAggregate is the maintained running total of minutes played for
// a (user, game, platform). It is updated by relative deltas when sessions
// end or are deleted, never recomputed by summing sessions on read.
type PlaytimeAggregate struct {
	UserID       string     `json:"user_id"`
	GameID       string     `json:"game_id"`
	PlatformID   string     `json:"platform_id"`
	TotalMinutes int        `json:"total_minutes"`
	LastPlayed   *time.Time `json:"last_played"`
}

// DeriveDurationMinutes computes a session duration from its bounds,
// rounded to the nearest minute. Negative results are returned as
// computed; data-quality handling is the caller's concern.
func DeriveDurationMinutes(startedAt, endedAt time.Time) int {
	return int(endedAt.Sub(startedAt).Round(time.Minute) / time.Minute)
}
