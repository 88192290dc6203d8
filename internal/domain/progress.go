package domain

import "time"

// GameStatus is the user's progress status for a game on a platform
type GameStatus string

const (
	StatusBacklog   GameStatus = "backlog"
	StatusPlaying   GameStatus = "playing"
	StatusFinished  GameStatus = "finished"
	StatusCompleted GameStatus = "completed"
	StatusDropped   GameStatus = "dropped"
)

// ValidGameStatuses lists every accepted status value
var ValidGameStatuses = []GameStatus{
	StatusBacklog,
	StatusPlaying,
	StatusFinished,
	StatusCompleted,
	StatusDropped,
}

// IsValid reports whether the status is one of the known values
func (s GameStatus) IsValid() bool {
	for _, v := range ValidGameStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsDone reports whether the status marks the game as finished or
// fully completed
func (s GameStatus) IsDone() bool {
	return s == StatusFinished || s == StatusCompleted
}

// ProgressStatus is one row per (user, game, platform). StartedAt, once
// set, is never cleared by an auto-transition; only explicit user action
// may reset it.
type ProgressStatus struct {
	UserID      string     `json:"user_id"`
	GameID      string     `json:"game_id"`
	PlatformID  string     `json:"platform_id"`
	Status      GameStatus `json:"status"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
