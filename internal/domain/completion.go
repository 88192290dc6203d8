package domain

import "time"

// CompletionLogEntry is one point of the progress-over-time view. Entries
// are append-only: they are never mutated, and deleting one does not
// recompute the others.
type CompletionLogEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	GameID     string    `json:"game_id"`
	PlatformID string    `json:"platform_id"`
	Percentage int       `json:"percentage"`
	LoggedAt   time.Time `json:"logged_at"`
	Notes      string    `json:"notes,omitempty"`
}

// CompletionLogPage is one page of the completion log plus the range totals
// the progress widget needs.
type CompletionLogPage struct {
	Entries      []CompletionLogEntry `json:"entries"`
	Total        int                  `json:"total"`
	TotalMinutes int                  `json:"total_minutes"`
}

// CompletionLogFilter narrows a log listing
type CompletionLogFilter struct {
	Limit  int
	Offset int
	From   *time.Time
	To     *time.Time
}
