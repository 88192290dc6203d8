package catalog

import "time"

const (
	// DefaultCacheSize is the maximum number of games whose addition
	// lists are cached at once
	DefaultCacheSize = 512

	// DefaultCacheTTL bounds staleness after an importer run
	DefaultCacheTTL = 5 * time.Minute
)

// Error messages
const (
	ErrMsgNegativeWeight = "weight must not be negative"
	ErrMsgVerifyFailed   = "failed to verify game: %w"
	ErrMsgListFailed     = "failed to list additions: %w"
	ErrMsgGetFailed      = "failed to get addition: %w"
	ErrMsgTuneFailed     = "failed to update addition tuning: %w"
)

// Log messages
const (
	LogMsgTuningUpdated = "Addition tuning updated"
)
