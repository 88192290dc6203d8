package playsession

// Pagination bounds for session listings
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Error messages
const (
	ErrMsgStartFailed  = "failed to start session: %w"
	ErrMsgManualFailed = "failed to record manual session: %w"
	ErrMsgEndFailed    = "failed to end session: %w"
	ErrMsgDeleteFailed = "failed to delete session: %w"
	ErrMsgListFailed   = "failed to list sessions: %w"
	ErrMsgActiveFailed = "failed to get active session: %w"
)

// Log messages
const (
	LogMsgSessionStarted     = "Play session started"
	LogMsgSessionEnded       = "Play session ended"
	LogMsgSessionDeleted     = "Play session deleted"
	LogMsgManualSessionAdded = "Manual play session recorded"
	LogMsgNonPositiveMinutes = "Manual session has non-positive duration"
)
