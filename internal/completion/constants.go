package completion

// Pagination bounds for log listings
const (
	DefaultLogLimit = 50
	MaxLogLimit     = 200
)

// Error messages
const (
	ErrMsgRecalculateFailed = "failed to recalculate completion: %w"
	ErrMsgAppendFailed      = "failed to append completion log: %w"
	ErrMsgListFailed        = "failed to list completion log: %w"
	ErrMsgDeleteFailed      = "failed to delete completion log entry: %w"
)

// Log messages
const (
	LogMsgRecalculated   = "Completion percentage recalculated"
	LogMsgProgressLogged = "Completion percentage logged"
	LogMsgEntryDeleted   = "Completion log entry deleted"
)
