package ownership

// Error messages
const (
	ErrMsgResolveFailed    = "failed to resolve ownership: %w"
	ErrMsgSetEditionFailed = "failed to set edition: %w"
	ErrMsgSetDLCsFailed    = "failed to set dlc ownership: %w"
)

// Log messages
const (
	LogMsgEditionSelected = "Edition selected"
	LogMsgEditionCleared  = "Edition cleared to standard"
	LogMsgDLCSetReplaced  = "DLC ownership set replaced"
)
