package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgAdditionNotFound = "addition not found"
	ErrMsgGameNotFound     = "game not found"

	// Ownership errors
	ErrMsgNotAnEdition = "addition is not an edition"
	ErrMsgNotADLC      = "addition is not a dlc"

	// Session errors
	ErrMsgSessionNotFound    = "session not found"
	ErrMsgSessionActive      = "an active session already exists"
	ErrMsgSessionStillActive = "session is still active"
	ErrMsgSessionAlreadyOver = "session already ended"

	// Completion log errors
	ErrMsgLogEntryNotFound     = "completion log entry not found"
	ErrMsgPercentageOutOfRange = "percentage must be between 0 and 100"

	// Progress errors
	ErrMsgInvalidStatus = "invalid progress status"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Catalog errors
	ErrAdditionNotFound = errors.New(ErrMsgAdditionNotFound)
	ErrGameNotFound     = errors.New(ErrMsgGameNotFound)

	// Ownership errors (validation class)
	ErrNotAnEdition = errors.New(ErrMsgNotAnEdition)
	ErrNotADLC      = errors.New(ErrMsgNotADLC)

	// Session errors
	ErrSessionNotFound    = errors.New(ErrMsgSessionNotFound)
	ErrSessionActive      = errors.New(ErrMsgSessionActive)
	ErrSessionStillActive = errors.New(ErrMsgSessionStillActive)
	ErrSessionAlreadyOver = errors.New(ErrMsgSessionAlreadyOver)

	// Completion log errors
	ErrLogEntryNotFound     = errors.New(ErrMsgLogEntryNotFound)
	ErrPercentageOutOfRange = errors.New(ErrMsgPercentageOutOfRange)

	// Progress errors
	ErrInvalidStatus = errors.New(ErrMsgInvalidStatus)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// IsNotFound reports whether err belongs to the not-found class
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAdditionNotFound) ||
		errors.Is(err, ErrGameNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrLogEntryNotFound)
}

// IsConflict reports whether err belongs to the conflict class
func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionActive) ||
		errors.Is(err, ErrSessionStillActive)
}

// IsValidation reports whether err belongs to the validation class
func IsValidation(err error) bool {
	return errors.Is(err, ErrNotAnEdition) ||
		errors.Is(err, ErrNotADLC) ||
		errors.Is(err, ErrPercentageOutOfRange) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidInput)
}
