package handler

import (
	"errors"
	"net/http"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"

	// Identity error messages
	ErrMsgMissingUserID     = "Missing X-User-ID header"
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPlatform   = "Invalid platform"

	// Path parameter error messages
	ErrMsgMissingGameID     = "Missing game ID"
	ErrMsgMissingAdditionID = "Missing addition ID"
	ErrMsgMissingSessionID  = "Missing session ID"
	ErrMsgMissingEntryID    = "Missing log entry ID"
	ErrMsgInvalidID         = "Invalid ID"

	// Catalog error messages
	ErrMsgAdditionNotFoundHTTP = "Addition not found"
	ErrMsgGameNotFoundHTTP     = "Game not found"
	ErrMsgNegativeWeight       = "Weight must not be negative"

	// Ownership error messages
	ErrMsgNotAnEditionHTTP = "That addition is not an edition"
	ErrMsgNotADLCHTTP      = "That addition is not a DLC"

	// Completion log error messages
	ErrMsgPercentageRange      = "Percentage must be between 0 and 100"
	ErrMsgLogEntryNotFoundHTTP = "Completion log entry not found"
	ErrMsgInvalidLimit         = "Invalid limit parameter"
	ErrMsgInvalidOffset        = "Invalid offset parameter"
	ErrMsgInvalidTimeRange     = "Invalid time range parameter"

	// Session error messages
	ErrMsgSessionNotFoundHTTP  = "Session not found"
	ErrMsgSessionAlreadyActive = "You already have an active session"
	ErrMsgSessionStillRunning  = "Session is still active. End it before deleting"
	ErrMsgSessionBoundsNeeded  = "Either ended_at or duration_minutes is required"
	ErrMsgInvalidTimestamp     = "Invalid timestamp"

	// Progress error messages
	ErrMsgInvalidStatusHTTP = "Invalid status value"
)

// Success messages for API responses
const (
	MsgEditionSelected = "Edition selected"
	MsgDLCOwnershipSet = "DLC ownership updated"
	MsgLogEntryDeleted = "Completion log entry deleted"
	MsgSessionDeleted  = "Session deleted"
	MsgTuningUpdated   = "Addition tuning updated"
	MsgNoActiveSession = "No active session"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Validation errors map to 400, not-found to 404, conflicts
// to 409; anything unrecognized falls back to a 500 with a generic body.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrAdditionNotFound):
		return http.StatusNotFound, ErrMsgAdditionNotFoundHTTP
	case errors.Is(err, domain.ErrGameNotFound):
		return http.StatusNotFound, ErrMsgGameNotFoundHTTP
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundHTTP
	case errors.Is(err, domain.ErrLogEntryNotFound):
		return http.StatusNotFound, ErrMsgLogEntryNotFoundHTTP
	case errors.Is(err, domain.ErrSessionActive):
		return http.StatusConflict, ErrMsgSessionAlreadyActive
	case errors.Is(err, domain.ErrSessionStillActive):
		return http.StatusConflict, ErrMsgSessionStillRunning
	case errors.Is(err, domain.ErrNotAnEdition):
		return http.StatusBadRequest, ErrMsgNotAnEditionHTTP
	case errors.Is(err, domain.ErrNotADLC):
		return http.StatusBadRequest, ErrMsgNotADLCHTTP
	case errors.Is(err, domain.ErrPercentageOutOfRange):
		return http.StatusBadRequest, ErrMsgPercentageRange
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, ErrMsgInvalidStatusHTTP
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	}

	// Fall back to the error classes so new sentinels keep sane codes
	// even before they get a dedicated message.
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case domain.IsNotFound(err):
		return http.StatusNotFound, ErrMsgGameNotFoundHTTP
	case domain.IsConflict(err):
		return http.StatusConflict, ErrMsgSessionAlreadyActive
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// HTTP error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}
