package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mkarlsen/GameShelf_Go/internal/logger"
)

// HeaderUserID carries the caller's user identity, resolved upstream by
// the account service.
const HeaderUserID = "X-User-ID"

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// returns appropriate errors. If this function returns an error, the HTTP
// response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	// Decode JSON body
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	// Validate the request struct
	if err := GetValidator().ValidateStruct(req); err != nil {
		validationErrs := FormatValidationError(err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: validationErrs,
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetUserID extracts the caller identity from the X-User-ID header.
// If the header is missing, it writes an error response and returns false.
func GetUserID(r *http.Request, w http.ResponseWriter) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if userID == "" {
		log := logger.FromContext(r.Context())
		log.Warn("Missing user id header")
		respondError(w, http.StatusBadRequest, ErrMsgMissingUserID)
		return "", false
	}
	return userID, true
}

// GetPlatformID extracts and validates the platform_id query parameter.
// If ok is false, the HTTP response has already been written.
func GetPlatformID(r *http.Request, w http.ResponseWriter) (string, bool) {
	log := logger.FromContext(r.Context())

	platformID := r.URL.Query().Get("platform_id")
	if platformID == "" {
		log.Warn("Missing platform_id query parameter")
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "platform_id"))
		return "", false
	}
	if err := ValidatePlatform(platformID); err != nil {
		log.Warn("Invalid platform", "platform_id", platformID)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPlatform)
		return "", false
	}
	return strings.ToLower(platformID), true
}

// GetQueryParam retrieves a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and
// returns false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the
// request, falling back to defaultValue when absent.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetOptionalIntParam parses an optional integer query parameter. A
// malformed value writes a 400 response and returns ok=false.
func GetOptionalIntParam(r *http.Request, w http.ResponseWriter, paramName string, defaultValue int, errMsg string) (int, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		logger.FromContext(r.Context()).Warn("Invalid integer query parameter", "param", paramName, "value", raw)
		respondError(w, http.StatusBadRequest, errMsg)
		return 0, false
	}
	return value, true
}

// GetOptionalTimeParam parses an optional RFC 3339 query parameter. A
// malformed value writes a 400 response and returns ok=false.
func GetOptionalTimeParam(r *http.Request, w http.ResponseWriter, paramName string) (*time.Time, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid time query parameter", "param", paramName, "value", raw)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTimeRange)
		return nil, false
	}
	return &t, true
}

// platformTitle renders a platform id for display, e.g. "steam" -> "Steam"
var platformTitle = cases.Title(language.English)

// DisplayPlatform returns the human-readable form of a platform id
func DisplayPlatform(platformID string) string {
	return platformTitle.String(platformID)
}
