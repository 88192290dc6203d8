package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/playsession"
)

// StartSessionRequest opens a new active play session
type StartSessionRequest struct {
	PlatformID string     `json:"platform_id" validate:"required,platform"`
	StartedAt  *time.Time `json:"started_at"`
}

// HandleStartSession starts a new active session for the caller
// @Summary Start play session
// @Description Opens an active session. A user may have at most one active session across all games.
// @Tags sessions
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body StartSessionRequest true "Session start"
// @Success 201 {object} domain.PlaySession
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/sessions [post]
func HandleStartSession(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}

		var req StartSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Start session"); err != nil {
			return
		}

		startedAt := time.Time{}
		if req.StartedAt != nil {
			startedAt = *req.StartedAt
		}

		session, err := sessionSvc.Start(r.Context(), userID, gameID, req.PlatformID, startedAt)
		if err != nil {
			respondServiceError(w, r, "Start session", err)
			return
		}

		log.Info("Play session started",
			"user_id", userID,
			"game_id", gameID,
			"session_id", session.ID)

		respondJSON(w, http.StatusCreated, session)
	}
}

// ManualSessionRequest backfills a historical session that is already over.
// Either ended_at or duration_minutes must be supplied.
type ManualSessionRequest struct {
	PlatformID      string     `json:"platform_id" validate:"required,platform"`
	StartedAt       time.Time  `json:"started_at" validate:"required"`
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes *int       `json:"duration_minutes"`
	Notes           string     `json:"notes" validate:"max=500"`
}

// HandleManualSession records a manual historical session
// @Summary Add manual session
// @Description Backfills a completed session. The single-active-session rule does not apply.
// @Tags sessions
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body ManualSessionRequest true "Manual session"
// @Success 201 {object} domain.PlaySession
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/sessions/manual [post]
func HandleManualSession(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}

		var req ManualSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Manual session"); err != nil {
			return
		}
		if req.EndedAt == nil && req.DurationMinutes == nil {
			respondError(w, http.StatusBadRequest, ErrMsgSessionBoundsNeeded)
			return
		}

		session, err := sessionSvc.ManualEntry(r.Context(), userID, gameID, req.PlatformID,
			req.StartedAt, req.EndedAt, req.DurationMinutes, req.Notes)
		if err != nil {
			respondServiceError(w, r, "Manual session", err)
			return
		}

		log.Info("Manual session recorded",
			"user_id", userID,
			"game_id", gameID,
			"session_id", session.ID)

		respondJSON(w, http.StatusCreated, session)
	}
}

// EndSessionRequest closes an active session
type EndSessionRequest struct {
	EndedAt         *time.Time `json:"ended_at"`
	DurationMinutes *int       `json:"duration_minutes"`
}

// HandleEndSession ends the caller's active session
// @Summary End play session
// @Description Closes the session and credits its duration to the playtime aggregate
// @Tags sessions
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param sessionID path string true "Session ID"
// @Param X-User-ID header string true "User ID"
// @Param request body EndSessionRequest true "Session end"
// @Success 200 {object} domain.PlaySession
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/sessions/{sessionID}/end [post]
func HandleEndSession(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		sessionID := chi.URLParam(r, "sessionID")
		if sessionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingSessionID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}

		var req EndSessionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "End session"); err != nil {
			return
		}

		endedAt := time.Now().UTC()
		if req.EndedAt != nil {
			endedAt = *req.EndedAt
		}

		session, err := sessionSvc.End(r.Context(), userID, gameID, sessionID, endedAt, req.DurationMinutes)
		if err != nil {
			respondServiceError(w, r, "End session", err)
			return
		}

		log.Info("Play session ended",
			"user_id", userID,
			"session_id", sessionID,
			"duration_minutes", session.DurationMinutes)

		respondJSON(w, http.StatusOK, session)
	}
}

// HandleDeleteSession removes a completed session
// @Summary Delete session
// @Description Deletes a completed session and debits its minutes from the aggregate, floored at zero. Active sessions cannot be deleted.
// @Tags sessions
// @Produce json
// @Param gameID path string true "Game ID"
// @Param sessionID path string true "Session ID"
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/sessions/{sessionID} [delete]
func HandleDeleteSession(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		sessionID := chi.URLParam(r, "sessionID")
		if sessionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingSessionID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}

		if err := sessionSvc.Delete(r.Context(), userID, gameID, sessionID); err != nil {
			respondServiceError(w, r, "Delete session", err)
			return
		}

		log.Info("Play session deleted",
			"user_id", userID,
			"session_id", sessionID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionDeleted})
	}
}

// SessionListResponse is a newest-first page of sessions
type SessionListResponse struct {
	Sessions []domain.PlaySession `json:"sessions"`
	Total    int                  `json:"total"`
}

// HandleListSessions lists the caller's sessions for a game
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param platform_id query string true "Platform ID"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {object} SessionListResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/sessions [get]
func HandleListSessions(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}
		platformID, ok := GetPlatformID(r, w)
		if !ok {
			return
		}

		limit, ok := GetOptionalIntParam(r, w, "limit", playsession.DefaultListLimit, ErrMsgInvalidLimit)
		if !ok {
			return
		}
		if limit > playsession.MaxListLimit {
			limit = playsession.MaxListLimit
		}
		offset, ok := GetOptionalIntParam(r, w, "offset", 0, ErrMsgInvalidOffset)
		if !ok {
			return
		}

		sessions, total, err := sessionSvc.List(r.Context(), userID, gameID, platformID, limit, offset)
		if err != nil {
			respondServiceError(w, r, "List sessions", err)
			return
		}

		respondJSON(w, http.StatusOK, SessionListResponse{
			Sessions: sessions,
			Total:    total,
		})
	}
}

// ActiveSessionResponse wraps the caller's active session, if any
type ActiveSessionResponse struct {
	Message string              `json:"message,omitempty"`
	Session *domain.PlaySession `json:"session"`
}

// HandleGetActiveSession returns the caller's single active session
// @Summary Get active session
// @Description Returns the caller's active session across all games, or a null session when none is running
// @Tags sessions
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} ActiveSessionResponse
// @Router /api/v1/sessions/active [get]
func HandleGetActiveSession(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}

		session, err := sessionSvc.GetActive(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get active session", err)
			return
		}

		response := ActiveSessionResponse{Session: session}
		if session == nil {
			response.Message = MsgNoActiveSession
		}
		respondJSON(w, http.StatusOK, response)
	}
}

// HandleGetPlaytime returns the maintained playtime aggregate
// @Summary Get playtime
// @Description Returns the running total of minutes played for the (game, platform) pair
// @Tags sessions
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param platform_id query string true "Platform ID"
// @Success 200 {object} domain.PlaytimeAggregate
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/playtime [get]
func HandleGetPlaytime(sessionSvc playsession.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}
		platformID, ok := GetPlatformID(r, w)
		if !ok {
			return
		}

		aggregate, err := sessionSvc.GetPlaytime(r.Context(), userID, gameID, platformID)
		if err != nil {
			respondServiceError(w, r, "Get playtime", err)
			return
		}

		respondJSON(w, http.StatusOK, aggregate)
	}
}
