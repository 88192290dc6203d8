package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/GameShelf_Go/internal/completion"
	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
)

// RecalculateRequest identifies the (game, platform) pair to recompute
type RecalculateRequest struct {
	PlatformID string `json:"platform_id" validate:"required,platform"`
}

// RecalculateResponse carries the recomputed completion percentage
type RecalculateResponse struct {
	GameID     string `json:"game_id"`
	Percentage int    `json:"percentage"`
}

// HandleRecalculateCompletion recomputes the completion percentage
// @Summary Recalculate completion
// @Description Recomputes the weighted completion percentage from current ownership. Appends a log entry only when the value changed.
// @Tags completion
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body RecalculateRequest true "Platform selector"
// @Success 200 {object} RecalculateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/completion/recalculate [post]
func HandleRecalculateCompletion(completionSvc completion.Service) http.HandlerFunc {
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

		var req RecalculateRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Recalculate completion"); err != nil {
			return
		}

		percentage, err := completionSvc.Recalculate(r.Context(), userID, gameID, req.PlatformID)
		if err != nil {
			respondServiceError(w, r, "Recalculate completion", err)
			return
		}

		respondJSON(w, http.StatusOK, RecalculateResponse{
			GameID:     gameID,
			Percentage: percentage,
		})
	}
}

// AppendLogRequest records an explicit completion percentage entry
type AppendLogRequest struct {
	PlatformID string `json:"platform_id" validate:"required,platform"`
	Percentage int    `json:"percentage" validate:"gte=0,lte=100"`
	Notes      string `json:"notes" validate:"max=500"`
}

// HandleAppendCompletionLog appends a manual completion log entry
// @Summary Append completion log entry
// @Description Records a user-driven percentage entry. Manual entries always append, even at an unchanged value.
// @Tags completion
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body AppendLogRequest true "Log entry"
// @Success 201 {object} domain.CompletionLogEntry
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/completion/log [post]
func HandleAppendCompletionLog(completionSvc completion.Service) http.HandlerFunc {
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

		var req AppendLogRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Append completion log"); err != nil {
			return
		}

		entry, err := completionSvc.AppendLog(r.Context(), userID, gameID, req.PlatformID, req.Percentage, req.Notes)
		if err != nil {
			respondServiceError(w, r, "Append completion log", err)
			return
		}

		log.Info("Completion log entry appended",
			"user_id", userID,
			"game_id", gameID,
			"percentage", req.Percentage)

		respondJSON(w, http.StatusCreated, entry)
	}
}

// HandleListCompletionLog returns a page of the completion log
// @Summary List completion log
// @Description Returns a newest-first page of log entries plus the total count and the running playtime total
// @Tags completion
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param platform_id query string true "Platform ID"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Param from query string false "Lower bound, RFC 3339"
// @Param to query string false "Upper bound, RFC 3339"
// @Success 200 {object} domain.CompletionLogPage
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/completion/log [get]
func HandleListCompletionLog(completionSvc completion.Service) http.HandlerFunc {
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

		// Same bounds as the service clamp, so the cap is identical
		// no matter which layer applies it first
		limit, ok := GetOptionalIntParam(r, w, "limit", completion.DefaultLogLimit, ErrMsgInvalidLimit)
		if !ok {
			return
		}
		if limit > completion.MaxLogLimit {
			limit = completion.MaxLogLimit
		}
		offset, ok := GetOptionalIntParam(r, w, "offset", 0, ErrMsgInvalidOffset)
		if !ok {
			return
		}
		from, ok := GetOptionalTimeParam(r, w, "from")
		if !ok {
			return
		}
		to, ok := GetOptionalTimeParam(r, w, "to")
		if !ok {
			return
		}

		page, err := completionSvc.ListLog(r.Context(), userID, gameID, platformID, domain.CompletionLogFilter{
			Limit:  limit,
			Offset: offset,
			From:   from,
			To:     to,
		})
		if err != nil {
			respondServiceError(w, r, "List completion log", err)
			return
		}

		respondJSON(w, http.StatusOK, page)
	}
}

// HandleDeleteCompletionLog removes a single log entry
// @Summary Delete completion log entry
// @Description Deletes one entry. Other entries are never recomputed.
// @Tags completion
// @Produce json
// @Param gameID path string true "Game ID"
// @Param entryID path string true "Log entry ID"
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/completion/log/{entryID} [delete]
func HandleDeleteCompletionLog(completionSvc completion.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}
		entryID := chi.URLParam(r, "entryID")
		if entryID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingEntryID)
			return
		}
		userID, ok := GetUserID(r, w)
		if !ok {
			return
		}

		if err := completionSvc.DeleteLog(r.Context(), userID, gameID, entryID); err != nil {
			respondServiceError(w, r, "Delete completion log entry", err)
			return
		}

		log.Info("Completion log entry deleted",
			"user_id", userID,
			"game_id", gameID,
			"entry_id", entryID)

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLogEntryDeleted})
	}
}
