package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/progress"
)

// HandleGetProgress returns the caller's progress status for a game
// @Summary Get progress status
// @Description Returns the stored status, or an implicit backlog entry when the game was never touched
// @Tags progress
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param platform_id query string true "Platform ID"
// @Success 200 {object} domain.ProgressStatus
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/progress [get]
func HandleGetProgress(progressSvc progress.Service) http.HandlerFunc {
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

		status, err := progressSvc.Get(r.Context(), userID, gameID, platformID)
		if err != nil {
			respondServiceError(w, r, "Get progress", err)
			return
		}

		respondJSON(w, http.StatusOK, status)
	}
}

// SetProgressRequest applies an explicit status change
type SetProgressRequest struct {
	PlatformID string `json:"platform_id" validate:"required,platform"`
	Status     string `json:"status" validate:"required,gamestatus"`
}

// HandleSetProgress sets the caller's progress status for a game
// @Summary Set progress status
// @Description Applies an explicit user-driven status change. A started_at already set is never cleared.
// @Tags progress
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body SetProgressRequest true "New status"
// @Success 200 {object} domain.ProgressStatus
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/progress [put]
func HandleSetProgress(progressSvc progress.Service) http.HandlerFunc {
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

		var req SetProgressRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set progress"); err != nil {
			return
		}

		status, err := progressSvc.Set(r.Context(), userID, gameID, req.PlatformID, domain.GameStatus(req.Status))
		if err != nil {
			respondServiceError(w, r, "Set progress", err)
			return
		}

		log.Info("Progress status set",
			"user_id", userID,
			"game_id", gameID,
			"status", req.Status,
			"platform", DisplayPlatform(req.PlatformID))

		respondJSON(w, http.StatusOK, status)
	}
}
