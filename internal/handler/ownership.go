package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/GameShelf_Go/internal/logger"
	"github.com/mkarlsen/GameShelf_Go/internal/ownership"
)

// HandleGetOwnership returns the resolved ownership view for the caller
// @Summary Get ownership
// @Description Returns the catalog split by type plus the caller's resolved ownership state
// @Tags ownership
// @Produce json
// @Param gameID path string true "Game ID"
// @Param platform_id query string true "Platform ID"
// @Param X-User-ID header string true "User ID"
// @Success 200 {object} domain.OwnershipView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/ownership [get]
func HandleGetOwnership(ownershipSvc ownership.Service) http.HandlerFunc {
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

		view, err := ownershipSvc.GetOwnership(r.Context(), userID, gameID, platformID)
		if err != nil {
			respondServiceError(w, r, "Get ownership", err)
			return
		}

		respondJSON(w, http.StatusOK, view)
	}
}

// SetEditionRequest selects the owned edition for a game. A null or
// omitted edition_id means the standard edition.
type SetEditionRequest struct {
	PlatformID string  `json:"platform_id" validate:"required,platform"`
	EditionID  *string `json:"edition_id"`
}

// HandleSetEdition selects which edition of a game the caller owns
// @Summary Select owned edition
// @Description Sets the owned edition; null means the standard edition. Owning a complete edition makes all DLCs count as owned.
// @Tags ownership
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body SetEditionRequest true "Edition selection"
// @Success 200 {object} domain.OwnershipView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/ownership/edition [put]
func HandleSetEdition(ownershipSvc ownership.Service) http.HandlerFunc {
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

		var req SetEditionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set edition"); err != nil {
			return
		}

		view, err := ownershipSvc.SetEdition(r.Context(), userID, gameID, req.PlatformID, req.EditionID)
		if err != nil {
			respondServiceError(w, r, "Set edition", err)
			return
		}

		log.Info("Edition selected",
			"user_id", userID,
			"game_id", gameID,
			"platform", DisplayPlatform(req.PlatformID))

		respondJSON(w, http.StatusOK, view)
	}
}

// SetDLCOwnershipRequest full-replaces the caller's owned DLC set
type SetDLCOwnershipRequest struct {
	PlatformID string   `json:"platform_id" validate:"required,platform"`
	OwnedDLCs  []string `json:"owned_dlc_ids"`
}

// HandleSetDLCOwnership replaces the set of DLCs the caller owns
// @Summary Set owned DLCs
// @Description Full-replace semantics. Every DLC of the game ends up owned iff its id is listed.
// @Tags ownership
// @Accept json
// @Produce json
// @Param gameID path string true "Game ID"
// @Param X-User-ID header string true "User ID"
// @Param request body SetDLCOwnershipRequest true "Owned DLC ids"
// @Success 200 {object} domain.OwnershipView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/ownership/dlcs [put]
func HandleSetDLCOwnership(ownershipSvc ownership.Service) http.HandlerFunc {
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

		var req SetDLCOwnershipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set DLC ownership"); err != nil {
			return
		}

		view, err := ownershipSvc.SetDLCOwnership(r.Context(), userID, gameID, req.PlatformID, req.OwnedDLCs)
		if err != nil {
			respondServiceError(w, r, "Set DLC ownership", err)
			return
		}

		log.Info("DLC ownership replaced",
			"user_id", userID,
			"game_id", gameID,
			"owned_count", len(req.OwnedDLCs))

		respondJSON(w, http.StatusOK, view)
	}
}
