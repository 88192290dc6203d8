package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkarlsen/GameShelf_Go/internal/catalog"
	"github.com/mkarlsen/GameShelf_Go/internal/domain"
	"github.com/mkarlsen/GameShelf_Go/internal/logger"
)

// AdditionListResponse is the list of catalog additions for a game
type AdditionListResponse struct {
	GameID    string            `json:"game_id"`
	Additions []domain.Addition `json:"additions"`
}

// HandleListAdditions returns every addition known for a game
// @Summary List game additions
// @Description Returns the editions, DLCs and other content known for a game
// @Tags catalog
// @Produce json
// @Param gameID path string true "Game ID"
// @Success 200 {object} AdditionListResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{gameID}/additions [get]
func HandleListAdditions(catalogSvc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		if gameID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingGameID)
			return
		}

		additions, err := catalogSvc.ListAdditions(r.Context(), gameID)
		if err != nil {
			respondServiceError(w, r, "List additions", err)
			return
		}

		respondJSON(w, http.StatusOK, AdditionListResponse{
			GameID:    gameID,
			Additions: additions,
		})
	}
}

// HandleGetAddition returns a single catalog addition
// @Summary Get addition
// @Tags catalog
// @Produce json
// @Param additionID path string true "Addition ID"
// @Success 200 {object} domain.Addition
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/additions/{additionID} [get]
func HandleGetAddition(catalogSvc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		additionID := chi.URLParam(r, "additionID")
		if additionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingAdditionID)
			return
		}

		addition, err := catalogSvc.GetAddition(r.Context(), additionID)
		if err != nil {
			respondServiceError(w, r, "Get addition", err)
			return
		}

		respondJSON(w, http.StatusOK, addition)
	}
}

// UpdateTuningRequest adjusts the completion-math fields of an addition
type UpdateTuningRequest struct {
	Weight          float64 `json:"weight" validate:"gte=0"`
	RequiredForFull bool    `json:"required_for_full"`
}

// HandleUpdateTuning updates the weight and required flag of an addition
// @Summary Update addition tuning
// @Description Adjusts the weight and required-for-full flag used by completion math
// @Tags catalog
// @Accept json
// @Produce json
// @Param additionID path string true "Addition ID"
// @Param request body UpdateTuningRequest true "Tuning fields"
// @Success 200 {object} domain.Addition
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/additions/{additionID}/tuning [patch]
func HandleUpdateTuning(catalogSvc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		additionID := chi.URLParam(r, "additionID")
		if additionID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingAdditionID)
			return
		}

		var req UpdateTuningRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update tuning"); err != nil {
			return
		}

		addition, err := catalogSvc.UpdateTuning(r.Context(), additionID, req.Weight, req.RequiredForFull)
		if err != nil {
			respondServiceError(w, r, "Update tuning", err)
			return
		}

		log.Info("Addition tuning updated",
			"addition_id", additionID,
			"weight", req.Weight,
			"required_for_full", req.RequiredForFull)

		respondJSON(w, http.StatusOK, addition)
	}
}
