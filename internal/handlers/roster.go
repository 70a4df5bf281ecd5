package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetTeamRoster handles GET /api/v1/teams/{teamID}/roster
// @Summary Get a team's roster with current-session and career stats
// @Tags Roster
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {array} models.Player
// @Router /teams/{teamID}/roster [get]
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	roster, err := h.roster.GetTeamRoster(r.Context(), teamID)
	if err != nil {
		h.logger.Errorw("Failed to load roster", "team", teamID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	h.jsonResponse(w, http.StatusOK, roster)
}

// GetPlayer handles GET /api/v1/players/{playerID}
// @Summary Get one player with full stats
// @Tags Roster
// @Produce json
// @Param playerID path string true "Player ID"
// @Success 200 {object} models.Player
// @Failure 404 {object} map[string]string "Not Found"
// @Router /players/{playerID} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	player, err := h.roster.GetPlayer(r.Context(), playerID)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, "Player not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, player)
}
