package handlers

import (
	"net/http"
)

// RankMatchups handles GET /api/v1/matchups/rank
// @Summary Rank roster against a known opponent
// @Description Orders a team's players by estimated win probability against one opposing player
// @Tags Matchups
// @Produce json
// @Param team_id query string true "Team ID"
// @Param opponent_id query string true "Opposing player ID"
// @Success 200 {array} models.MatchupRecommendation
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /matchups/rank [get]
func (h *Handler) RankMatchups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teamID := q.Get("team_id")
	opponentID := q.Get("opponent_id")
	if teamID == "" || opponentID == "" {
		h.errorResponse(w, http.StatusBadRequest, "team_id and opponent_id are required")
		return
	}

	ranked, err := h.matchup.RankAgainstOpponent(r.Context(), teamID, opponentID)
	if err != nil {
		h.logger.Errorw("Failed to rank matchups", "team", teamID, "opponent", opponentID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to rank matchups")
		return
	}

	h.jsonResponse(w, http.StatusOK, ranked)
}

// BestOpener handles GET /api/v1/matchups/opener
// @Summary Recommend an opening player
// @Description Suggests who to put up first before any opposing player is known
// @Tags Matchups
// @Produce json
// @Param team_id query string true "Team ID"
// @Param their_team_id query string true "Opposing team ID"
// @Success 200 {object} models.MatchupRecommendation
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /matchups/opener [get]
func (h *Handler) BestOpener(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teamID := q.Get("team_id")
	theirTeamID := q.Get("their_team_id")
	if teamID == "" || theirTeamID == "" {
		h.errorResponse(w, http.StatusBadRequest, "team_id and their_team_id are required")
		return
	}

	opener, err := h.matchup.BestOpener(r.Context(), teamID, theirTeamID)
	if err != nil {
		h.logger.Errorw("Failed to pick opener", "team", teamID, "theirTeam", theirTeamID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to pick opener")
		return
	}

	h.jsonResponse(w, http.StatusOK, opener)
}
