package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuecaptain/captain-api/internal/models"
)

// CreateMatch handles POST /api/v1/matches
// @Summary Start tracking a live match
// @Tags Matches
// @Security ScorekeeperToken
// @Accept json
// @Produce json
// @Param body body models.LiveMatch true "Match"
// @Success 201 {object} models.LiveMatch
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /matches [post]
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var match models.LiveMatch
	if err := json.NewDecoder(r.Body).Decode(&match); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if match.MatchID == "" || match.OurTeamID == "" || match.TheirTeamID == "" {
		h.errorResponse(w, http.StatusBadRequest, "match_id, our_team_id and their_team_id are required")
		return
	}

	// Scorekeepers may only open matches for their own team
	if teamID, ok := r.Context().Value(teamIDKey).(string); ok && teamID != "" && teamID != match.OurTeamID {
		h.errorResponse(w, http.StatusForbidden, "Token not valid for this team")
		return
	}

	if err := h.liveMatch.Save(r.Context(), &match); err != nil {
		h.logger.Errorw("Failed to save live match", "match_id", match.MatchID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to save match")
		return
	}

	h.jsonResponse(w, http.StatusCreated, match)
}

// GetMatch handles GET /api/v1/matches/{matchID}
// @Summary Get a live match snapshot
// @Tags Matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} models.LiveMatch
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchID} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	match, err := h.liveMatch.Get(r.Context(), matchID)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, match)
}

// CoinToss handles GET /api/v1/matches/{matchID}/cointoss
// @Summary Coin-toss recommendation
// @Description Advises whether to throw first or defer after winning the toss
// @Tags Matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} models.CoinTossRecommendation
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchID}/cointoss [get]
func (h *Handler) CoinToss(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	rec, err := h.matchup.CoinToss(r.Context(), matchID)
	if err != nil {
		h.logger.Errorw("Failed to advise coin toss", "match_id", matchID, "error", err)
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, rec)
}

// ThrowRecommendation handles GET /api/v1/matches/{matchID}/throw
// @Summary Rank available players for the next game
// @Description Pass opponent_id when the other side has already thrown; omit it for a blind ranking
// @Tags Matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Param opponent_id query string false "Known opposing player ID"
// @Success 200 {array} models.MatchupRecommendation
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchID}/throw [get]
func (h *Handler) ThrowRecommendation(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	opponentID := r.URL.Query().Get("opponent_id")

	recs, err := h.matchup.ThrowRecommendation(r.Context(), matchID, opponentID)
	if err != nil {
		h.logger.Errorw("Failed to rank throw options", "match_id", matchID, "error", err)
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, recs)
}

// MatchWinProbability handles GET /api/v1/matches/{matchID}/winprob
// @Summary Estimate the team-match win probability
// @Tags Matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]float64
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchID}/winprob [get]
func (h *Handler) MatchWinProbability(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	prob, err := h.matchup.MatchWinProbability(r.Context(), matchID)
	if err != nil {
		h.logger.Errorw("Failed to compute match win probability", "match_id", matchID, "error", err)
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]float64{"win_probability": prob})
}

// MatchAdvice handles GET /api/v1/matches/{matchID}/advice
// @Summary Situational guidance for the current match state
// @Tags Matches
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string][]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /matches/{matchID}/advice [get]
func (h *Handler) MatchAdvice(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	advice, err := h.matchup.MatchAdvice(r.Context(), matchID)
	if err != nil {
		h.logger.Errorw("Failed to build match advice", "match_id", matchID, "error", err)
		h.errorResponse(w, http.StatusNotFound, "Match not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string][]string{"advice": advice})
}
