package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type registerScorekeeperRequest struct {
	TeamID string `json:"team_id"`
	Label  string `json:"label"`
}

type registerScorekeeperResponse struct {
	TokenID string `json:"token_id"`
	Token   string `json:"token"`
}

// RegisterScorekeeper handles new scorekeeper token issuance
// @Summary Register Scorekeeper
// @Description Issues a new scorekeeper token for a team. The plaintext token is returned once; only its hash is stored.
// @Tags Scorekeepers
// @Accept json
// @Produce json
// @Param body body registerScorekeeperRequest true "Team Info"
// @Success 200 {object} registerScorekeeperResponse "Scorekeeper Credentials"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /scorekeepers/register [post]
func (h *Handler) RegisterScorekeeper(w http.ResponseWriter, r *http.Request) {
	var req registerScorekeeperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.TeamID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Team ID is required")
		return
	}

	// Generate ID and Token
	tokenID := uuid.New().String()
	token := uuid.New().String()

	// Store only the hash
	_, err := h.pg.Exec(r.Context(), `
		INSERT INTO scorekeeper_tokens (id, team_id, label, token, is_active, created_at)
		VALUES ($1, $2, $3, $4, true, NOW())
	`, tokenID, req.TeamID, req.Label, hashToken(token))

	if err != nil {
		h.logger.Errorw("Failed to register scorekeeper", "team", req.TeamID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to register scorekeeper")
		return
	}

	// Return credentials
	h.jsonResponse(w, http.StatusOK, registerScorekeeperResponse{
		TokenID: tokenID,
		Token:   token,
	})
}
