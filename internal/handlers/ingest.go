package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/cuecaptain/captain-api/internal/models"
)

// IngestResults handles POST /api/v1/ingest/results
// @Summary Ingest Game Results
// @Description Accepts newline-separated JSON game results from scorekeeper clients
// @Tags Ingestion
// @Accept json
// @Produce json
// @Security ScorekeeperToken
// @Param body body []models.GameResultEvent true "Results"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /ingest/results [post]
func (h *Handler) IngestResults(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	lines := strings.Split(string(body), "\n")
	processed := 0
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var event models.GameResultEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			h.logger.Warnw("Failed to unmarshal result in batch", "error", err, "lineNum", i)
			continue
		}

		if err := h.validator.Struct(&event); err != nil {
			h.logger.Warnw("Validation failed for result", "error", err, "lineNum", i, "match_id", event.MatchID)
			continue
		}

		if !h.pool.Enqueue(&event) {
			h.logger.Warn("Worker pool shutting down, dropping remaining results in batch")
			break
		}
		processed++
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "accepted",
		"processed": processed,
	})
}
