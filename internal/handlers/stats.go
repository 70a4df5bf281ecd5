package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cuecaptain/captain-api/internal/logic"
)

// GetDynamicStats handles flexible stats queries over the game-result history
// @Summary Dynamic stats breakdown
// @Description Groups game results by a whitelisted dimension and aggregates a whitelisted metric
// @Tags Stats
// @Produce json
// @Param dimension query string false "player | opponent | match | session | skill_level"
// @Param metric query string false "games | wins | win_pct | points | avg_points | break_and_runs | nine_on_snaps"
// @Success 200 {array} object
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /stats/breakdown [get]
func (h *Handler) GetDynamicStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Parse parameters
	req := logic.DynamicQueryRequest{
		Dimension:      q.Get("dimension"),
		Metric:         q.Get("metric"),
		FilterPlayer:   q.Get("filter_player"),
		FilterOpponent: q.Get("filter_opponent"),
		FilterMatch:    q.Get("filter_match"),
		FilterSession:  q.Get("filter_session"),
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = l
		}
	}

	if startStr := q.Get("start_date"); startStr != "" {
		if t, err := time.Parse(time.RFC3339, startStr); err == nil {
			req.StartDate = t
		}
	}
	if endStr := q.Get("end_date"); endStr != "" {
		if t, err := time.Parse(time.RFC3339, endStr); err == nil {
			req.EndDate = t
		}
	}

	// Build query
	sql, args, err := logic.BuildStatsQuery(req)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Execute
	ctx := r.Context()
	rows, err := h.ch.Query(ctx, sql, args...)
	if err != nil {
		h.logger.Errorw("Dynamic stats query failed", "error", err, "query", sql)
		h.errorResponse(w, http.StatusInternalServerError, "Query execution failed")
		return
	}
	defer rows.Close()

	// Generic result structure
	type Result struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	}

	var results []Result
	for rows.Next() {
		var res Result
		// Scan order must match the SELECT order in query_builder (value, label)
		if err := rows.Scan(&res.Value, &res.Label); err != nil {
			h.logger.Errorw("Failed to scan row", "error", err)
			continue
		}
		results = append(results, res)
	}

	h.jsonResponse(w, http.StatusOK, results)
}
