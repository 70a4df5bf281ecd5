package logic

import (
	"fmt"
	"time"
)

// DynamicQueryRequest holds parameters for constructing a stats query
type DynamicQueryRequest struct {
	Dimension      string    `json:"dimension"`       // Group by: player, opponent, session, skill_level
	Metric         string    `json:"metric"`          // Select: games, wins, win_pct, points, avg_points
	FilterPlayer   string    `json:"filter_player"`   // WHERE player_id = ?
	FilterOpponent string    `json:"filter_opponent"` // WHERE opponent_id = ?
	FilterMatch    string    `json:"filter_match"`    // WHERE match_id = ?
	FilterSession  string    `json:"filter_session"`  // WHERE session = ?
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Limit          int       `json:"limit"`
}

// allowedDimensions maps safe API values to SQL columns
var allowedDimensions = map[string]string{
	"player":      "player_id",
	"opponent":    "opponent_id",
	"match":       "match_id",
	"session":     "session",
	"skill_level": "skill_level",
}

// BuildStatsQuery constructs a safe ClickHouse SQL query over game results.
// Dimension and metric values are whitelisted; everything user-supplied goes
// through bind parameters.
func BuildStatsQuery(req DynamicQueryRequest) (string, []interface{}, error) {
	// 1. Validate Dimension
	groupByCol, ok := allowedDimensions[req.Dimension]
	if !ok && req.Dimension != "" {
		return "", nil, fmt.Errorf("invalid dimension: %s", req.Dimension)
	}

	// 2. Select Clause (Metric)
	// Everything goes through toFloat64 so callers can scan one type.
	var selectClause string
	switch req.Metric {
	case "games":
		selectClause = "toFloat64(count())"
	case "wins":
		selectClause = "toFloat64(countIf(player_won = 1))"
	case "win_pct":
		selectClause = "toFloat64(countIf(player_won = 1)) / max(1, count()) * 100"
	case "points":
		selectClause = "toFloat64(sum(points_scored))"
	case "avg_points":
		selectClause = "avg(points_scored)"
	case "break_and_runs":
		selectClause = "toFloat64(countIf(break_and_run = 1))"
	case "nine_on_snaps":
		selectClause = "toFloat64(countIf(nine_on_snap = 1))"
	default:
		selectClause = "toFloat64(count())"
	}

	// 3. Build Query
	query := fmt.Sprintf("SELECT %s as value", selectClause)
	var args []interface{}

	if groupByCol != "" {
		// toString keeps the label scannable regardless of column type
		// (skill_level is UInt8, match_id is UUID)
		query += fmt.Sprintf(", toString(%s) as label", groupByCol)
	} else {
		query += ", 'all' as label"
	}

	query += " FROM league_stats.game_results WHERE 1=1"

	// 4. Filters
	if req.FilterPlayer != "" {
		query += " AND player_id = ?"
		args = append(args, req.FilterPlayer)
	}
	if req.FilterOpponent != "" {
		query += " AND opponent_id = ?"
		args = append(args, req.FilterOpponent)
	}
	if req.FilterMatch != "" {
		query += " AND match_id = ?"
		args = append(args, req.FilterMatch)
	}
	if req.FilterSession != "" {
		query += " AND session = ?"
		args = append(args, req.FilterSession)
	}
	if !req.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, req.StartDate)
	}
	if !req.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, req.EndDate)
	}

	// 5. Group By
	if groupByCol != "" {
		query += fmt.Sprintf(" GROUP BY %s", groupByCol)
	}

	// 6. Order By
	query += " ORDER BY value DESC"

	// 7. Limit
	limit := req.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	return query, args, nil
}
