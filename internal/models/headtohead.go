package models

import "time"

// PairKey identifies a directional player/opponent pairing. A struct key
// avoids the collision and formatting bugs of concatenated string keys.
type PairKey struct {
	PlayerID   string
	OpponentID string
}

// HeadToHead is the cumulative record between two specific players, from the
// perspective of PairKey.PlayerID. Averages are incrementally maintained
// running means; they must be updated one game at a time via RecordGame or
// they lose their meaning.
type HeadToHead struct {
	TotalGames      int       `json:"total_games"`
	Wins            int       `json:"wins"`
	Losses          int       `json:"losses"`
	AvgPointsScored float64   `json:"avg_points_scored"`
	AvgPointsNeeded float64   `json:"avg_points_needed"`
	LastPlayed      time.Time `json:"last_played"`
}

// WinRate returns the raw head-to-head win rate as a 0-1 fraction.
func (h *HeadToHead) WinRate() float64 {
	if h.TotalGames == 0 {
		return 0
	}
	return float64(h.Wins) / float64(h.TotalGames)
}

// RecordGame folds a single game into the record. Running means only stay
// correct when games are applied individually, in order.
func (h *HeadToHead) RecordGame(won bool, pointsScored, pointsNeeded int, playedAt time.Time) {
	n := float64(h.TotalGames)
	h.AvgPointsScored = (h.AvgPointsScored*n + float64(pointsScored)) / (n + 1)
	h.AvgPointsNeeded = (h.AvgPointsNeeded*n + float64(pointsNeeded)) / (n + 1)

	h.TotalGames++
	if won {
		h.Wins++
	} else {
		h.Losses++
	}
	if playedAt.After(h.LastPlayed) {
		h.LastPlayed = playedAt
	}
}

// HeadToHeadMap is the lookup the engine receives; missing pairs simply mean
// the two players have never met.
type HeadToHeadMap map[PairKey]*HeadToHead
