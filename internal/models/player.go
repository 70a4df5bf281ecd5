package models

// SeasonStats holds a player's record for one league session (period).
type SeasonStats struct {
	MatchesPlayed  int     `json:"matches_played"`
	MatchesWon     int     `json:"matches_won"`
	PointsPerMatch float64 `json:"points_per_match"`
	PointsAllowed  float64 `json:"points_allowed"` // defensive metric, fraction 0-1
}

// WinPct returns the win percentage (0-100) derived from the match counts.
// Never stored; always derived so it cannot drift from the counts.
func (s SeasonStats) WinPct() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.MatchesPlayed) * 100
}

// WinRate returns the win rate as a 0-1 fraction.
func (s SeasonStats) WinRate() float64 {
	if s.MatchesPlayed == 0 {
		return 0
	}
	return float64(s.MatchesWon) / float64(s.MatchesPlayed)
}

// CareerStats holds lifetime aggregates across all sessions.
type CareerStats struct {
	Matches      int     `json:"matches"`
	WinPct       float64 `json:"win_pct"`
	DefensiveAvg float64 `json:"defensive_avg"`
	BreakAndRuns int     `json:"break_and_runs"`
	NineOnSnaps  int     `json:"nine_on_snaps"`
}

// Player is a roster member. Season, Recent and Career are optional
// enrichments; the engine degrades gracefully when they are nil/empty.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TeamID     string `json:"team_id"`
	SkillLevel int    `json:"skill_level"`

	Season *SeasonStats  `json:"season,omitempty"`
	Recent []SeasonStats `json:"recent,omitempty"`
	Career *CareerStats  `json:"career,omitempty"`
}
