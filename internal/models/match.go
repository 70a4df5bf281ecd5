package models

import "time"

// GamesToWin is the team-match win threshold: best of 5 individual games.
const GamesToWin = 3

// MatchGameCount is the fixed number of game slots in a team match.
const MatchGameCount = 5

// GameOutcome is the tri-state result of one game slot.
type GameOutcome string

const (
	GamePending GameOutcome = "pending"
	GameWon     GameOutcome = "win"
	GameLost    GameOutcome = "loss"
)

// Decided reports whether a result has been recorded. The zero value counts
// as pending.
func (o GameOutcome) Decided() bool {
	return o == GameWon || o == GameLost
}

// Side distinguishes the two teams in a live match.
type Side string

const (
	SideOurs   Side = "ours"
	SideTheirs Side = "theirs"
)

// GameSlot is one of the five ordered games in a team match. Player IDs are
// empty until a captain assigns someone.
type GameSlot struct {
	OurPlayerID   string      `json:"our_player_id"`
	TheirPlayerID string      `json:"their_player_id"`
	Result        GameOutcome `json:"result"`
}

// LiveMatch is a snapshot of an in-progress team match. The engine treats it
// as read-only input; the worker and live-match service own its lifecycle.
type LiveMatch struct {
	MatchID     string                   `json:"match_id"`
	OurTeamID   string                   `json:"our_team_id"`
	TheirTeamID string                   `json:"their_team_id"`
	OurScore    int                      `json:"our_score"`
	TheirScore  int                      `json:"their_score"`
	Games       [MatchGameCount]GameSlot `json:"games"`
	StartedAt   time.Time                `json:"started_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// GameResultEvent is the raw payload a scorekeeper client posts after each
// game. Tablet clients may serialize numerics as quoted strings; the flex
// unmarshaler in flex_json.go coerces them.
type GameResultEvent struct {
	MatchID      string  `json:"match_id" validate:"required"`
	GameNumber   int     `json:"game_number" validate:"min=1,max=5"`
	Session      string  `json:"session"`
	PlayerID     string  `json:"player_id" validate:"required"`
	OpponentID   string  `json:"opponent_id" validate:"required"`
	SkillLevel   int     `json:"skill_level" validate:"omitempty,min=1,max=9"`
	PlayerWon    bool    `json:"player_won"`
	PointsScored int     `json:"points_scored"`
	PointsNeeded int     `json:"points_needed"`
	BreakAndRun  bool    `json:"break_and_run"`
	NineOnSnap   bool    `json:"nine_on_snap"`
	Timestamp    float64 `json:"timestamp"`
}
