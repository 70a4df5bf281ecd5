package models

// FactorScores are the five component probabilities of the win model, each
// centered at the 0.5 no-information prior.
type FactorScores struct {
	Skill  float64 `json:"skill"`
	WinPct float64 `json:"win_pct"`
	H2H    float64 `json:"h2h"`
	Form   float64 `json:"form"`
	PPM    float64 `json:"ppm"`
}

// WinProbabilityResult is the full output of one pairwise model evaluation.
type WinProbabilityResult struct {
	Probability float64      `json:"probability"`
	Confidence  float64      `json:"confidence"`
	Factors     FactorScores `json:"factors"`
	DataPoints  float64      `json:"data_points"`
}

// MatchupRecommendation is one ranked candidate in a matchup query.
// Constructed fresh per query and never persisted by the engine.
type MatchupRecommendation struct {
	PlayerID       string       `json:"player_id"`
	PlayerName     string       `json:"player_name"`
	WinProbability float64      `json:"win_probability"`
	Confidence     float64      `json:"confidence"`
	Reasoning      []string     `json:"reasoning"`
	Factors        FactorScores `json:"factors"`
}

// ThrowFirstAnalysis scores the two coin-toss strategies.
type ThrowFirstAnalysis struct {
	ThrowFirstScore float64  `json:"throw_first_score"`
	DeferScore      float64  `json:"defer_score"`
	Recommendation  string   `json:"recommendation"` // "throw_first" or "defer"
	Reasoning       []string `json:"reasoning"`
}

// CoinTossRecommendation is the advisor's answer for the opening decision.
type CoinTossRecommendation struct {
	Analysis       ThrowFirstAnalysis     `json:"analysis"`
	SuggestedFirst *MatchupRecommendation `json:"suggested_first,omitempty"`
	Confidence     float64                `json:"confidence"`
}
