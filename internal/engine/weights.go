// Package engine implements the matchup recommendation core: skill-level
// handicap tables, the five-factor win-probability model, matchup
// aggregation and live-match advice. Everything in this package is a pure
// function of its inputs, with no I/O and no shared state, so it is safe to
// call concurrently and trivial to unit test.
package engine

// Factor blend weights for the final probability. They sum to 1.0.
// Hand-tuned policy values, not fitted coefficients; kept here as a single
// table so they can be adjusted without touching the algorithm structure.
const (
	WeightSkill  = 0.35
	WeightWinPct = 0.25
	WeightH2H    = 0.20
	WeightForm   = 0.15
	WeightPPM    = 0.05
)

// Evidentiary units contributed by each factor when its inputs are present.
// Head-to-head contributes its game count; form contributes the length of
// the recent-stats array.
const (
	UnitsSkill  = 1.0
	UnitsWinPct = 2.0
	UnitsPPM    = 2.0
)

// ConfidenceSaturation is the evidentiary-unit count at which confidence
// reaches 1.0. A UI-facing heuristic, not a calibrated interval.
const ConfidenceSaturation = 50.0

// Per-factor clamp ranges. The model never asserts a matchup is unwinnable
// or a lock.
const (
	SkillProbMin = 0.2
	SkillProbMax = 0.8

	WinPctProbMin = 0.2
	WinPctProbMax = 0.8

	FormProbMin = 0.3
	FormProbMax = 0.7

	PPMProbMin = 0.3
	PPMProbMax = 0.7
)

// Hard output range for the blended probability.
const (
	FinalProbMin = 0.15
	FinalProbMax = 0.85
)

// Skill-advantage adjustments inside BaseWinProbability.
const (
	// Per-level consistency edge for the higher-skill player despite
	// nominal handicap parity.
	SkillLevelEdge = 0.015
	// Scale on the points-target ratio bonus: more room for error when the
	// opponent's target is larger.
	TargetRatioScale = 0.1
)

// H2HShrinkGames is the sample size at which a head-to-head record is taken
// at face value; smaller samples are regressed toward 0.5.
const H2HShrinkGames = 10.0

// FormMomentumScale multiplies the recent-vs-season win-rate delta.
const FormMomentumScale = 2.0

// PPMEfficiencyScale multiplies the relative efficiency gap.
const PPMEfficiencyScale = 0.25

// Throw-first strategy scoring. ThrowFirstScore = OpenerWeight*bestOpener +
// ThrowFirstBase; DeferScore = CounterWeight*(1-theirThreat) + CounterBase.
const (
	OpenerWeight   = 0.6
	ThrowFirstBase = 0.2
	CounterWeight  = 0.4
	CounterBase    = 0.33
)

// Fixed display confidences for aggregate recommendations, where a
// per-opponent confidence is not meaningful.
const (
	OpenerConfidence = 0.7
	BlindConfidence  = 0.65
)

// CoinTossConfidenceCap bounds the confidence derived from the strategy
// score gap.
const (
	CoinTossConfidenceBase  = 0.5
	CoinTossConfidenceScale = 3.0
	CoinTossConfidenceCap   = 0.95
)

// Match win probability clamp.
const (
	MatchProbMin = 0.05
	MatchProbMax = 0.95
)
