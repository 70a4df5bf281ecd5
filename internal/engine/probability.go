package engine

import "github.com/cuecaptain/captain-api/internal/models"

// factor is one piece of evidence in probability space: a value centered at
// the 0.5 no-information prior, and the number of evidentiary units backing
// it. Missing inputs produce (0.5, 0) so the factor contributes its weight
// neutrally and nothing to confidence.
type factor struct {
	value float64
	units float64
}

var neutralFactor = factor{value: 0.5, units: 0}

// CalculateWinProbability blends five independent evidence factors into one
// calibrated probability that player beats opponent. Missing data never
// produces an error; each absent input collapses its factor to neutral.
func CalculateWinProbability(player, opponent models.Player, h2h *models.HeadToHead) models.WinProbabilityResult {
	skill := skillFactor(player, opponent)
	winPct := winPctFactor(player, opponent)
	head := h2hFactor(h2h)
	form := formFactor(player, opponent)
	ppm := ppmFactor(player, opponent)

	blended := WeightSkill*skill.value +
		WeightWinPct*winPct.value +
		WeightH2H*head.value +
		WeightForm*form.value +
		WeightPPM*ppm.value

	units := skill.units + winPct.units + head.units + form.units + ppm.units

	confidence := units / ConfidenceSaturation
	if confidence > 1 {
		confidence = 1
	}

	return models.WinProbabilityResult{
		Probability: clamp(blended, FinalProbMin, FinalProbMax),
		Confidence:  confidence,
		DataPoints:  units,
		Factors: models.FactorScores{
			Skill:  skill.value,
			WinPct: winPct.value,
			H2H:    head.value,
			Form:   form.value,
			PPM:    ppm.value,
		},
	}
}

// skillFactor is always computable; the roster at minimum carries skill
// levels.
func skillFactor(player, opponent models.Player) factor {
	return factor{
		value: BaseWinProbability(player.SkillLevel, opponent.SkillLevel),
		units: UnitsSkill,
	}
}

// winPctFactor compares current-session win rates. Requires at least one
// match played on each side.
func winPctFactor(player, opponent models.Player) factor {
	if player.Season == nil || opponent.Season == nil {
		return neutralFactor
	}
	if player.Season.MatchesPlayed == 0 || opponent.Season.MatchesPlayed == 0 {
		return neutralFactor
	}

	delta := player.Season.WinRate() - opponent.Season.WinRate()
	return factor{
		value: clamp(0.5+delta*0.5, WinPctProbMin, WinPctProbMax),
		units: UnitsWinPct,
	}
}

// h2hFactor regresses the raw head-to-head win rate toward 0.5 by
// min(games/10, 1), so a single prior meeting barely moves the estimate
// while ten or more are taken near face value.
func h2hFactor(h2h *models.HeadToHead) factor {
	if h2h == nil || h2h.TotalGames == 0 {
		return neutralFactor
	}

	shrink := float64(h2h.TotalGames) / H2HShrinkGames
	if shrink > 1 {
		shrink = 1
	}
	value := 0.5 + (h2h.WinRate()-0.5)*shrink

	return factor{value: value, units: float64(h2h.TotalGames)}
}

// formFactor measures momentum: how each side's recent win rate compares to
// their season rate. Requires recent stats for the player; the opponent's
// side of the delta is zero when theirs are absent.
func formFactor(player, opponent models.Player) factor {
	if len(player.Recent) == 0 {
		return neutralFactor
	}

	delta := momentum(player) - momentum(opponent)
	return factor{
		value: clamp(0.5+delta*FormMomentumScale, FormProbMin, FormProbMax),
		units: float64(len(player.Recent)),
	}
}

// momentum is the recent-vs-season win-rate delta for one player, 0 when
// either side of the comparison is unavailable.
func momentum(p models.Player) float64 {
	if len(p.Recent) == 0 || p.Season == nil || p.Season.MatchesPlayed == 0 {
		return 0
	}

	var played, won int
	for _, s := range p.Recent {
		played += s.MatchesPlayed
		won += s.MatchesWon
	}
	if played == 0 {
		return 0
	}

	return float64(won)/float64(played) - p.Season.WinRate()
}

// ppmFactor compares offensive efficiency: each side's points-per-match
// against the expected output for their skill level. Requires current
// session stats for both sides.
func ppmFactor(player, opponent models.Player) factor {
	if player.Season == nil || opponent.Season == nil {
		return neutralFactor
	}

	pExp := ExpectedPointsPerMatch(player.SkillLevel)
	oExp := ExpectedPointsPerMatch(opponent.SkillLevel)
	if pExp == 0 || oExp == 0 {
		return neutralFactor
	}

	gap := player.Season.PointsPerMatch/pExp - opponent.Season.PointsPerMatch/oExp
	return factor{
		value: clamp(0.5+gap*PPMEfficiencyScale, PPMProbMin, PPMProbMax),
		units: UnitsPPM,
	}
}
