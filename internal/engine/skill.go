package engine

// Handicap tables for the two league formats. Nine-ball is the primary
// variant: skill levels 1-9, point targets per match. Eight-ball uses levels
// 2-7 and counts racks instead of points.
//
// Unknown or out-of-range skill levels resolve to the mid-table default
// rather than erroring; a recommendation is never blocked on bad roster data.

var nineBallPointsNeeded = map[int]int{
	1: 14,
	2: 19,
	3: 25,
	4: 31,
	5: 38,
	6: 46,
	7: 55,
	8: 65,
	9: 75,
}

var eightBallRacksNeeded = map[int]int{
	2: 2,
	3: 2,
	4: 3,
	5: 3,
	6: 4,
	7: 5,
}

// Expected offensive output per match for an average player at each tier.
var nineBallExpectedPPM = map[int]float64{
	1: 8,
	2: 10,
	3: 12,
	4: 14,
	5: 16,
	6: 18,
	7: 20,
	8: 22,
	9: 24,
}

const (
	defaultPointsNeeded = 38 // level 5
	defaultRacksNeeded  = 3
	defaultExpectedPPM  = 16
)

// PointsNeeded returns the nine-ball point target for a skill level.
func PointsNeeded(skillLevel int) int {
	if p, ok := nineBallPointsNeeded[skillLevel]; ok {
		return p
	}
	return defaultPointsNeeded
}

// RacksNeeded returns the eight-ball rack target for a skill level.
func RacksNeeded(skillLevel int) int {
	if r, ok := eightBallRacksNeeded[skillLevel]; ok {
		return r
	}
	return defaultRacksNeeded
}

// ExpectedPointsPerMatch returns the average per-match point output expected
// at a skill level.
func ExpectedPointsPerMatch(skillLevel int) float64 {
	if p, ok := nineBallExpectedPPM[skillLevel]; ok {
		return p
	}
	return defaultExpectedPPM
}

// BaseWinProbability estimates a win probability from skill levels alone.
// The handicap system targets parity, so the base is 0.5; two adjustments
// are applied on top:
//
//   - a small per-level edge for the higher-skill player (higher-skill
//     players are more consistent even when the race is handicapped), and
//   - a bonus proportional to how much larger the opponent's point target is
//     than ours (a bigger opposing target leaves us more room for error).
//
// The result is clamped to [0.2, 0.8]; skill alone never decides a matchup.
func BaseWinProbability(skillLevel, opponentSkillLevel int) float64 {
	p := 0.5

	p += SkillLevelEdge * float64(skillLevel-opponentSkillLevel)

	ourTarget := float64(PointsNeeded(skillLevel))
	oppTarget := float64(PointsNeeded(opponentSkillLevel))
	if ourTarget > 0 {
		p += (oppTarget/ourTarget - 1) * TargetRatioScale
	}

	return clamp(p, SkillProbMin, SkillProbMax)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
