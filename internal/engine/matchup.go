package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/cuecaptain/captain-api/internal/models"
)

// lookupH2H fetches the directional record for a pairing; nil when the two
// players have never met.
func lookupH2H(h2h models.HeadToHeadMap, playerID, opponentID string) *models.HeadToHead {
	if h2h == nil {
		return nil
	}
	return h2h[models.PairKey{PlayerID: playerID, OpponentID: opponentID}]
}

// RankMatchups evaluates every available player against one fixed opponent
// and returns recommendations sorted descending by win probability. The sort
// is stable: ties keep roster order.
func RankMatchups(available []models.Player, opponent models.Player, h2h models.HeadToHeadMap) []models.MatchupRecommendation {
	recs := make([]models.MatchupRecommendation, 0, len(available))

	for _, p := range available {
		record := lookupH2H(h2h, p.ID, opponent.ID)
		result := CalculateWinProbability(p, opponent, record)

		recs = append(recs, models.MatchupRecommendation{
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			WinProbability: round2(result.Probability),
			Confidence:     round2(result.Confidence),
			Reasoning:      BuildReasoning(p, opponent, result.Factors, record),
			Factors:        result.Factors,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].WinProbability > recs[j].WinProbability
	})

	return recs
}

// BestOpener picks the player whose average win probability across every
// possible opponent is highest. Returns nil when either pool is empty.
// Opener picks carry a fixed confidence: averaging over unknown opponents is
// inherently less certain than a single-matchup read.
func BestOpener(available, opponents []models.Player, h2h models.HeadToHeadMap) *models.MatchupRecommendation {
	if len(available) == 0 || len(opponents) == 0 {
		return nil
	}

	var best *models.MatchupRecommendation
	for _, p := range available {
		var sum float64
		var factors models.FactorScores
		for _, o := range opponents {
			result := CalculateWinProbability(p, o, lookupH2H(h2h, p.ID, o.ID))
			sum += result.Probability
			factors.Skill += result.Factors.Skill
			factors.WinPct += result.Factors.WinPct
			factors.H2H += result.Factors.H2H
			factors.Form += result.Factors.Form
			factors.PPM += result.Factors.PPM
		}

		n := float64(len(opponents))
		avg := sum / n
		factors.Skill /= n
		factors.WinPct /= n
		factors.H2H /= n
		factors.Form /= n
		factors.PPM /= n

		if best == nil || avg > best.WinProbability {
			best = &models.MatchupRecommendation{
				PlayerID:       p.ID,
				PlayerName:     p.Name,
				WinProbability: avg,
				Confidence:     OpenerConfidence,
				Reasoning: []string{fmt.Sprintf(
					"%s averages the best win probability across all %d possible opponents",
					p.Name, len(opponents))},
				Factors: factors,
			}
		}
	}

	best.WinProbability = round2(best.WinProbability)
	return best
}

// AnalyzeThrowFirstAdvantage scores the two coin-toss strategies: throw our
// best opener first, or defer and counter-pick against theirs. Inputs are
// never mutated. On a tie the strict comparison favors deferring.
func AnalyzeThrowFirstAdvantage(ourPlayers, theirPlayers []models.Player, h2h models.HeadToHeadMap) models.ThrowFirstAnalysis {
	ourBest := BestOpener(ourPlayers, theirPlayers, h2h)
	theirBest := BestOpener(theirPlayers, ourPlayers, h2h)

	ourProb := 0.5
	if ourBest != nil {
		ourProb = ourBest.WinProbability
	}
	// theirThreat is the opposing best opener's own chance of winning.
	theirThreat := 0.5
	if theirBest != nil {
		theirThreat = theirBest.WinProbability
	}

	throwFirst := OpenerWeight*ourProb + ThrowFirstBase
	deferScore := CounterWeight*(1-theirThreat) + CounterBase

	analysis := models.ThrowFirstAnalysis{
		ThrowFirstScore: round2(throwFirst),
		DeferScore:      round2(deferScore),
	}

	if throwFirst > deferScore {
		analysis.Recommendation = "throw_first"
		analysis.Reasoning = []string{
			"Our best opener wins often enough to set the tone",
		}
		if ourBest != nil {
			analysis.Reasoning = append(analysis.Reasoning, fmt.Sprintf(
				"%s averages %.0f%% across their lineup", ourBest.PlayerName, ourProb*100))
		}
	} else {
		analysis.Recommendation = "defer"
		analysis.Reasoning = []string{
			"Seeing their pick first lets us counter with a favorable matchup",
		}
	}

	return analysis
}

// MatchWinProbability estimates the chance of winning the team match from
// the current score. Remaining games are modeled as independent Bernoulli
// trials at the averaged pairwise probability, with the cumulative binomial
// chance of taking at least the games still needed.
//
// The trial count is min(ourRemaining, theirRemaining), which undercounts
// when one side has exhausted its roster; preserved as-is pending a ruling
// from the league stats group.
func MatchWinProbability(ourScore, theirScore int, ourRemaining, theirRemaining []models.Player, h2h models.HeadToHeadMap) float64 {
	if ourScore >= models.GamesToWin {
		return 1
	}
	if theirScore >= models.GamesToWin {
		return 0
	}

	avg := averagePairwiseProbability(ourRemaining, theirRemaining, h2h)

	needed := models.GamesToWin - ourScore
	trials := len(ourRemaining)
	if len(theirRemaining) < trials {
		trials = len(theirRemaining)
	}

	p := binomialAtLeast(trials, needed, avg)
	return clamp(p, MatchProbMin, MatchProbMax)
}

// averagePairwiseProbability is the mean win probability over the full
// cross-product of remaining players. Neutral 0.5 when either side is empty;
// averages over empty collections must never divide by zero.
func averagePairwiseProbability(ours, theirs []models.Player, h2h models.HeadToHeadMap) float64 {
	if len(ours) == 0 || len(theirs) == 0 {
		return 0.5
	}

	var sum float64
	for _, p := range ours {
		for _, o := range theirs {
			sum += CalculateWinProbability(p, o, lookupH2H(h2h, p.ID, o.ID)).Probability
		}
	}
	return sum / float64(len(ours)*len(theirs))
}

// binomialAtLeast is P(X >= k) for X ~ Binomial(n, p).
func binomialAtLeast(n, k int, p float64) float64 {
	if k <= 0 {
		return 1
	}
	if n < k {
		return 0
	}

	var total float64
	for i := k; i <= n; i++ {
		total += binomialCoefficient(n, i) * math.Pow(p, float64(i)) * math.Pow(1-p, float64(n-i))
	}
	return total
}

func binomialCoefficient(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1.0
	for i := 0; i < k; i++ {
		c = c * float64(n-i) / float64(i+1)
	}
	return c
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
