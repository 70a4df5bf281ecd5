package engine

import (
	"math"
	"sort"

	"github.com/cuecaptain/captain-api/internal/models"
)

// AvailablePlayers filters the present roster down to players not yet
// assigned to a completed game slot on the given side. A player listed in
// the in-progress (pending) slot is still considered available: the pending
// assignment is exactly what throw recommendations are deciding.
func AvailablePlayers(present []models.Player, match *models.LiveMatch, side models.Side) []models.Player {
	if match == nil {
		return present
	}

	used := make(map[string]bool, models.MatchGameCount)
	for _, g := range match.Games {
		if !g.Result.Decided() {
			continue
		}
		if side == models.SideOurs {
			if g.OurPlayerID != "" {
				used[g.OurPlayerID] = true
			}
		} else {
			if g.TheirPlayerID != "" {
				used[g.TheirPlayerID] = true
			}
		}
	}

	avail := make([]models.Player, 0, len(present))
	for _, p := range present {
		if !used[p.ID] {
			avail = append(avail, p)
		}
	}
	return avail
}

// RecommendCoinToss advises the opening coin-toss decision. When the
// analysis says to throw first it also suggests who. Display confidence
// scales with the gap between the two strategy scores, capped at 0.95.
func RecommendCoinToss(ourPlayers, theirPlayers []models.Player, h2h models.HeadToHeadMap) models.CoinTossRecommendation {
	analysis := AnalyzeThrowFirstAdvantage(ourPlayers, theirPlayers, h2h)

	rec := models.CoinTossRecommendation{
		Analysis: analysis,
		Confidence: math.Min(
			CoinTossConfidenceBase+math.Abs(analysis.ThrowFirstScore-analysis.DeferScore)*CoinTossConfidenceScale,
			CoinTossConfidenceCap),
	}

	if analysis.Recommendation == "throw_first" {
		rec.SuggestedFirst = BestOpener(ourPlayers, theirPlayers, h2h)
	}

	return rec
}

// RecommendThrow ranks our available players for the next game. With the
// opponent's pick known this is a straight single-opponent ranking. Blind
// (we must commit before they do), each player is scored on their average
// probability across every available opponent; per-opponent factor
// breakdowns are meaningless for an average, so all factors report neutral
// and the confidence is a fixed blind-pick value.
func RecommendThrow(ourAvailable, theirAvailable []models.Player, knownOpponent *models.Player, h2h models.HeadToHeadMap) []models.MatchupRecommendation {
	if knownOpponent != nil {
		return RankMatchups(ourAvailable, *knownOpponent, h2h)
	}

	if len(theirAvailable) == 0 {
		return []models.MatchupRecommendation{}
	}

	recs := make([]models.MatchupRecommendation, 0, len(ourAvailable))
	for _, p := range ourAvailable {
		var sum float64
		for _, o := range theirAvailable {
			sum += CalculateWinProbability(p, o, lookupH2H(h2h, p.ID, o.ID)).Probability
		}
		avg := sum / float64(len(theirAvailable))

		recs = append(recs, models.MatchupRecommendation{
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			WinProbability: round2(avg),
			Confidence:     BlindConfidence,
			Reasoning: []string{
				"Ranked on average probability across all available opponents",
			},
			Factors: models.FactorScores{Skill: 0.5, WinPct: 0.5, H2H: 0.5, Form: 0.5, PPM: 0.5},
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].WinProbability > recs[j].WinProbability
	})
	return recs
}

// MatchStateAdvice returns textual guidance for the current score. A small
// deterministic rule table keyed on differential and games remaining.
func MatchStateAdvice(match *models.LiveMatch) []string {
	if match == nil {
		return nil
	}

	diff := match.OurScore - match.TheirScore
	remaining := models.MatchGameCount - match.OurScore - match.TheirScore

	advice := make([]string, 0, 2)
	switch {
	case match.OurScore >= models.GamesToWin:
		advice = append(advice, "Match is won. Nothing left to decide.")
	case match.TheirScore >= models.GamesToWin:
		advice = append(advice, "Match is lost. Note matchups for next time.")
	case diff >= 2:
		advice = append(advice, "Up by two or more: you can take risks and develop your lower skill levels.")
	case diff == 1:
		advice = append(advice, "One game up: keep throwing your favorable matchups.")
	case diff == 0:
		advice = append(advice, "Tied match: every game is crucial, pick the highest-probability throw.")
	case match.TheirScore == models.GamesToWin-1:
		advice = append(advice, "Must-win territory: no room for strategic saves, throw to win now.")
	default:
		advice = append(advice, "Behind but alive: prioritize your strongest remaining matchup.")
	}

	if remaining == 1 && match.OurScore < models.GamesToWin && match.TheirScore < models.GamesToWin {
		advice = append(advice, "Final game decides the match.")
	}

	return advice
}
