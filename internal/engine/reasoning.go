package engine

import (
	"fmt"

	"github.com/cuecaptain/captain-api/internal/models"
)

// BuildReasoning renders the ordered justification list for a computed
// matchup. Purely presentational and deterministic: the same factors always
// produce the same strings.
func BuildReasoning(player, opponent models.Player, factors models.FactorScores, h2h *models.HeadToHead) []string {
	reasons := make([]string, 0, 4)

	switch {
	case player.SkillLevel < opponent.SkillLevel:
		reasons = append(reasons, fmt.Sprintf(
			"Handicap favors %s: SL%d gives a shorter race than %s's SL%d",
			player.Name, player.SkillLevel, opponent.Name, opponent.SkillLevel))
	case player.SkillLevel > opponent.SkillLevel:
		reasons = append(reasons, fmt.Sprintf(
			"%s gives up the handicap edge at SL%d vs SL%d but brings more consistency",
			player.Name, player.SkillLevel, opponent.SkillLevel))
	default:
		reasons = append(reasons, fmt.Sprintf(
			"Even race: both players are SL%d", player.SkillLevel))
	}

	if factors.WinPct > 0.5 {
		reasons = append(reasons, fmt.Sprintf(
			"%s is winning more often this session (%.0f%% vs %.0f%%)",
			player.Name, seasonWinPct(player), seasonWinPct(opponent)))
	} else if factors.WinPct < 0.5 {
		reasons = append(reasons, fmt.Sprintf(
			"%s has the better session record (%.0f%% vs %.0f%%)",
			opponent.Name, seasonWinPct(opponent), seasonWinPct(player)))
	}

	if h2h != nil && h2h.TotalGames > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Head-to-head: %s is %d-%d against %s",
			player.Name, h2h.Wins, h2h.Losses, opponent.Name))
	}

	if factors.Form > 0.5 {
		reasons = append(reasons, fmt.Sprintf("%s is trending up recently", player.Name))
	} else if factors.Form < 0.5 {
		reasons = append(reasons, fmt.Sprintf("%s has cooled off recently", player.Name))
	}

	return reasons
}

func seasonWinPct(p models.Player) float64 {
	if p.Season == nil {
		return 0
	}
	return p.Season.WinPct()
}
