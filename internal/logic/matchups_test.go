package logic

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cuecaptain/captain-api/internal/models"
)

func testPlayer(id, teamID string, skill int, played, won int) models.Player {
	return models.Player{
		ID:         id,
		Name:       id,
		TeamID:     teamID,
		SkillLevel: skill,
		Season: &models.SeasonStats{
			MatchesPlayed:  played,
			MatchesWon:     won,
			PointsPerMatch: 30,
		},
	}
}

func testRoster() *MockRosterService {
	ace := testPlayer("ace", "t1", 7, 10, 8)
	return &MockRosterService{
		Teams: map[string][]models.Player{
			"t1": {ace, testPlayer("bob", "t1", 4, 10, 5)},
			"t2": {testPlayer("rival", "t2", 5, 10, 5), testPlayer("champ", "t2", 6, 10, 7)},
		},
		Players: map[string]*models.Player{
			"ace":   &ace,
			"rival": {ID: "rival", Name: "rival", TeamID: "t2", SkillLevel: 5},
		},
	}
}

func testLiveMatch() *models.LiveMatch {
	return &models.LiveMatch{
		MatchID:     "m1",
		OurTeamID:   "t1",
		TheirTeamID: "t2",
	}
}

func newTestMatchupService(roster *MockRosterService, live LiveMatchService, cacheTTL time.Duration) MatchupService {
	return NewMatchupService(roster, live, NewMockRedis(), zap.NewNop().Sugar(), cacheTTL)
}

func TestRankAgainstOpponent(t *testing.T) {
	service := newTestMatchupService(testRoster(), nil, 0)

	ranked, err := service.RankAgainstOpponent(context.Background(), "t1", "rival")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d", len(ranked))
	}
	if ranked[0].PlayerID != "ace" {
		t.Errorf("Expected ace ranked first, got %s", ranked[0].PlayerID)
	}
	if ranked[0].WinProbability < ranked[1].WinProbability {
		t.Error("Rankings not in descending probability order")
	}
}

func TestRankAgainstOpponentUnknownPlayer(t *testing.T) {
	service := newTestMatchupService(testRoster(), nil, 0)

	if _, err := service.RankAgainstOpponent(context.Background(), "t1", "ghost"); err == nil {
		t.Fatal("Expected error for unknown opponent")
	}
}

func TestRankAgainstOpponentCaches(t *testing.T) {
	roster := testRoster()
	service := newTestMatchupService(roster, nil, time.Minute)

	first, err := service.RankAgainstOpponent(context.Background(), "t1", "rival")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	callsAfterFirst := roster.Calls

	second, err := service.RankAgainstOpponent(context.Background(), "t1", "rival")
	if err != nil {
		t.Fatalf("Expected no error on cached call, got %v", err)
	}
	if roster.Calls != callsAfterFirst {
		t.Errorf("Expected cache hit to skip roster loads, calls went %d -> %d", callsAfterFirst, roster.Calls)
	}
	if len(second) != len(first) || second[0].PlayerID != first[0].PlayerID {
		t.Errorf("Cached result differs: %+v vs %+v", second, first)
	}
}

func TestBestOpenerEmptyTeam(t *testing.T) {
	service := newTestMatchupService(&MockRosterService{Teams: map[string][]models.Player{}}, nil, 0)

	if _, err := service.BestOpener(context.Background(), "t1", "t2"); err == nil {
		t.Fatal("Expected error for empty roster")
	}
}

func TestCoinToss(t *testing.T) {
	live := NewLiveMatchService(NewMockRedis())
	if err := live.Save(context.Background(), testLiveMatch()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	service := newTestMatchupService(testRoster(), live, 0)

	rec, err := service.CoinToss(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Analysis.Recommendation != "throw_first" && rec.Analysis.Recommendation != "defer" {
		t.Errorf("Unexpected recommendation %q", rec.Analysis.Recommendation)
	}
}

func TestThrowRecommendationExcludesAssigned(t *testing.T) {
	match := testLiveMatch()
	match.Games[0] = models.GameSlot{OurPlayerID: "ace", TheirPlayerID: "rival", Result: models.GameWon}
	match.OurScore = 1

	live := NewLiveMatchService(NewMockRedis())
	if err := live.Save(context.Background(), match); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	service := newTestMatchupService(testRoster(), live, 0)

	recs, err := service.ThrowRecommendation(context.Background(), "m1", "champ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, r := range recs {
		if r.PlayerID == "ace" {
			t.Error("Player already assigned to a finished game should be excluded")
		}
	}
}

func TestThrowRecommendationUnknownOpponent(t *testing.T) {
	live := NewLiveMatchService(NewMockRedis())
	if err := live.Save(context.Background(), testLiveMatch()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	service := newTestMatchupService(testRoster(), live, 0)

	if _, err := service.ThrowRecommendation(context.Background(), "m1", "ghost"); err == nil {
		t.Fatal("Expected error for opponent not on their roster")
	}
}

func TestMatchWinProbabilityDecided(t *testing.T) {
	match := testLiveMatch()
	match.OurScore = 3

	live := NewLiveMatchService(NewMockRedis())
	if err := live.Save(context.Background(), match); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	service := newTestMatchupService(testRoster(), live, 0)

	prob, err := service.MatchWinProbability(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prob != 1.0 {
		t.Errorf("Expected probability 1.0 for won match, got %f", prob)
	}
}

func TestMatchAdviceMissingMatch(t *testing.T) {
	live := NewLiveMatchService(NewMockRedis())
	service := newTestMatchupService(testRoster(), live, 0)

	if _, err := service.MatchAdvice(context.Background(), "nope"); err == nil {
		t.Fatal("Expected error for missing match")
	}
}
