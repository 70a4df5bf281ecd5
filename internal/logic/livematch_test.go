package logic

import (
	"context"
	"testing"

	"github.com/cuecaptain/captain-api/internal/models"
)

func TestLiveMatchSaveAndGet(t *testing.T) {
	service := NewLiveMatchService(NewMockRedis())

	match := &models.LiveMatch{
		MatchID:     "m1",
		OurTeamID:   "t1",
		TheirTeamID: "t2",
		OurScore:    2,
	}
	match.Games[0] = models.GameSlot{OurPlayerID: "ace", TheirPlayerID: "rival", Result: models.GameWon}

	if err := service.Save(context.Background(), match); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if match.StartedAt.IsZero() || match.UpdatedAt.IsZero() {
		t.Error("Save should stamp StartedAt and UpdatedAt")
	}

	got, err := service.Get(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.OurScore != 2 {
		t.Errorf("Expected score 2, got %d", got.OurScore)
	}
	if got.Games[0].OurPlayerID != "ace" || got.Games[0].Result != models.GameWon {
		t.Errorf("Game slot not round-tripped: %+v", got.Games[0])
	}
}

func TestLiveMatchGetMissing(t *testing.T) {
	service := NewLiveMatchService(NewMockRedis())

	if _, err := service.Get(context.Background(), "unknown"); err == nil {
		t.Fatal("Expected error for unknown match")
	}
}

func TestLiveMatchSavePreservesStartedAt(t *testing.T) {
	service := NewLiveMatchService(NewMockRedis())

	match := &models.LiveMatch{MatchID: "m1", OurTeamID: "t1", TheirTeamID: "t2"}
	if err := service.Save(context.Background(), match); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	started := match.StartedAt

	match.OurScore = 1
	if err := service.Save(context.Background(), match); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	if !match.StartedAt.Equal(started) {
		t.Error("StartedAt should survive subsequent saves")
	}
}
