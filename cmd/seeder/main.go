package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Config
const (
	API_URL = "http://localhost:8080/api/v1/ingest/results"
	TOKEN   = "seed-secret-123"
)

// Result matches models.GameResultEvent structure (simplified)
type Result struct {
	MatchID      string  `json:"match_id"`
	GameNumber   int     `json:"game_number"`
	Session      string  `json:"session"`
	PlayerID     string  `json:"player_id"`
	OpponentID   string  `json:"opponent_id"`
	SkillLevel   int     `json:"skill_level"`
	PlayerWon    bool    `json:"player_won"`
	PointsScored int     `json:"points_scored"`
	PointsNeeded int     `json:"points_needed"`
	BreakAndRun  bool    `json:"break_and_run"`
	NineOnSnap   bool    `json:"nine_on_snap"`
	Timestamp    float64 `json:"timestamp"`
}

func main() {
	// One JSON object per line; the handler splits the body by newline.
	results := []Result{
		{
			MatchID:      "test-match-001",
			GameNumber:   1,
			Session:      "2026-summer",
			PlayerID:     "player-alice",
			OpponentID:   "player-rival",
			SkillLevel:   5,
			PlayerWon:    true,
			PointsScored: 38,
			PointsNeeded: 38,
			BreakAndRun:  true,
			Timestamp:    float64(time.Now().Unix()),
		},
		{
			MatchID:      "test-match-001",
			GameNumber:   2,
			Session:      "2026-summer",
			PlayerID:     "player-bob",
			OpponentID:   "player-champ",
			SkillLevel:   3,
			PlayerWon:    false,
			PointsScored: 17,
			PointsNeeded: 25,
			Timestamp:    float64(time.Now().Unix()),
		},
	}

	var payload bytes.Buffer
	for _, result := range results {
		line, err := json.Marshal(result)
		if err != nil {
			log.Fatalf("Failed to marshal JSON: %v", err)
		}
		payload.Write(line)
		payload.WriteByte('\n')
	}

	req, err := http.NewRequest("POST", API_URL, &payload)
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Scorekeeper-Token", TOKEN)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))

	if resp.StatusCode == 202 {
		fmt.Println("✅ Injection Successful!")
	} else {
		fmt.Println("❌ Injection Failed!")
	}
}
