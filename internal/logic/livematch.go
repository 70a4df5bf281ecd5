package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cuecaptain/captain-api/internal/models"
)

// liveMatchKey is the Redis hash holding one JSON snapshot per active match,
// keyed by match ID. The worker updates snapshots as game results arrive.
const liveMatchKey = "live_matches"

type liveMatchService struct {
	redis RedisClient
}

func NewLiveMatchService(redisClient RedisClient) LiveMatchService {
	return &liveMatchService{redis: redisClient}
}

func (s *liveMatchService) Get(ctx context.Context, matchID string) (*models.LiveMatch, error) {
	raw, err := s.redis.HGet(ctx, liveMatchKey, matchID).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("live match lookup: %w", err)
	}

	var match models.LiveMatch
	if err := json.Unmarshal([]byte(raw), &match); err != nil {
		return nil, fmt.Errorf("corrupt live match snapshot for %s: %w", matchID, err)
	}
	return &match, nil
}

func (s *liveMatchService) Save(ctx context.Context, match *models.LiveMatch) error {
	match.UpdatedAt = time.Now().UTC()
	if match.StartedAt.IsZero() {
		match.StartedAt = match.UpdatedAt
	}

	raw, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("encode live match: %w", err)
	}
	if err := s.redis.HSet(ctx, liveMatchKey, match.MatchID, raw).Err(); err != nil {
		return fmt.Errorf("save live match %s: %w", match.MatchID, err)
	}
	return nil
}
