package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cuecaptain/captain-api/internal/engine"
	"github.com/cuecaptain/captain-api/internal/models"
)

type matchupService struct {
	roster   RosterService
	live     LiveMatchService
	redis    RedisClient
	logger   *zap.SugaredLogger
	cacheTTL time.Duration
}

func NewMatchupService(roster RosterService, live LiveMatchService, redis RedisClient, logger *zap.SugaredLogger, cacheTTL time.Duration) MatchupService {
	return &matchupService{
		roster:   roster,
		live:     live,
		redis:    redis,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// RankAgainstOpponent orders our full roster by win probability against one
// known opposing player.
func (s *matchupService) RankAgainstOpponent(ctx context.Context, ourTeamID, opponentPlayerID string) ([]models.MatchupRecommendation, error) {
	cacheKey := fmt.Sprintf("matchups:rank:%s:%s", ourTeamID, opponentPlayerID)
	var cached []models.MatchupRecommendation
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	opponent, err := s.roster.GetPlayer(ctx, opponentPlayerID)
	if err != nil {
		return nil, err
	}

	ours, err := s.roster.GetTeamRoster(ctx, ourTeamID)
	if err != nil {
		return nil, err
	}

	h2h, err := s.roster.GetHeadToHeadMap(ctx, ourTeamID, opponent.TeamID)
	if err != nil {
		s.logger.Warnw("Head-to-head lookup failed, ranking without history", "error", err)
		h2h = models.HeadToHeadMap{}
	}

	ranked := engine.RankMatchups(ours, *opponent, h2h)
	s.writeCache(ctx, cacheKey, ranked)
	return ranked, nil
}

// BestOpener recommends who to put up first before any opposing player is
// known.
func (s *matchupService) BestOpener(ctx context.Context, ourTeamID, theirTeamID string) (*models.MatchupRecommendation, error) {
	cacheKey := fmt.Sprintf("matchups:opener:%s:%s", ourTeamID, theirTeamID)
	var cached models.MatchupRecommendation
	if s.readCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	ours, theirs, h2h, err := s.loadTeams(ctx, ourTeamID, theirTeamID)
	if err != nil {
		return nil, err
	}

	opener := engine.BestOpener(ours, theirs, h2h)
	if opener == nil {
		return nil, fmt.Errorf("no players available on team %s", ourTeamID)
	}

	s.writeCache(ctx, cacheKey, opener)
	return opener, nil
}

// CoinToss advises throw-first or defer for a live match.
func (s *matchupService) CoinToss(ctx context.Context, matchID string) (*models.CoinTossRecommendation, error) {
	match, err := s.live.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	ours, theirs, h2h, err := s.loadTeams(ctx, match.OurTeamID, match.TheirTeamID)
	if err != nil {
		return nil, err
	}

	rec := engine.RecommendCoinToss(ours, theirs, h2h)
	return &rec, nil
}

// ThrowRecommendation ranks our available players for the next game. When the
// opponent has already thrown, opponentPlayerID names them; otherwise the
// ranking is blind.
func (s *matchupService) ThrowRecommendation(ctx context.Context, matchID, opponentPlayerID string) ([]models.MatchupRecommendation, error) {
	match, err := s.live.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}

	ours, theirs, h2h, err := s.loadTeams(ctx, match.OurTeamID, match.TheirTeamID)
	if err != nil {
		return nil, err
	}

	ourAvailable := engine.AvailablePlayers(ours, match, models.SideOurs)
	theirAvailable := engine.AvailablePlayers(theirs, match, models.SideTheirs)

	var known *models.Player
	if opponentPlayerID != "" {
		for i := range theirs {
			if theirs[i].ID == opponentPlayerID {
				known = &theirs[i]
				break
			}
		}
		if known == nil {
			return nil, fmt.Errorf("player %s is not on team %s", opponentPlayerID, match.TheirTeamID)
		}
	}

	return engine.RecommendThrow(ourAvailable, theirAvailable, known, h2h), nil
}

// MatchWinProbability estimates our chance of reaching three game wins first.
func (s *matchupService) MatchWinProbability(ctx context.Context, matchID string) (float64, error) {
	match, err := s.live.Get(ctx, matchID)
	if err != nil {
		return 0, err
	}

	ours, theirs, h2h, err := s.loadTeams(ctx, match.OurTeamID, match.TheirTeamID)
	if err != nil {
		return 0, err
	}

	ourRemaining := engine.AvailablePlayers(ours, match, models.SideOurs)
	theirRemaining := engine.AvailablePlayers(theirs, match, models.SideTheirs)

	return engine.MatchWinProbability(match.OurScore, match.TheirScore, ourRemaining, theirRemaining, h2h), nil
}

// MatchAdvice returns situational guidance for the current match state.
func (s *matchupService) MatchAdvice(ctx context.Context, matchID string) ([]string, error) {
	match, err := s.live.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return engine.MatchStateAdvice(match), nil
}

func (s *matchupService) loadTeams(ctx context.Context, ourTeamID, theirTeamID string) ([]models.Player, []models.Player, models.HeadToHeadMap, error) {
	ours, err := s.roster.GetTeamRoster(ctx, ourTeamID)
	if err != nil {
		return nil, nil, nil, err
	}

	theirs, err := s.roster.GetTeamRoster(ctx, theirTeamID)
	if err != nil {
		return nil, nil, nil, err
	}

	h2h, err := s.roster.GetHeadToHeadMap(ctx, ourTeamID, theirTeamID)
	if err != nil {
		s.logger.Warnw("Head-to-head lookup failed, continuing without history", "error", err)
		h2h = models.HeadToHeadMap{}
	}

	return ours, theirs, h2h, nil
}

// readCache reports whether cacheKey held a value and unmarshaled it into dst.
// Ranking inputs change on every ingested game, so entries are short-lived.
func (s *matchupService) readCache(ctx context.Context, cacheKey string, dst any) bool {
	if s.redis == nil || s.cacheTTL <= 0 {
		return false
	}
	raw, err := s.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warnw("Failed to decode cached recommendation", "key", cacheKey, "error", err)
		return false
	}
	return true
}

func (s *matchupService) writeCache(ctx context.Context, cacheKey string, value any) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warnw("Failed to cache recommendation", "key", cacheKey, "error", err)
	}
}
