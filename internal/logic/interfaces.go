package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/cuecaptain/captain-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	HGet(ctx context.Context, key string, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// RosterService loads players and pairwise history for the engine.
type RosterService interface {
	GetTeamRoster(ctx context.Context, teamID string) ([]models.Player, error)
	GetPlayer(ctx context.Context, playerID string) (*models.Player, error)
	GetHeadToHeadMap(ctx context.Context, ourTeamID, theirTeamID string) (models.HeadToHeadMap, error)
}

// LiveMatchService owns live-match snapshots.
type LiveMatchService interface {
	Get(ctx context.Context, matchID string) (*models.LiveMatch, error)
	Save(ctx context.Context, match *models.LiveMatch) error
}

// MatchupService orchestrates roster loading and engine evaluation for one
// strategic query.
type MatchupService interface {
	RankAgainstOpponent(ctx context.Context, ourTeamID, opponentPlayerID string) ([]models.MatchupRecommendation, error)
	BestOpener(ctx context.Context, ourTeamID, theirTeamID string) (*models.MatchupRecommendation, error)
	CoinToss(ctx context.Context, matchID string) (*models.CoinTossRecommendation, error)
	ThrowRecommendation(ctx context.Context, matchID, opponentPlayerID string) ([]models.MatchupRecommendation, error)
	MatchWinProbability(ctx context.Context, matchID string) (float64, error)
	MatchAdvice(ctx context.Context, matchID string) ([]string, error)
}
