package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/cuecaptain/captain-api/internal/models"
)

type rosterService struct {
	pg PgPool
	ch driver.Conn
}

func NewRosterService(pg PgPool, ch driver.Conn) RosterService {
	return &rosterService{pg: pg, ch: ch}
}

// recentSessionCount is how many past league sessions feed the form factor.
const recentSessionCount = 3

// GetTeamRoster loads a team's players from Postgres and enriches each with
// recent-session and career stats from ClickHouse. Enrichment failures are
// tolerated: the engine degrades gracefully without the optional stats.
func (s *rosterService) GetTeamRoster(ctx context.Context, teamID string) ([]models.Player, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, name, team_id, skill_level,
		       matches_played, matches_won, points_per_match, points_allowed
		FROM players
		WHERE team_id = $1
		ORDER BY name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("roster query: %w", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			continue
		}
		players = append(players, p)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range players {
		g.Go(func() error {
			s.enrichPlayer(gctx, &players[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return players, nil
}

// GetPlayer fetches one player with full enrichment.
func (s *rosterService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	row := s.pg.QueryRow(ctx, `
		SELECT id, name, team_id, skill_level,
		       matches_played, matches_won, points_per_match, points_allowed
		FROM players
		WHERE id = $1
	`, playerID)

	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("player %s not found: %w", playerID, err)
		}
		return nil, fmt.Errorf("player query: %w", err)
	}

	s.enrichPlayer(ctx, &p)
	return &p, nil
}

// GetHeadToHeadMap loads every directional pairing between two rosters.
// Pairs with no history are simply absent from the map.
func (s *rosterService) GetHeadToHeadMap(ctx context.Context, ourTeamID, theirTeamID string) (models.HeadToHeadMap, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT h.player_id, h.opponent_id, h.total_games, h.wins, h.losses,
		       h.avg_points_scored, h.avg_points_needed, h.last_played
		FROM head_to_head h
		JOIN players p ON p.id = h.player_id
		JOIN players o ON o.id = h.opponent_id
		WHERE (p.team_id = $1 AND o.team_id = $2)
		   OR (p.team_id = $2 AND o.team_id = $1)
	`, ourTeamID, theirTeamID)
	if err != nil {
		return nil, fmt.Errorf("head-to-head query: %w", err)
	}
	defer rows.Close()

	h2h := models.HeadToHeadMap{}
	for rows.Next() {
		var key models.PairKey
		var rec models.HeadToHead
		if err := rows.Scan(&key.PlayerID, &key.OpponentID,
			&rec.TotalGames, &rec.Wins, &rec.Losses,
			&rec.AvgPointsScored, &rec.AvgPointsNeeded, &rec.LastPlayed); err != nil {
			continue
		}
		h2h[key] = &rec
	}

	return h2h, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (models.Player, error) {
	var p models.Player
	var season models.SeasonStats
	if err := row.Scan(&p.ID, &p.Name, &p.TeamID, &p.SkillLevel,
		&season.MatchesPlayed, &season.MatchesWon,
		&season.PointsPerMatch, &season.PointsAllowed); err != nil {
		return p, err
	}
	p.Season = &season
	return p, nil
}

// enrichPlayer fills recent-session and career stats from the game-result
// history. Both lookups are optional inputs to the engine, so errors only
// leave the fields empty.
func (s *rosterService) enrichPlayer(ctx context.Context, p *models.Player) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if recent, err := s.fetchRecentSessions(gctx, p.ID); err == nil {
			p.Recent = recent
		}
		return nil
	})

	g.Go(func() error {
		if career, err := s.fetchCareer(gctx, p.ID); err == nil {
			p.Career = career
		}
		return nil
	})

	g.Wait()
}

// fetchRecentSessions aggregates per-session records for the player's most
// recent league sessions, newest first.
func (s *rosterService) fetchRecentSessions(ctx context.Context, playerID string) ([]models.SeasonStats, error) {
	rows, err := s.ch.Query(ctx, `
		SELECT
			session,
			uniq(match_id) as matches,
			uniqIf(match_id, player_won = 1) as wins,
			sum(points_scored) / uniq(match_id) as ppm
		FROM league_stats.game_results
		WHERE player_id = ?
		GROUP BY session
		ORDER BY session DESC
		LIMIT ?
	`, playerID, recentSessionCount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recent := []models.SeasonStats{}
	for rows.Next() {
		var session string
		var matches, wins uint64
		var ppm float64
		if err := rows.Scan(&session, &matches, &wins, &ppm); err != nil {
			continue
		}
		recent = append(recent, models.SeasonStats{
			MatchesPlayed:  int(matches),
			MatchesWon:     int(wins),
			PointsPerMatch: ppm,
		})
	}
	return recent, nil
}

// fetchCareer aggregates the player's lifetime record.
func (s *rosterService) fetchCareer(ctx context.Context, playerID string) (*models.CareerStats, error) {
	var matches, wins, breakAndRuns, nineOnSnaps uint64
	err := s.ch.QueryRow(ctx, `
		SELECT
			uniq(match_id) as matches,
			uniqIf(match_id, player_won = 1) as wins,
			countIf(break_and_run = 1) as break_and_runs,
			countIf(nine_on_snap = 1) as nine_on_snaps
		FROM league_stats.game_results
		WHERE player_id = ?
	`, playerID).Scan(&matches, &wins, &breakAndRuns, &nineOnSnaps)
	if err != nil {
		return nil, err
	}
	if matches == 0 {
		return nil, nil
	}

	career := &models.CareerStats{
		Matches:      int(matches),
		BreakAndRuns: int(breakAndRuns),
		NineOnSnaps:  int(nineOnSnaps),
		WinPct:       float64(wins) / float64(matches) * 100,
	}
	return career, nil
}
