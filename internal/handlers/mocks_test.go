package handlers

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/cuecaptain/captain-api/internal/models"
)

// MockIngestQueue implements IngestQueue
type MockIngestQueue struct {
	EnqueueFunc func(e *models.GameResultEvent) bool
	Enqueued    []*models.GameResultEvent
}

func (m *MockIngestQueue) Enqueue(e *models.GameResultEvent) bool {
	m.Enqueued = append(m.Enqueued, e)
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(e)
	}
	return true
}

func (m *MockIngestQueue) QueueDepth() int { return len(m.Enqueued) }

// MockMatchupService
type MockMatchupService struct {
	RankFunc    func(ctx context.Context, ourTeamID, opponentPlayerID string) ([]models.MatchupRecommendation, error)
	OpenerFunc  func(ctx context.Context, ourTeamID, theirTeamID string) (*models.MatchupRecommendation, error)
	CoinFunc    func(ctx context.Context, matchID string) (*models.CoinTossRecommendation, error)
	ThrowFunc   func(ctx context.Context, matchID, opponentPlayerID string) ([]models.MatchupRecommendation, error)
	WinProbFunc func(ctx context.Context, matchID string) (float64, error)
	AdviceFunc  func(ctx context.Context, matchID string) ([]string, error)
}

func (m *MockMatchupService) RankAgainstOpponent(ctx context.Context, ourTeamID, opponentPlayerID string) ([]models.MatchupRecommendation, error) {
	if m.RankFunc != nil {
		return m.RankFunc(ctx, ourTeamID, opponentPlayerID)
	}
	return nil, nil
}

func (m *MockMatchupService) BestOpener(ctx context.Context, ourTeamID, theirTeamID string) (*models.MatchupRecommendation, error) {
	if m.OpenerFunc != nil {
		return m.OpenerFunc(ctx, ourTeamID, theirTeamID)
	}
	return &models.MatchupRecommendation{}, nil
}

func (m *MockMatchupService) CoinToss(ctx context.Context, matchID string) (*models.CoinTossRecommendation, error) {
	if m.CoinFunc != nil {
		return m.CoinFunc(ctx, matchID)
	}
	return &models.CoinTossRecommendation{}, nil
}

func (m *MockMatchupService) ThrowRecommendation(ctx context.Context, matchID, opponentPlayerID string) ([]models.MatchupRecommendation, error) {
	if m.ThrowFunc != nil {
		return m.ThrowFunc(ctx, matchID, opponentPlayerID)
	}
	return nil, nil
}

func (m *MockMatchupService) MatchWinProbability(ctx context.Context, matchID string) (float64, error) {
	if m.WinProbFunc != nil {
		return m.WinProbFunc(ctx, matchID)
	}
	return 0.5, nil
}

func (m *MockMatchupService) MatchAdvice(ctx context.Context, matchID string) ([]string, error) {
	if m.AdviceFunc != nil {
		return m.AdviceFunc(ctx, matchID)
	}
	return nil, nil
}

// MockRosterService
type MockRosterService struct {
	GetTeamRosterFunc func(ctx context.Context, teamID string) ([]models.Player, error)
	GetPlayerFunc     func(ctx context.Context, playerID string) (*models.Player, error)
}

func (m *MockRosterService) GetTeamRoster(ctx context.Context, teamID string) ([]models.Player, error) {
	if m.GetTeamRosterFunc != nil {
		return m.GetTeamRosterFunc(ctx, teamID)
	}
	return nil, nil
}

func (m *MockRosterService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(ctx, playerID)
	}
	return nil, fmt.Errorf("player %s not found", playerID)
}

func (m *MockRosterService) GetHeadToHeadMap(ctx context.Context, ourTeamID, theirTeamID string) (models.HeadToHeadMap, error) {
	return models.HeadToHeadMap{}, nil
}

// MockLiveMatchService
type MockLiveMatchService struct {
	Matches map[string]*models.LiveMatch
}

func NewMockLiveMatchService() *MockLiveMatchService {
	return &MockLiveMatchService{Matches: make(map[string]*models.LiveMatch)}
}

func (m *MockLiveMatchService) Get(ctx context.Context, matchID string) (*models.LiveMatch, error) {
	if match, ok := m.Matches[matchID]; ok {
		return match, nil
	}
	return nil, fmt.Errorf("match %s not found", matchID)
}

func (m *MockLiveMatchService) Save(ctx context.Context, match *models.LiveMatch) error {
	m.Matches[match.MatchID] = match
	return nil
}

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn
	Rows [][]any
}

func (m *MockClickHouseConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	return &MockRows{rows: m.Rows}, nil
}

type MockRows struct {
	driver.Rows
	rows [][]any
	curr int
}

func (m *MockRows) Next() bool {
	m.curr++
	return m.curr <= len(m.rows)
}

func (m *MockRows) Scan(dest ...interface{}) error {
	row := m.rows[m.curr-1]
	if v, ok := dest[0].(*float64); ok {
		*v = row[0].(float64)
	}
	if s, ok := dest[1].(*string); ok {
		*s = row[1].(string)
	}
	return nil
}

func (m *MockRows) Close() error { return nil }
func (m *MockRows) Err() error   { return nil }
