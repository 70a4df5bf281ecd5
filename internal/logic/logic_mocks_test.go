package logic

import (
	"context"
	"reflect"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/cuecaptain/captain-api/internal/models"
)

// MockPg implements PgPool for testing
type MockPg struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *MockPg) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &ValueRows{}, nil
}

func (m *MockPg) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &ValueRow{Err: pgx.ErrNoRows}
}

func (m *MockPg) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

// ValueRows replays fixed rows through the pgx.Rows interface.
type ValueRows struct {
	Rows [][]any
	curr int
}

func (r *ValueRows) Close()                                       {}
func (r *ValueRows) Err() error                                   { return nil }
func (r *ValueRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *ValueRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *ValueRows) Next() bool {
	r.curr++
	return r.curr <= len(r.Rows)
}
func (r *ValueRows) Scan(dest ...any) error {
	row := r.Rows[r.curr-1]
	for i := range dest {
		setVal(dest[i], row[i])
	}
	return nil
}
func (r *ValueRows) Values() ([]any, error) { return nil, nil }
func (r *ValueRows) RawValues() [][]byte    { return nil }
func (r *ValueRows) Conn() *pgx.Conn        { return nil }

// ValueRow replays one fixed row through the pgx.Row interface.
type ValueRow struct {
	Row []any
	Err error
}

func (r *ValueRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	for i := range dest {
		setVal(dest[i], r.Row[i])
	}
	return nil
}

// playerRow builds the column values the roster queries scan.
func playerRow(id, name, teamID string, skill, played, won int, ppm, allowed float64) []any {
	return []any{id, name, teamID, skill, played, won, ppm, allowed}
}

// MockCH implements driver.Conn for testing enrichment queries
type MockCH struct {
	driver.Conn
	RecentRows [][]any
	CareerRow  []any
}

func (m *MockCH) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	return &chRows{rows: m.RecentRows}, nil
}

func (m *MockCH) QueryRow(ctx context.Context, query string, args ...interface{}) driver.Row {
	return &chRow{row: m.CareerRow}
}

type chRows struct {
	driver.Rows
	rows [][]any
	curr int
}

func (r *chRows) Next() bool {
	r.curr++
	return r.curr <= len(r.rows)
}

func (r *chRows) Scan(dest ...interface{}) error {
	row := r.rows[r.curr-1]
	for i := range dest {
		setVal(dest[i], row[i])
	}
	return nil
}

func (r *chRows) Close() error { return nil }
func (r *chRows) Err() error   { return nil }

type chRow struct {
	driver.Row
	row []any
}

func (r *chRow) Scan(dest ...interface{}) error {
	for i := range dest {
		setVal(dest[i], r.row[i])
	}
	return nil
}

func (r *chRow) Err() error { return nil }

// MockRedis implements RedisClient backed by in-memory maps.
type MockRedis struct {
	KV     map[string]string
	Hashes map[string]map[string]string
}

func NewMockRedis() *MockRedis {
	return &MockRedis{
		KV:     make(map[string]string),
		Hashes: make(map[string]map[string]string),
	}
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := m.KV[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.KV[key] = asString(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *MockRedis) HGet(ctx context.Context, key string, field string) *redis.StringCmd {
	val, ok := m.Hashes[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *MockRedis) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if m.Hashes[key] == nil {
		m.Hashes[key] = make(map[string]string)
	}
	for i := 0; i+1 < len(values); i += 2 {
		m.Hashes[key][asString(values[i])] = asString(values[i+1])
	}
	return redis.NewIntResult(1, nil)
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

// MockRosterService serves canned rosters to the matchup service.
type MockRosterService struct {
	Teams   map[string][]models.Player
	Players map[string]*models.Player
	H2H     models.HeadToHeadMap
	Calls   int
}

func (m *MockRosterService) GetTeamRoster(ctx context.Context, teamID string) ([]models.Player, error) {
	m.Calls++
	return m.Teams[teamID], nil
}

func (m *MockRosterService) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	m.Calls++
	if p, ok := m.Players[playerID]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *MockRosterService) GetHeadToHeadMap(ctx context.Context, ourTeamID, theirTeamID string) (models.HeadToHeadMap, error) {
	if m.H2H == nil {
		return models.HeadToHeadMap{}, nil
	}
	return m.H2H, nil
}

func setVal(dest interface{}, val interface{}) {
	// Simple reflection to assign value to pointer
	v := reflect.ValueOf(dest).Elem()
	v.Set(reflect.ValueOf(val))
}
