package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn
	mu      sync.Mutex
	Batches []*MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	batch := &MockBatch{}
	m.Batches = append(m.Batches, batch)
	return batch, nil
}

// AppendedRows totals rows across all prepared batches.
func (m *MockClickHouseConn) AppendedRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, b := range m.Batches {
		total += b.Appended
	}
	return total
}

type MockBatch struct {
	mu       sync.Mutex
	Appended int
	Sent     bool
}

func (m *MockBatch) IsSent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Sent
}

func (m *MockBatch) Rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Appended
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended++
	return nil
}

func (m *MockBatch) AppendStruct(v interface{}) error {
	return nil
}

func (m *MockBatch) Column(int) driver.BatchColumn {
	return nil
}

func (m *MockBatch) Send() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = true
	return nil
}

func (m *MockBatch) Flush() error {
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}

// MockDBStore implements DBStore and records every Exec call
type MockDBStore struct {
	mu    sync.Mutex
	Execs [][]any
}

func (m *MockDBStore) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Execs = append(m.Execs, args)
	return pgconn.CommandTag{}, nil
}

func (m *MockDBStore) ExecCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Execs)
}

// MockMatchStore implements MatchStore backed by an in-memory hash
type MockMatchStore struct {
	mu     sync.Mutex
	Hashes map[string]map[string]string
}

func NewMockMatchStore() *MockMatchStore {
	return &MockMatchStore{Hashes: make(map[string]map[string]string)}
}

func (m *MockMatchStore) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Hashes[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (m *MockMatchStore) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Hashes[key] == nil {
		m.Hashes[key] = make(map[string]string)
	}
	for i := 0; i+1 < len(values); i += 2 {
		field, _ := values[i].(string)
		switch v := values[i+1].(type) {
		case string:
			m.Hashes[key][field] = v
		case []byte:
			m.Hashes[key][field] = string(v)
		}
	}
	return redis.NewIntResult(1, nil)
}
