package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockStatStore implements StatStore for testing
type MockStatStore struct {
	mu      sync.Mutex
	Counts  map[string]int64
	Markers map[string]bool
}

func NewMockStatStore() *MockStatStore {
	return &MockStatStore{
		Counts:  make(map[string]int64),
		Markers: make(map[string]bool),
	}
}

func (m *MockStatStore) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts[key]++
	return m.Counts[key], nil
}

func (m *MockStatStore) IncrBy(ctx context.Context, key string, value int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts[key] += value
	return m.Counts[key], nil
}

func (m *MockStatStore) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Markers[key] {
		return false, nil
	}
	m.Markers[key] = true
	return true, nil
}

// MockPgPool records Exec calls; Query and QueryRow are unused by the worker.
type MockPgPool struct {
	mu       sync.Mutex
	ExecLog  []string
	ExecArgs [][]any
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecLog = append(m.ExecLog, sql)
	m.ExecArgs = append(m.ExecArgs, args)
	return pgconn.CommandTag{}, nil
}

func (m *MockPgPool) execCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ExecLog)
}

func (m *MockPgPool) execArgs(i int) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ExecArgs[i]
}
