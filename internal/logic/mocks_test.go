package logic

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Mocks

type MockRow struct {
	ScanFunc func(dest ...any) error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanFunc != nil {
		return m.ScanFunc(dest...)
	}
	return nil
}

type MockRows struct {
	pgx.Rows
	rows [][]any
	idx  int
}

func (m *MockRows) Next() bool {
	m.idx++
	return m.idx <= len(m.rows)
}

func (m *MockRows) Scan(dest ...any) error {
	return assign(m.rows[m.idx-1], dest...)
}

func (m *MockRows) Close()     {}
func (m *MockRows) Err() error { return nil }

// MockPgPool dispatches on a substring of the SQL text, mirroring how the
// services compose their statements.
type MockPgPool struct {
	QueryRowFuncs map[string]func(args ...any) pgx.Row
	QueryFuncs    map[string]func(args ...any) (pgx.Rows, error)
	ExecFunc      func(sql string, args ...any) (pgconn.CommandTag, error)

	ExecLog  []string
	ExecArgs [][]any
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	for fragment, fn := range m.QueryRowFuncs {
		if strings.Contains(sql, fragment) {
			return fn(args...)
		}
	}
	return &MockRow{}
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	for fragment, fn := range m.QueryFuncs {
		if strings.Contains(sql, fragment) {
			return fn(args...)
		}
	}
	return &MockRows{}, nil
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.ExecLog = append(m.ExecLog, sql)
	m.ExecArgs = append(m.ExecArgs, args)
	if m.ExecFunc != nil {
		return m.ExecFunc(sql, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (m *MockPgPool) execContaining(fragment string) ([]any, bool) {
	for i, sql := range m.ExecLog {
		if strings.Contains(sql, fragment) {
			return m.ExecArgs[i], true
		}
	}
	return nil, false
}

// assign copies mock row values into scan destinations.
func assign(values []any, dest ...any) error {
	for i, v := range values {
		if i >= len(dest) {
			break
		}
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *float64:
			*d = v.(float64)
		default:
			// leave unhandled destinations at their zero value
		}
	}
	return nil
}
