package query

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor runs named parameterized statements. Implementations must
// be safe for concurrent use; the aggregation fan-out submits type
// lookups from many goroutines at once.
type Executor interface {
	// Query runs the named statement and returns its rows.
	Query(ctx context.Context, name string, args ...any) (pgx.Rows, error)

	// Exec runs the named DML statement and returns the affected row count.
	Exec(ctx context.Context, name string, args ...any) (int64, error)
}

// PoolExecutor is the Executor backed by a pgx connection pool.
// The pool owns connection lifecycle and is safe for concurrent
// submission.
type PoolExecutor struct {
	pool     *pgxpool.Pool
	registry *Registry
}

// NewPoolExecutor builds an Executor over pool using the given
// statement registry.
func NewPoolExecutor(pool *pgxpool.Pool, registry *Registry) *PoolExecutor {
	return &PoolExecutor{
		pool:     pool,
		registry: registry,
	}
}

func (e *PoolExecutor) Query(ctx context.Context, name string, args ...any) (pgx.Rows, error) {
	sql, err := e.registry.SQL(name)
	if err != nil {
		return nil, err
	}
	return e.pool.Query(ctx, sql, args...)
}

func (e *PoolExecutor) Exec(ctx context.Context, name string, args ...any) (int64, error) {
	sql, err := e.registry.SQL(name)
	if err != nil {
		return 0, err
	}
	tag, err := e.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
