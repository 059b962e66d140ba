package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/dashboard-service/internal/repository"
)

// connPool adapts pgxpool to repository.ConnPool.
type connPool struct{ pool *pgxpool.Pool }

// NewConnPool wraps pool so repositories only see acquire/release semantics.
func NewConnPool(pool *pgxpool.Pool) repository.ConnPool { return &connPool{pool: pool} }

func (p *connPool) Acquire(ctx context.Context) (repository.Lease, error) {
	if err := ensurePool(p.pool); err != nil {
		return nil, err
	}
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &lease{conn: conn}, nil
}

// lease narrows *pgxpool.Conn to repository.Lease.
type lease struct{ conn *pgxpool.Conn }

func (l *lease) QueryRow(ctx context.Context, sql string, args ...any) repository.Row {
	return l.conn.QueryRow(ctx, sql, args...)
}

func (l *lease) Query(ctx context.Context, sql string, args ...any) (repository.Rows, error) {
	return l.conn.Query(ctx, sql, args...)
}

func (l *lease) Release() { l.conn.Release() }

// withLease acquires a lease, runs fn on it and releases it on every path.
// Acquire failures are reported as storage errors under op.
func withLease(ctx context.Context, pool repository.ConnPool, op string, fn func(repository.Lease) error) error {
	if pool == nil {
		return repository.MapPgError(op, errors.New("connection pool is nil"))
	}
	l, err := pool.Acquire(ctx)
	if err != nil {
		return repository.MapPgError(op+": acquire", err)
	}
	defer l.Release()
	return fn(l)
}

func ensurePool(pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("pgx pool is nil")
	}
	return nil
}

var (
	_ repository.ConnPool = (*connPool)(nil)
	_ repository.Lease    = (*lease)(nil)
)
