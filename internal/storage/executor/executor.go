// Package executor runs parameterized statements on pooled connections.
//
// Statements are written with '?' placeholders and rebound to the driver's
// bindvar style. Callers pass every user supplied value as an argument;
// nothing is ever formatted into the statement text.
package executor

import (
	"context"
	"fmt"
	"time"

	"asistencia-api/internal/storage/dberr"
	"asistencia-api/internal/storage/pool"

	"github.com/jmoiron/sqlx"
)

type Executor struct {
	pool    *pool.Manager
	timeout time.Duration
}

// New returns an Executor. A zero timeout leaves statements bounded only by
// the caller's context.
func New(p *pool.Manager, timeout time.Duration) *Executor {
	return &Executor{pool: p, timeout: timeout}
}

// Select scans all rows into dest, which must be a pointer to a slice.
func (e *Executor) Select(ctx context.Context, dest any, query string, args ...any) error {
	const op = "storage.executor.Select"

	return e.run(ctx, op, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, dest, conn.Rebind(query), args...)
	})
}

// Get scans exactly one row into dest. No rows yields a not found error.
func (e *Executor) Get(ctx context.Context, dest any, query string, args ...any) error {
	const op = "storage.executor.Get"

	return e.run(ctx, op, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, dest, conn.Rebind(query), args...)
	})
}

// Exec runs a write and returns the affected row count.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	const op = "storage.executor.Exec"

	var affected int64

	err := e.run(ctx, op, func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, conn.Rebind(query), args...)
		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

func (e *Executor) run(ctx context.Context, op string, fn func(ctx context.Context, conn *sqlx.Conn) error) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	err := e.pool.WithConn(ctx, func(conn *sqlx.Conn) error {
		return fn(ctx, conn)
	})
	if err != nil {
		return dberr.Translate(fmt.Errorf("%s: %w", op, err))
	}

	return nil
}
