// Package storage owns the PostgreSQL connection pool, the schema bootstrap
// and the unit-of-work helper used by the repositories.
package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx. Repositories
// accept it so they can run either directly on the pool or inside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Beginner starts a transaction. *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Open creates a connection pool for databaseURL and verifies it with a ping.
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// schemaLockID is the advisory lock key serializing concurrent EnsureSchema calls.
const schemaLockID = 7170001

// EnsureSchema creates the teams and heroes tables if they do not exist yet.
// Concurrent callers are serialized with a transaction-scoped advisory lock.
func EnsureSchema(ctx context.Context, db Beginner) error {
	err := WithUnitOfWork(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// WithUnitOfWork runs fn inside a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise; the underlying
// connection is released on every path.
func WithUnitOfWork(ctx context.Context, db Beginner, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, db, fn)
}
