// Package database describes the narrow SQL surface repositories, seeders
// and migrations depend on. The pgx implementation lives in postgres.
package database

import (
	"context"
	"database/sql"
)

// Querier is satisfied by both a pool and an open transaction, so a
// repository can run inside or outside one.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error
	Begin(ctx context.Context) (Tx, error)

	// SQLDB exposes a database/sql handle for the migration runner.
	SQLDB() *sql.DB
}

type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

type Row interface {
	Scan(dest ...any) error
}

// InTx runs fn inside a transaction and commits when fn returns nil.
func InTx(ctx context.Context, db DB, fn func(q Querier) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
