package postgres

import (
	"context"
	"fmt"

	"github.com/YelzhanWeb/storefront/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the slice of a pgx pool the documents table needs. Exec reports rows affected.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Begin(ctx context.Context) (Tx, error)
	Close()
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

// Tx groups the statements of one collection rewrite or document patch
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// InTx runs fn in a transaction and commits when it returns nil
func InTx(ctx context.Context, db DB, fn func(Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type poolDB struct {
	pool *pgxpool.Pool
}

type poolTx struct {
	tx pgx.Tx
}

// Connect opens the pool that backs the documents table
func Connect(ctx context.Context, cfg config.DatabaseConfig) (DB, error) {
	return ConnectURL(ctx, cfg.DSN())
}

// ConnectURL accepts either a DSN or a postgres:// URL
func ConnectURL(ctx context.Context, connString string) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &poolDB{pool: pool}, nil
}

func (db *poolDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return db.pool.Query(ctx, sql, args...)
}

func (db *poolDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return db.pool.QueryRow(ctx, sql, args...)
}

func (db *poolDB) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := db.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (db *poolDB) Begin(ctx context.Context) (Tx, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &poolTx{tx: tx}, nil
}

func (db *poolDB) Close() {
	db.pool.Close()
}

func (t *poolTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *poolTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback after Commit is a no-op in pgx
func (t *poolTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
