// Package history records applied auction operations in a relational
// store for operators. Recording is best-effort observability: a failed
// insert is logged by the caller and never vetoes the operation.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Record is one applied operation.
type Record struct {
	Operation string
	AuctionID uint64
	Actor     string
	Denom     string
	Amount    string
	Price     string
	At        time.Time
}

// Recorder appends operation records.
type Recorder interface {
	Record(ctx context.Context, r Record) error
	Close() error
}

// Backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS auction_history (
	id         INTEGER PRIMARY KEY,
	operation  TEXT NOT NULL,
	auction_id INTEGER NOT NULL,
	actor      TEXT NOT NULL,
	denom      TEXT NOT NULL,
	amount     TEXT NOT NULL,
	price      TEXT NOT NULL,
	at_unix    INTEGER NOT NULL
)`

// Postgres wants an explicit serial type for the synthetic key.
const schemaPostgres = `
CREATE TABLE IF NOT EXISTS auction_history (
	id         BIGSERIAL PRIMARY KEY,
	operation  TEXT NOT NULL,
	auction_id BIGINT NOT NULL,
	actor      TEXT NOT NULL,
	denom      TEXT NOT NULL,
	amount     TEXT NOT NULL,
	price      TEXT NOT NULL,
	at_unix    BIGINT NOT NULL
)`

type store struct {
	db       *sql.DB
	postgres bool
}

// Open connects to the configured backend and ensures the schema.
func Open(backend, dsn string) (Recorder, error) {
	switch backend {
	case BackendSQLite:
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite history store: %w", err)
		}
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("create history schema: %w", err)
		}
		return &store{db: db}, nil
	case BackendPostgres:
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres history store: %w", err)
		}
		if _, err := db.Exec(schemaPostgres); err != nil {
			db.Close()
			return nil, fmt.Errorf("create history schema: %w", err)
		}
		return &store{db: db, postgres: true}, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", backend)
	}
}

func (s *store) Record(ctx context.Context, r Record) error {
	query := `INSERT INTO auction_history (operation, auction_id, actor, denom, amount, price, at_unix)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	if s.postgres {
		query = `INSERT INTO auction_history (operation, auction_id, actor, denom, amount, price, at_unix)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`
	}

	_, err := s.db.ExecContext(ctx, query,
		r.Operation, int64(r.AuctionID), r.Actor, r.Denom, r.Amount, r.Price, r.At.Unix())
	if err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}

// Nop is a Recorder that drops everything; used when history is
// disabled.
type Nop struct{}

func (Nop) Record(ctx context.Context, r Record) error { return nil }
func (Nop) Close() error                               { return nil }
