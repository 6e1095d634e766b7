package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cronokirby/saferith"
	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"github.com/veridge/devauth/pkg/device"
)

const sqliteTimeout = 5 * time.Second

// SQLite is a persistent Registry on a SQLite database. SQLite
// serializes writers, which gives the per-identity upsert the required
// atomicity without extra locking here.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens/creates a SQLite DB and ensures schema + PRAGMAs.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", p, err)
		}
	}
	schema := `
CREATE TABLE IF NOT EXISTS commitments (
  device_id  TEXT PRIMARY KEY,
  commitment BLOB NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Register implements Registry, upserting the commitment.
func (s *SQLite) Register(id device.ID, commitment *saferith.Nat) error {
	ctx, cancel := context.WithTimeout(context.Background(), sqliteTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commitments(device_id, commitment) VALUES(?, ?)
		 ON CONFLICT(device_id) DO UPDATE SET commitment=excluded.commitment`,
		string(id), commitment.Bytes())
	return err
}

// Lookup implements Registry.
func (s *SQLite) Lookup(id device.ID) (*saferith.Nat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sqliteTimeout)
	defer cancel()
	var buf []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT commitment FROM commitments WHERE device_id = ?`,
		string(id)).Scan(&buf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotRegistered
	}
	if err != nil {
		return nil, err
	}
	return new(saferith.Nat).SetBytes(buf), nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
