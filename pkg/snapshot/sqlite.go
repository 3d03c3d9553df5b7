package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	timestamp  INTEGER NOT NULL,
	languages  TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps the snapshot as one row of the snapshots table.
type SQLiteStore struct {
	db *sql.DB
	id string
}

// OpenSQLiteStore opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for a throwaway database.
func OpenSQLiteStore(ctx context.Context, path, id string) (*SQLiteStore, error) {
	if id == "" {
		id = DefaultDocument
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteStore{db: db, id: id}, nil
}

// Get loads the snapshot row.
func (s *SQLiteStore) Get(ctx context.Context) (*Snapshot, error) {
	var (
		ts    int64
		langs string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT timestamp, languages FROM snapshots WHERE id = ?`, s.id).Scan(&ts, &langs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	snap := &Snapshot{Timestamp: ts}
	if err := json.Unmarshal([]byte(langs), &snap.Languages); err != nil {
		return nil, fmt.Errorf("%w: decode languages: %v", ErrCorrupt, err)
	}
	return snap, nil
}

// Set upserts the snapshot row.
func (s *SQLiteStore) Set(ctx context.Context, snap *Snapshot) error {
	langs, err := json.Marshal(snap.Languages)
	if err != nil {
		return fmt.Errorf("encode languages: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, timestamp, languages, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			timestamp  = excluded.timestamp,
			languages  = excluded.languages,
			updated_at = CURRENT_TIMESTAMP`,
		s.id, snap.Timestamp, string(langs))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot row.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, s.id)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
