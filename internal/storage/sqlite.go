// Package storage provides SQLite-based persistence for save slots and run
// history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "modernc.org/sqlite"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveSlot is one persisted game in a named slot. Blob is the engine's
// snapshot export, opaque to this package.
type SaveSlot struct {
	Slot    string
	RunID   string
	Floor   int
	Turn    int
	Blob    []byte
	SavedAt time.Time
}

// RunRecord is one finished run in the history table.
type RunRecord struct {
	ID        int64
	RunID     string
	Outcome   string
	Floor     int
	Turns     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			floor INTEGER NOT NULL,
			turn INTEGER NOT NULL,
			blob BLOB NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			floor INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// execRetry runs a write statement, retrying briefly when the database is
// busy. Any other failure aborts immediately.
func (s *Store) execRetry(ctx context.Context, query string, args ...any) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			if isBusy(err) {
				return struct{}{}, err
			}
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(5))
	return err
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// WriteSave stores or replaces the save in the given slot.
func (s *Store) WriteSave(ctx context.Context, save SaveSlot) error {
	err := s.execRetry(ctx,
		`INSERT INTO saves (slot, run_id, floor, turn, blob, saved_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
			run_id = excluded.run_id,
			floor = excluded.floor,
			turn = excluded.turn,
			blob = excluded.blob,
			saved_at = CURRENT_TIMESTAMP`,
		save.Slot, save.RunID, save.Floor, save.Turn, save.Blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save: %w", err)
	}
	return nil
}

// ReadSave loads the save in the given slot, or nil if the slot is empty.
func (s *Store) ReadSave(ctx context.Context, slot string) (*SaveSlot, error) {
	var save SaveSlot
	var savedAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT slot, run_id, floor, turn, blob, saved_at FROM saves WHERE slot = ?`,
		slot,
	).Scan(&save.Slot, &save.RunID, &save.Floor, &save.Turn, &save.Blob, &savedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read save: %w", err)
	}
	save.SavedAt = parseTimestamp(savedAt)
	return &save, nil
}

// DeleteSave removes the save in the given slot, if any.
func (s *Store) DeleteSave(ctx context.Context, slot string) error {
	if err := s.execRetry(ctx, `DELETE FROM saves WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// RecordRun appends one finished run to the history.
func (s *Store) RecordRun(ctx context.Context, rec RunRecord) error {
	err := s.execRetry(ctx,
		`INSERT INTO runs (run_id, outcome, floor, turns) VALUES (?, ?, ?, ?)`,
		rec.RunID, rec.Outcome, rec.Floor, rec.Turns,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	return nil
}

// RecentRuns retrieves the most recent finished runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, outcome, floor, turns, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Outcome, &rec.Floor, &rec.Turns, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
