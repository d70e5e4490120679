// Package history implements the persistent REPL command history
// the distilled spec never mentions (§SUPPLEMENTED FEATURES): every
// line run interactively is logged to a small sqlite database so it
// survives across sessions, grounded on the database/sql + "sqlite"
// driver pattern other_examples/sambeau-basil's evaluator registers
// modernc.org/sqlite under (`sql.Open("sqlite", dsn)`).
package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	line    TEXT NOT NULL,
	status  INTEGER NOT NULL,
	run_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Entry is one logged REPL line.
type Entry struct {
	ID     int64
	Line   string
	Status int
	RunAt  string
}

// Store is a handle onto the history database. The zero value is not
// usable; construct one with Open.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// Open opens (creating if necessary) the sqlite database at path.
// maxEntries caps how many rows Append retains afterward; 0 means
// unbounded, matching config.History.MaxEntries's zero value.
func Open(path string, maxEntries int) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db, maxEntries: maxEntries}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Append logs one executed line and its resulting status, trimming
// the oldest rows past maxEntries if it's set.
func (s *Store) Append(ctx context.Context, line string, status int) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO history (line, status) VALUES (?, ?)`, line, status); err != nil {
		return fmt.Errorf("appending history entry: %w", err)
	}
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY id DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

// Recent returns the n most recently logged entries, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, line, status, run_at FROM history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Line, &e.Status, &e.RunAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Search returns entries whose line contains substr, newest first.
func (s *Store) Search(ctx context.Context, substr string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, line, status, run_at FROM history
		WHERE line LIKE '%' || ? || '%' ORDER BY id DESC`, substr)
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Line, &e.Status, &e.RunAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
