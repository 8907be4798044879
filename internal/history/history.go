// Package history persists lint results in a local SQLite database so
// score evolution can be tracked per collection across runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/linterman/linterman/internal/linter"
)

const schema = `
CREATE TABLE IF NOT EXISTS lint_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	score INTEGER NOT NULL,
	errors INTEGER NOT NULL,
	warnings INTEGER NOT NULL,
	infos INTEGER NOT NULL,
	total_requests INTEGER NOT NULL,
	fixes_applied INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_lint_runs_collection ON lint_runs(collection);
`

// Store is a handle to the history database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded lint run.
type Entry struct {
	ID            int64  `json:"id"`
	Collection    string `json:"collection"`
	Score         int    `json:"score"`
	Errors        int    `json:"errors"`
	Warnings      int    `json:"warnings"`
	Infos         int    `json:"infos"`
	TotalRequests int    `json:"total_requests"`
	FixesApplied  int    `json:"fixes_applied"`
	CreatedAt     string `json:"created_at"`
}

// Open opens or creates the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the outcome of one lint run for the named collection.
func (s *Store) Record(ctx context.Context, collectionName string, res *linter.Result, fixesApplied int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lint_runs (collection, score, errors, warnings, infos, total_requests, fixes_applied)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		collectionName, res.Score,
		res.Stats.Errors, res.Stats.Warnings, res.Stats.Infos,
		res.Stats.TotalRequests, fixesApplied)
	if err != nil {
		return fmt.Errorf("recording lint run: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. An empty
// collection name returns runs for every collection.
func (s *Store) Recent(ctx context.Context, collectionName string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, collection, score, errors, warnings, infos, total_requests, fixes_applied, created_at
		 FROM lint_runs`
	args := []any{}
	if collectionName != "" {
		query += ` WHERE collection = ?`
		args = append(args, collectionName)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying lint runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Collection, &e.Score, &e.Errors, &e.Warnings,
			&e.Infos, &e.TotalRequests, &e.FixesApplied, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning lint run: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading lint runs: %w", err)
	}
	return entries, nil
}
