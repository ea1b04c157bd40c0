// Package history records per-load statistics in a local SQLite database so
// `conductor history` can show how the track set evolved across a session.
// Only load observability data is stored, never the merged tracks
// themselves.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// schema is executed on every open; IF NOT EXISTS keeps it idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS loads (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at      TIMESTAMP NOT NULL,
    duration_ms     INTEGER NOT NULL,
    scope           TEXT NOT NULL,
    tracks_total    INTEGER NOT NULL,
    tracks_new      INTEGER NOT NULL,
    tracks_active   INTEGER NOT NULL,
    tracks_blocked  INTEGER NOT NULL,
    tracks_complete INTEGER NOT NULL,
    tasks_total     INTEGER NOT NULL,
    tasks_done      INTEGER NOT NULL,
    parse_errors    INTEGER NOT NULL DEFAULT 0
);
`

// LoadStats describes one completed load or reload.
type LoadStats struct {
	StartedAt      time.Time
	Duration       time.Duration
	Scope          string // "full" or "partial"
	TracksTotal    int
	TracksNew      int
	TracksActive   int
	TracksBlocked  int
	TracksComplete int
	TasksTotal     int
	TasksDone      int
	ParseErrors    int
}

// Store is a SQLite-backed load-history log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath, enables WAL mode
// and a busy timeout, and creates the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and pooled connections
	// would each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("history: close: %w", err)
	}
	return nil
}

// Record appends one load's stats.
func (s *Store) Record(ctx context.Context, stats LoadStats) error {
	const q = `
		INSERT INTO loads (
			started_at, duration_ms, scope,
			tracks_total, tracks_new, tracks_active, tracks_blocked, tracks_complete,
			tasks_total, tasks_done, parse_errors
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		stats.StartedAt.UTC().Format(time.RFC3339),
		stats.Duration.Milliseconds(),
		stats.Scope,
		stats.TracksTotal, stats.TracksNew, stats.TracksActive,
		stats.TracksBlocked, stats.TracksComplete,
		stats.TasksTotal, stats.TasksDone, stats.ParseErrors,
	)
	if err != nil {
		return fmt.Errorf("history: record load: %w", err)
	}
	return nil
}

// Recent returns the newest loads, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]LoadStats, error) {
	const q = `
		SELECT started_at, duration_ms, scope,
		       tracks_total, tracks_new, tracks_active, tracks_blocked, tracks_complete,
		       tasks_total, tasks_done, parse_errors
		FROM loads ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent loads: %w", err)
	}
	defer rows.Close()

	var out []LoadStats
	for rows.Next() {
		var st LoadStats
		var started string
		var durationMS int64
		if err := rows.Scan(&started, &durationMS, &st.Scope,
			&st.TracksTotal, &st.TracksNew, &st.TracksActive,
			&st.TracksBlocked, &st.TracksComplete,
			&st.TasksTotal, &st.TasksDone, &st.ParseErrors); err != nil {
			return nil, fmt.Errorf("history: scan load: %w", err)
		}
		st.StartedAt, _ = time.Parse(time.RFC3339, started)
		st.Duration = time.Duration(durationMS) * time.Millisecond
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate loads: %w", err)
	}
	return out, nil
}
