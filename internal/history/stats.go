package history

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/papapumpkin/conductor/internal/model"
)

// DBFileName is the history database file inside the state directory.
const DBFileName = "history.db"

// DBPath is the history database location under a state directory.
func DBPath(stateDir string) string {
	return filepath.Join(stateDir, DBFileName)
}

// RecordBestEffort appends load stats to the history database in stateDir.
// History is observability, not product data, so failures are logged and
// swallowed rather than surfaced to the caller.
func RecordBestEffort(stateDir string, stats LoadStats) {
	if stateDir == "" {
		return
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		slog.Warn("failed to create state dir", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, err := Open(ctx, DBPath(stateDir))
	if err != nil {
		slog.Warn("failed to open history database", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, stats); err != nil {
		slog.Warn("failed to record load", "error", err)
	}
}

// Snapshot computes LoadStats for a completed load over the merged track
// collection. parseErrors is the per-track failure count the load tolerated.
func Snapshot(tracks map[model.TrackID]*model.Track, scope string, started time.Time, duration time.Duration, parseErrors int) LoadStats {
	stats := LoadStats{
		StartedAt:   started,
		Duration:    duration,
		Scope:       scope,
		ParseErrors: parseErrors,
	}
	for _, t := range tracks {
		stats.TracksTotal++
		stats.TasksTotal += t.TasksTotal
		stats.TasksDone += t.TasksDone
		switch t.Status {
		case model.StatusComplete:
			stats.TracksComplete++
		case model.StatusBlocked:
			stats.TracksBlocked++
		case model.StatusInProgress:
			stats.TracksActive++
		default:
			stats.TracksNew++
		}
	}
	return stats
}
