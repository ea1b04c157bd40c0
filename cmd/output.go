package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/papapumpkin/conductor/internal/config"
	"github.com/papapumpkin/conductor/internal/history"
	"github.com/papapumpkin/conductor/internal/model"
	"github.com/papapumpkin/conductor/internal/parser"
)

// loadTracks resolves config and loads the full track collection for the
// one-shot report commands, recording the load in the history database.
func loadTracks() (config.Config, map[model.TrackID]*model.Track, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}

	started := time.Now()
	tracks, parseErrs, err := parser.LoadAll(cfg.ConductorDir)
	if err != nil {
		return config.Config{}, nil, err
	}
	history.RecordBestEffort(cfg.StateDir, history.Snapshot(tracks, "full", started, time.Since(started), parseErrs))

	return cfg, tracks, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
