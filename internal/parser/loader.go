package parser

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/papapumpkin/conductor/internal/model"
)

// LoadAll loads every track from a conductor directory:
//
//  1. tracks.md defines the set of track identities.
//  2. For each track, metadata.json or meta.yaml enriches it.
//  3. For each track, plan.md supplies phases and task counts.
//
// Per-track failures (bad metadata, missing plan) are logged and leave that
// track degraded; only a missing or unreadable tracks.md fails the load. The
// returned count is how many per-track parse failures the load tolerated,
// for the history log.
func LoadAll(dir string) (map[model.TrackID]*model.Track, int, error) {
	tracks, err := loadIndex(dir)
	if err != nil {
		return nil, 0, err
	}

	parseErrs := 0
	for id, track := range tracks {
		parseErrs += mergeTrackFiles(dir, id, track)
	}

	// Display-truth normalization: a Complete track shows 100% even when its
	// plan file still has unticked boxes.
	for _, track := range tracks {
		if track.Status == model.StatusComplete {
			track.MarkAllTasksDone()
		}
	}

	return tracks, parseErrs, nil
}

// ReloadTracks re-merges metadata and plan data for the given identities in
// an existing collection, then re-normalizes them. Identities not present in
// the collection are ignored; creating tracks is the index parser's job.
// Returns the number of per-track parse failures tolerated.
func ReloadTracks(dir string, tracks map[model.TrackID]*model.Track, ids []model.TrackID) int {
	parseErrs := 0
	for _, id := range ids {
		track, ok := tracks[id]
		if !ok {
			slog.Debug("change for unknown track ignored", "track_id", id)
			continue
		}
		parseErrs += mergeTrackFiles(dir, id, track)
		if track.Status == model.StatusComplete {
			track.MarkAllTasksDone()
		}
	}
	return parseErrs
}

// loadIndex parses tracks.md into a fresh track collection. Entries without
// an identity are degraded beyond use as map keys and are dropped here.
func loadIndex(dir string) (map[model.TrackID]*model.Track, error) {
	indexPath := filepath.Join(dir, model.IndexFileName)
	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &IndexNotFoundError{Path: indexPath}
		}
		return nil, fmt.Errorf("parser: reading %s: %w", indexPath, err)
	}

	tracks := make(map[model.TrackID]*model.Track)
	for _, entry := range ParseIndex(string(data)) {
		if entry.ID == "" {
			slog.Warn("index entry has no identity link, skipping", "title", entry.Title)
			continue
		}

		// The explicit Status field wins; the checkbox is the fallback.
		status := entry.Status
		if status == model.StatusNew {
			status = entry.Checkbox.ToStatus()
		}

		deps := make([]model.TrackID, 0, len(entry.Dependencies))
		for _, d := range entry.Dependencies {
			deps = append(deps, model.TrackID(d))
		}

		tracks[entry.ID] = &model.Track{
			ID:           entry.ID,
			Title:        entry.Title,
			Status:       status,
			Priority:     entry.Priority,
			Checkbox:     entry.Checkbox,
			Tags:         entry.Tags,
			Branch:       entry.Branch,
			Dependencies: deps,
		}
	}

	return tracks, nil
}

// mergeTrackFiles applies a track's metadata and plan files to it, tolerating
// per-track failures. Each failure counts toward the returned total.
func mergeTrackFiles(dir string, id model.TrackID, track *model.Track) int {
	trackDir := filepath.Join(dir, "tracks", string(id))
	parseErrs := 0

	meta, err := ParseMetadata(trackDir, string(id))
	switch {
	case err != nil:
		slog.Warn("failed to parse metadata, using index data", "track_id", id, "error", err)
		parseErrs++
	case meta == nil:
		slog.Debug("no metadata file", "track_id", id)
	default:
		track.MergeMetadata(*meta)
	}

	planPath := filepath.Join(trackDir, model.PlanFileName)
	phases, err := ParsePlan(planPath)
	if err != nil {
		slog.Warn("failed to parse plan", "track_id", id, "error", err)
		return parseErrs + 1
	}
	track.MergePlan(phases)
	return parseErrs
}
