package model

import (
	"os"
	"path/filepath"
	"time"
)

// IndexFileName is the master index at the root of the conductor directory.
// Its presence defines a conductor directory; a change to it invalidates the
// whole track collection.
const IndexFileName = "tracks.md"

// Per-track file names inside tracks/<id>/.
const (
	MetadataFileName = "metadata.json"
	MetaYAMLFileName = "meta.yaml"
	PlanFileName     = "plan.md"
	SpecFileName     = "spec.md"
)

// ReloadScope is the result of classifying a batch of changed file paths:
// either everything must be re-parsed, or only the listed tracks need to be
// re-merged.
type ReloadScope struct {
	Full   bool
	Tracks []TrackID
}

// ClassifyChanges maps changed file paths to the minimal reload required.
// Any path whose basename is the index file forces a full reload, no matter
// what else is in the batch. Otherwise each path of the shape
// .../tracks/<id>/<file> contributes its track ID, deduplicated in
// first-seen order. Paths outside that shape contribute nothing.
func ClassifyChanges(paths []string) ReloadScope {
	var ids []TrackID
	seen := make(map[TrackID]bool)

	for _, p := range paths {
		switch filepath.Base(p) {
		case IndexFileName:
			return ReloadScope{Full: true}
		case MetadataFileName, MetaYAMLFileName, PlanFileName, SpecFileName:
			if id, ok := trackIDFromPath(p); ok && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	return ReloadScope{Tracks: ids}
}

// trackIDFromPath extracts the track ID from a path like
// .../tracks/<id>/plan.md. The parent's parent must literally be "tracks".
func trackIDFromPath(p string) (TrackID, bool) {
	parent := filepath.Dir(p)
	id := filepath.Base(parent)
	if id == "." || id == string(filepath.Separator) {
		return "", false
	}
	if filepath.Base(filepath.Dir(parent)) != "tracks" {
		return "", false
	}
	return TrackID(id), true
}

// FileCache remembers file modification times so callers can skip reloads
// for paths that have not actually changed since the last observation.
type FileCache struct {
	mtimes map[string]time.Time
}

// NewFileCache returns an empty cache.
func NewFileCache() *FileCache {
	return &FileCache{mtimes: make(map[string]time.Time)}
}

// Observe records the current mtime for a path. A path that no longer
// exists is forgotten, so a later recreation counts as a change.
func (c *FileCache) Observe(path string) {
	info, err := os.Stat(path)
	if err != nil {
		delete(c.mtimes, path)
		return
	}
	c.mtimes[path] = info.ModTime()
}

// Changed reports whether a path changed relative to the cached observation.
// Unobserved existing paths count as changed, as does the disappearance of a
// previously observed path. A path never seen and still missing does not.
func (c *FileCache) Changed(path string) bool {
	cached, ok := c.mtimes[path]
	info, err := os.Stat(path)
	if err != nil {
		return ok
	}
	if !ok {
		return true
	}
	return info.ModTime().After(cached)
}
