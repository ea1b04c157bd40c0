// Package watch monitors a conductor directory for edits to the files the
// parsers consume and emits debounced batches of changed paths. Deciding
// what a batch means (full vs partial reload) belongs to the model's
// classifier, not to this package.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/conductor/internal/model"
)

// DefaultDebounce is how long a file must stay quiet before its change is
// emitted. Editors fire several events per save; one batch per save is
// enough.
const DefaultDebounce = 300 * time.Millisecond

// Watcher monitors a conductor directory tree using fsnotify.
type Watcher struct {
	Dir     string
	Batches <-chan []string // read-only external channel

	batches  chan []string
	debounce time.Duration
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// New creates a watcher for the given conductor directory. A zero debounce
// uses DefaultDebounce.
func New(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan []string, 16)
	return &Watcher{
		Dir:      dir,
		Batches:  ch,
		batches:  ch,
		debounce: debounce,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start registers the conductor directory and every track subdirectory,
// then begins the event loop. New track directories are picked up as they
// appear.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", w.Dir, err)
	}

	tracksDir := filepath.Join(w.Dir, "tracks")
	if entries, err := os.ReadDir(tracksDir); err == nil {
		if err := w.watcher.Add(tracksDir); err != nil {
			return fmt.Errorf("watch: add %s: %w", tracksDir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				// Best effort: a vanished subdirectory is not fatal.
				_ = w.watcher.Add(filepath.Join(tracksDir, e.Name()))
			}
		}
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to drain.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.batches)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.flush(pending, time.Time{})
				return
			}

			// A new track directory needs its own watch registration.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
					continue
				}
			}

			if !isConductorFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				pending[event.Name] = time.Now()
			}

		case now, ok := <-ticker.C:
			if !ok {
				return
			}
			w.flush(pending, now)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next tick carries on.
		}
	}
}

// flush emits every pending path quiet for at least the debounce window as
// one batch. A zero now flushes everything. The send never blocks: a full
// buffer means the consumer is behind, so the batch goes back into pending
// for the next tick. On the final flush a full buffer drops the batch
// instead, since no further tick is coming.
func (w *Watcher) flush(pending map[string]time.Time, now time.Time) {
	var batch []string
	for file, t := range pending {
		if now.IsZero() || now.Sub(t) >= w.debounce {
			batch = append(batch, file)
			delete(pending, file)
		}
	}
	if len(batch) == 0 {
		return
	}
	select {
	case w.batches <- batch:
	default:
		if !now.IsZero() {
			for _, file := range batch {
				pending[file] = now
			}
		}
	}
}

// isConductorFile reports whether the path names one of the files the
// parsers consume.
func isConductorFile(name string) bool {
	switch filepath.Base(name) {
	case model.IndexFileName, model.MetadataFileName, model.MetaYAMLFileName,
		model.PlanFileName, model.SpecFileName:
		return true
	}
	return false
}
