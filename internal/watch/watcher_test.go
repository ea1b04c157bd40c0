package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func collectBatch(t *testing.T, ch <-chan []string, timeout time.Duration) []string {
	t.Helper()
	select {
	case batch := <-ch:
		return batch
	case <-time.After(timeout):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func TestWatcherEmitsDebouncedBatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trackDir := filepath.Join(dir, "tracks", "auth")
	if err := os.MkdirAll(trackDir, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	planPath := filepath.Join(trackDir, "plan.md")
	if err := os.WriteFile(planPath, []byte("- [ ] task"), 0o644); err != nil {
		t.Fatal(err)
	}

	batch := collectBatch(t, w.Batches, 3*time.Second)
	found := false
	for _, p := range batch {
		if p == planPath {
			found = true
		}
	}
	if !found {
		t.Errorf("batch = %v, want it to contain %s", batch, planPath)
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "tracks"), 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tracks.md"), []byte("# Tracks"), 0o644); err != nil {
		t.Fatal(err)
	}

	batch := collectBatch(t, w.Batches, 3*time.Second)
	for _, p := range batch {
		if filepath.Base(p) == "notes.txt" {
			t.Errorf("batch contains unrelated file: %v", batch)
		}
	}
	found := false
	for _, p := range batch {
		if filepath.Base(p) == "tracks.md" {
			found = true
		}
	}
	if !found {
		t.Errorf("batch = %v, want tracks.md", batch)
	}
}

func TestFlushDoesNotBlockOnFullBuffer(t *testing.T) {
	t.Parallel()

	w := &Watcher{
		batches:  make(chan []string, 1),
		debounce: time.Millisecond,
	}

	now := time.Now()
	old := now.Add(-time.Second)

	// First flush fills the single-slot buffer.
	w.flush(map[string]time.Time{"/x/tracks/a/plan.md": old}, now)
	if len(w.batches) != 1 {
		t.Fatalf("buffer len = %d, want 1", len(w.batches))
	}

	// With the buffer full, flush must return and re-queue the paths for
	// the next tick rather than block.
	pending := map[string]time.Time{"/x/tracks/b/plan.md": old}
	done := make(chan struct{})
	go func() {
		w.flush(pending, now)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("flush blocked on a full buffer")
	}
	if _, ok := pending["/x/tracks/b/plan.md"]; !ok {
		t.Error("path not re-queued after full buffer")
	}

	// The final flush has no next tick; a full buffer drops the batch.
	final := map[string]time.Time{"/x/tracks/c/plan.md": old}
	w.flush(final, time.Time{})
	if len(final) != 0 {
		t.Errorf("final flush left pending = %v, want empty", final)
	}
	if len(w.batches) != 1 {
		t.Errorf("buffer len = %d, want 1 (dropped batch must not appear)", len(w.batches))
	}
}

func TestIsConductorFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want bool
	}{
		{"/x/tracks.md", true},
		{"/x/tracks/a/plan.md", true},
		{"/x/tracks/a/metadata.json", true},
		{"/x/tracks/a/meta.yaml", true},
		{"/x/tracks/a/spec.md", true},
		{"/x/tracks/a/notes.md", false},
		{"/x/readme.md", false},
	}
	for _, tc := range cases {
		if got := isConductorFile(tc.path); got != tc.want {
			t.Errorf("isConductorFile(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
