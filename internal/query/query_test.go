package query

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/conductor/internal/model"
)

func testTracks() map[model.TrackID]*model.Track {
	return map[model.TrackID]*model.Track{
		"auth-service": {
			ID:        "auth-service",
			Title:     "Auth Service Revamp",
			Status:    model.StatusInProgress,
			Priority:  model.PriorityHigh,
			Phase:     "Phase 2: API",
			UpdatedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			Tags:      []string{"security", "backend"},
			Dependencies: []model.TrackID{
				"db-layer",
			},
			TasksTotal: 7,
			TasksDone:  3,
			Phases: []model.PlanPhase{
				{Name: "Phase 1", Status: model.PhaseComplete, Tasks: []model.PlanTask{{Text: "Schema", Done: true}}},
				{Name: "Phase 2: API", Status: model.PhaseActive, Tasks: []model.PlanTask{{Text: "Endpoints"}, {Text: "Auth hooks"}}},
			},
		},
		"db-layer": {
			ID:         "db-layer",
			Title:      "Database Layer",
			Status:     model.StatusComplete,
			Priority:   model.PriorityMedium,
			UpdatedAt:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			TasksTotal: 4,
			TasksDone:  4,
		},
		"api-gateway": {
			ID:           "api-gateway",
			Title:        "API Gateway",
			Status:       model.StatusBlocked,
			Priority:     model.PriorityCritical,
			Dependencies: []model.TrackID{"db-layer", "auth-service"},
			Tags:         []string{"backend"},
			TasksTotal:   2,
			TasksDone:    0,
		},
	}
}

func TestSummaries(t *testing.T) {
	t.Parallel()

	t.Run("all tracks sorted by update time", func(t *testing.T) {
		t.Parallel()

		got := Summaries(testTracks(), "", SortUpdated)
		if len(got) != 3 {
			t.Fatalf("summaries = %d, want 3", len(got))
		}
		if got[0].ID != "auth-service" {
			t.Errorf("first = %q, want auth-service (newest)", got[0].ID)
		}
		if got[1].ID != "db-layer" {
			t.Errorf("second = %q, want db-layer", got[1].ID)
		}
		// Zero-time track sorts last, after the dated ones.
		if got[2].ID != "api-gateway" {
			t.Errorf("third = %q, want api-gateway", got[2].ID)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		t.Parallel()

		got := Summaries(testTracks(), "blocked", SortUpdated)
		if len(got) != 1 || got[0].ID != "api-gateway" {
			t.Fatalf("summaries = %+v, want [api-gateway]", got)
		}
	})

	t.Run("lenient status filter vocabulary", func(t *testing.T) {
		t.Parallel()

		got := Summaries(testTracks(), "done", SortUpdated)
		if len(got) != 1 || got[0].ID != "db-layer" {
			t.Fatalf("summaries = %+v, want [db-layer]", got)
		}
	})

	t.Run("progress sort", func(t *testing.T) {
		t.Parallel()

		got := Summaries(testTracks(), "all", SortProgress)
		if len(got) != 3 {
			t.Fatalf("summaries = %d, want 3", len(got))
		}
		if got[0].ID != "db-layer" {
			t.Errorf("first = %q, want db-layer (100%%)", got[0].ID)
		}
		if got[2].ID != "api-gateway" {
			t.Errorf("last = %q, want api-gateway (0%%)", got[2].ID)
		}
	})
}

func TestDetail(t *testing.T) {
	t.Parallel()

	t.Run("exact match", func(t *testing.T) {
		t.Parallel()

		detail, err := Detail(testTracks(), t.TempDir(), "auth-service")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Title != "Auth Service Revamp" {
			t.Errorf("title = %q", detail.Title)
		}
		if detail.Phase != "Phase 2: API" {
			t.Errorf("phase = %q, want %q", detail.Phase, "Phase 2: API")
		}
		if len(detail.Phases) != 2 {
			t.Fatalf("phases = %d, want 2", len(detail.Phases))
		}
		if detail.Phases[1].TasksTotal != 2 || detail.Phases[1].TasksDone != 0 {
			t.Errorf("phase 2 tasks = %d/%d, want 0/2", detail.Phases[1].TasksDone, detail.Phases[1].TasksTotal)
		}
		if len(detail.Dependencies) != 1 || detail.Dependencies[0] != "db-layer" {
			t.Errorf("dependencies = %v, want [db-layer]", detail.Dependencies)
		}
	})

	t.Run("unique substring match", func(t *testing.T) {
		t.Parallel()

		detail, err := Detail(testTracks(), t.TempDir(), "gateway")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.ID != "api-gateway" {
			t.Errorf("id = %q, want api-gateway", detail.ID)
		}
	})

	t.Run("ambiguous substring is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Detail(testTracks(), t.TempDir(), "a")
		if err == nil {
			t.Fatal("expected ambiguity error")
		}
		if !strings.Contains(err.Error(), "multiple tracks") {
			t.Errorf("error = %v, want multiple-match message", err)
		}
	})

	t.Run("miss is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := Detail(testTracks(), t.TempDir(), "nope"); err == nil {
			t.Fatal("expected not-found error")
		}
	})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	s := Summary(testTracks())
	if s.TotalTracks != 3 {
		t.Errorf("total = %d, want 3", s.TotalTracks)
	}
	if s.ByStatus.InProgress != 1 || s.ByStatus.Blocked != 1 || s.ByStatus.Complete != 1 {
		t.Errorf("by status = %+v, want 1/1/1", s.ByStatus)
	}
	if s.TasksTotal != 13 || s.TasksDone != 7 {
		t.Errorf("tasks = %d/%d, want 7/13", s.TasksDone, s.TasksTotal)
	}
	want := float64(7) / 13 * 100
	if s.OverallProgress < want-0.01 || s.OverallProgress > want+0.01 {
		t.Errorf("overall = %v, want ~%v", s.OverallProgress, want)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("matches title", func(t *testing.T) {
		t.Parallel()
		got := Search(testTracks(), "revamp")
		if len(got) != 1 || got[0].ID != "auth-service" {
			t.Fatalf("search = %+v, want [auth-service]", got)
		}
	})

	t.Run("matches tag substring", func(t *testing.T) {
		t.Parallel()
		got := Search(testTracks(), "secur")
		if len(got) != 1 || got[0].ID != "auth-service" {
			t.Fatalf("search = %+v, want [auth-service]", got)
		}
	})

	t.Run("results are identity ordered", func(t *testing.T) {
		t.Parallel()
		got := Search(testTracks(), "a")
		if len(got) != 3 {
			t.Fatalf("search = %d results, want 3", len(got))
		}
		if got[0].ID != "api-gateway" || got[1].ID != "auth-service" || got[2].ID != "db-layer" {
			t.Errorf("order = %v, want identity order", []string{got[0].ID, got[1].ID, got[2].ID})
		}
	})
}

func TestByTagAndPriority(t *testing.T) {
	t.Parallel()

	got := ByTag(testTracks(), "BACKEND")
	if len(got) != 2 {
		t.Fatalf("by tag = %d, want 2", len(got))
	}

	got = ByPriority(testTracks(), "critical")
	if len(got) != 1 || got[0].ID != "api-gateway" {
		t.Fatalf("by priority = %+v, want [api-gateway]", got)
	}

	// Unknown vocabulary coerces to Medium rather than erroring.
	got = ByPriority(testTracks(), "whatever")
	if len(got) != 1 || got[0].ID != "db-layer" {
		t.Fatalf("by coerced priority = %+v, want [db-layer]", got)
	}
}

func TestDependencies(t *testing.T) {
	t.Parallel()

	t.Run("full graph with reverse edges", func(t *testing.T) {
		t.Parallel()

		deps, err := Dependencies(testTracks(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(deps) != 3 {
			t.Fatalf("deps = %d, want 3", len(deps))
		}

		byID := make(map[string]DependencyInfo)
		for _, d := range deps {
			byID[d.TrackID] = d
		}

		db := byID["db-layer"]
		if len(db.Blocks) != 2 {
			t.Errorf("db-layer blocks = %v, want 2 entries", db.Blocks)
		}
		auth := byID["auth-service"]
		if len(auth.DependsOn) != 1 || auth.DependsOn[0] != "db-layer" {
			t.Errorf("auth depends on = %v, want [db-layer]", auth.DependsOn)
		}
		if len(auth.Blocks) != 1 || auth.Blocks[0] != "api-gateway" {
			t.Errorf("auth blocks = %v, want [api-gateway]", auth.Blocks)
		}
	})

	t.Run("single track restriction", func(t *testing.T) {
		t.Parallel()

		deps, err := Dependencies(testTracks(), "db-layer")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(deps) != 1 || deps[0].TrackID != "db-layer" {
			t.Fatalf("deps = %+v, want [db-layer]", deps)
		}
	})

	t.Run("unknown track is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := Dependencies(testTracks(), "ghost"); err == nil {
			t.Fatal("expected error for unknown track")
		}
	})
}

func TestOutstandingTasks(t *testing.T) {
	t.Parallel()

	got := OutstandingTasks(testTracks())
	// Only auth-service has phases with undone tasks; db-layer is Complete
	// and api-gateway carries counters without parsed phases.
	if len(got) != 2 {
		t.Fatalf("outstanding = %+v, want 2 tasks", got)
	}
	for _, task := range got {
		if task.TrackID != "auth-service" {
			t.Errorf("task from %q, want auth-service", task.TrackID)
		}
		if task.Phase != "Phase 2: API" {
			t.Errorf("phase = %q, want Phase 2: API", task.Phase)
		}
	}
}

func TestFilePaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	trackDir := filepath.Join(dir, "tracks", "auth-service")
	if err := os.MkdirAll(trackDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(trackDir, "plan.md"), []byte("# Plan"), 0o644); err != nil {
		t.Fatal(err)
	}

	set := FilePaths(dir, "auth-service")
	if set.TrackDir != trackDir {
		t.Errorf("track dir = %q, want %q", set.TrackDir, trackDir)
	}
	if set.PlanMD == "" {
		t.Error("plan path missing though file exists")
	}
	if set.MetadataJSON != "" || set.MetaYAML != "" {
		t.Errorf("metadata paths = %q/%q, want empty", set.MetadataJSON, set.MetaYAML)
	}
}
