package parser

import (
	"testing"

	"github.com/papapumpkin/conductor/internal/model"
)

func TestParseIndex(t *testing.T) {
	t.Parallel()

	t.Run("full entry", func(t *testing.T) {
		t.Parallel()

		src := `# Conductor Tracks

## [~] Track: Auth Service Revamp

*Link: [auth-service](./conductor/tracks/auth-service/)*

- **Priority**: High
- **Status**: In_Progress
- **Tags**: ` + "`security`, `backend`" + `
- **Branch**: ` + "`feat/auth-revamp`" + `
- **Dependencies**: db-layer, api-gateway (blocked)

Some free prose about the track.
`
		entries := ParseIndex(src)
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}

		e := entries[0]
		if e.ID != "auth-service" {
			t.Errorf("id = %q, want %q", e.ID, "auth-service")
		}
		if e.Title != "Auth Service Revamp" {
			t.Errorf("title = %q, want %q", e.Title, "Auth Service Revamp")
		}
		if e.Checkbox != model.CheckboxInProgress {
			t.Errorf("checkbox = %v, want in-progress", e.Checkbox)
		}
		if e.Status != model.StatusInProgress {
			t.Errorf("status = %v, want %v", e.Status, model.StatusInProgress)
		}
		if e.Priority != model.PriorityHigh {
			t.Errorf("priority = %v, want %v", e.Priority, model.PriorityHigh)
		}
		if len(e.Tags) != 2 || e.Tags[0] != "security" || e.Tags[1] != "backend" {
			t.Errorf("tags = %v, want [security backend]", e.Tags)
		}
		if e.Branch != "feat/auth-revamp" {
			t.Errorf("branch = %q, want %q", e.Branch, "feat/auth-revamp")
		}
		if len(e.Dependencies) != 2 || e.Dependencies[0] != "db-layer" || e.Dependencies[1] != "api-gateway" {
			t.Errorf("dependencies = %v, want [db-layer api-gateway]", e.Dependencies)
		}
	})

	t.Run("checkbox variants", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			heading string
			want    model.Checkbox
		}{
			{"## [x] Track: Done", model.CheckboxChecked},
			{"## [X] Track: Done Loud", model.CheckboxChecked},
			{"## [~] Track: Going", model.CheckboxInProgress},
			{"## [-] Track: Going Dashed", model.CheckboxInProgress},
			{"## [ ] Track: Fresh", model.CheckboxUnchecked},
			{"## Track: Bare", model.CheckboxUnchecked},
		}
		for _, tc := range cases {
			entries := ParseIndex(tc.heading + "\n")
			if len(entries) != 1 {
				t.Fatalf("%q: entries = %d, want 1", tc.heading, len(entries))
			}
			if entries[0].Checkbox != tc.want {
				t.Errorf("%q: checkbox = %v, want %v", tc.heading, entries[0].Checkbox, tc.want)
			}
		}
	})

	t.Run("title truncated at completion emoji", func(t *testing.T) {
		t.Parallel()

		entries := ParseIndex("## [x] Track: Schema Migration ✅ COMPLETE\n")
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}
		if entries[0].Title != "Schema Migration" {
			t.Errorf("title = %q, want %q", entries[0].Title, "Schema Migration")
		}
	})

	t.Run("headings without the track marker are skipped", func(t *testing.T) {
		t.Parallel()

		src := `## Active Tracks

## Track: Real One

## Completed Tracks
`
		entries := ParseIndex(src)
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1: %+v", len(entries), entries)
		}
		if entries[0].Title != "Real One" {
			t.Errorf("title = %q, want %q", entries[0].Title, "Real One")
		}
	})

	t.Run("h3 headings do not open entries", func(t *testing.T) {
		t.Parallel()

		entries := ParseIndex("### Track: Not An Entry\n")
		if len(entries) != 0 {
			t.Fatalf("entries = %d, want 0", len(entries))
		}
	})

	t.Run("identity from tracks path segment", func(t *testing.T) {
		t.Parallel()

		src := `## Track: Linked

[details](../conductor/tracks/linked-track/)
`
		entries := ParseIndex(src)
		if len(entries) != 1 || entries[0].ID != "linked-track" {
			t.Fatalf("entries = %+v, want ID linked-track", entries)
		}
	})

	t.Run("identity falls back to last path segment", func(t *testing.T) {
		t.Parallel()

		src := `## Track: Elsewhere

[details](./docs/plans/some-plan)
`
		entries := ParseIndex(src)
		if len(entries) != 1 || entries[0].ID != "some-plan" {
			t.Fatalf("entries = %+v, want ID some-plan", entries)
		}
	})

	t.Run("only first link supplies identity", func(t *testing.T) {
		t.Parallel()

		src := `## Track: Multi Link

[first](./tracks/first-id/) and [second](./tracks/second-id/)
[third](./tracks/third-id/)
`
		entries := ParseIndex(src)
		if len(entries) != 1 || entries[0].ID != "first-id" {
			t.Fatalf("entries = %+v, want ID first-id", entries)
		}
	})

	t.Run("thematic break closes the body", func(t *testing.T) {
		t.Parallel()

		src := `## Track: Divided

---

[late-link](./tracks/too-late/)
- **Priority**: Critical
`
		entries := ParseIndex(src)
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}
		if entries[0].ID != "" {
			t.Errorf("id = %q, want empty (link after break)", entries[0].ID)
		}
		if entries[0].Priority != model.PriorityMedium {
			t.Errorf("priority = %v, want default Medium", entries[0].Priority)
		}
	})

	t.Run("fenced code blocks are ignored", func(t *testing.T) {
		t.Parallel()

		src := "## Track: Fenced\n\n```\n## Track: Inside Fence\n[fake](./tracks/fake-id/)\n```\n\n[real](./tracks/real-id/)\n"
		entries := ParseIndex(src)
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1: %+v", len(entries), entries)
		}
		if entries[0].ID != "real-id" {
			t.Errorf("id = %q, want %q", entries[0].ID, "real-id")
		}
	})

	t.Run("empty title entries dropped", func(t *testing.T) {
		t.Parallel()

		entries := ParseIndex("## [x] Track: ✅\n")
		if len(entries) != 0 {
			t.Fatalf("entries = %d, want 0", len(entries))
		}
	})

	t.Run("empty field values do not overwrite", func(t *testing.T) {
		t.Parallel()

		src := `## Track: Sparse

- **Priority**: High
- **Status**:
`
		entries := ParseIndex(src)
		if len(entries) != 1 {
			t.Fatalf("entries = %d, want 1", len(entries))
		}
		if entries[0].Priority != model.PriorityHigh {
			t.Errorf("priority = %v, want High", entries[0].Priority)
		}
		if entries[0].Status != model.StatusNew {
			t.Errorf("status = %v, want New", entries[0].Status)
		}
	})
}

func TestBoldField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line      string
		key, want string
		ok        bool
	}{
		{"- **Priority**: High", "Priority", "High", true},
		{"- **Priority:** High", "Priority", "High", true},
		{"**Status**: done", "Status", "done", true},
		{"no fields here", "", "", false},
		{"- **unterminated", "", "", false},
	}
	for _, tc := range cases {
		key, value, ok := boldField(tc.line)
		if ok != tc.ok {
			t.Errorf("boldField(%q) ok = %v, want %v", tc.line, ok, tc.ok)
			continue
		}
		if ok && (key != tc.key || value != tc.want) {
			t.Errorf("boldField(%q) = %q, %q, want %q, %q", tc.line, key, value, tc.key, tc.want)
		}
	}
}
