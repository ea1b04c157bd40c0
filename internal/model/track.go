package model

import "time"

// TrackID is the unique, case-sensitive key for a track, derived from the
// track's directory name as it appears in tracks.md link targets.
type TrackID string

func (id TrackID) String() string { return string(id) }

// Track is the authoritative aggregate for one unit of work. It is created
// by the index parser (one per tracks.md entry) and then enriched in place
// by MergeMetadata and MergePlan. Within a load, each Track is owned by a
// single merge sequence; a full reload discards and rebuilds the whole
// collection rather than patching it.
type Track struct {
	ID        TrackID
	Title     string
	Status    Status
	Priority  Priority
	Type      TrackType
	Phase     string // current phase name, derived from the plan
	CreatedAt time.Time
	UpdatedAt time.Time

	Dependencies []TrackID
	TasksTotal   int
	TasksDone    int
	Checkbox     Checkbox
	Phases       []PlanPhase
	Tags         []string
	Branch       string
	Description  string
}

// ProgressPercent is completed/total as a percentage; zero when the track
// has no tasks. Always within [0, 100] for counts the merge engine produces.
func (t *Track) ProgressPercent() float64 {
	if t.TasksTotal == 0 {
		return 0
	}
	return float64(t.TasksDone) / float64(t.TasksTotal) * 100
}

// IsComplete reports whether the track is finished, either by status or by
// having every task ticked.
func (t *Track) IsComplete() bool {
	return t.Status == StatusComplete || (t.TasksTotal > 0 && t.TasksDone == t.TasksTotal)
}

// MergeMetadata folds a parsed metadata side-file into the track. Each field
// overwrites only when the metadata value is not the type's default, so
// metadata can enrich a track but never silently downgrade it. Dependencies
// replace the prior list wholesale.
func (t *Track) MergeMetadata(meta Metadata) {
	if meta.Status != StatusNew {
		t.Status = meta.Status
	}
	if meta.Priority != PriorityMedium {
		t.Priority = meta.Priority
	}
	if meta.Type != TypeOther {
		t.Type = meta.Type
	}
	if !meta.CreatedAt.IsZero() {
		t.CreatedAt = meta.CreatedAt
	}
	if !meta.UpdatedAt.IsZero() {
		t.UpdatedAt = meta.UpdatedAt
	}
	if len(meta.Dependencies) > 0 {
		deps := make([]TrackID, len(meta.Dependencies))
		for i, d := range meta.Dependencies {
			deps[i] = TrackID(d)
		}
		t.Dependencies = deps
	}
	if len(meta.Tags) > 0 {
		t.Tags = meta.Tags
	}
	if meta.Branch != "" {
		t.Branch = meta.Branch
	}
	if meta.Description != "" {
		t.Description = meta.Description
	}
}

// MergePlan replaces the track's phases with a freshly parsed plan and
// recomputes the task counters as exact sums over the new phases. The
// current phase label becomes the first Active or Pending phase, falling
// back to the last phase when everything is complete.
func (t *Track) MergePlan(phases []PlanPhase) {
	total, done := 0, 0
	for _, p := range phases {
		total += len(p.Tasks)
		done += p.TasksDone()
	}
	t.TasksTotal = total
	t.TasksDone = done
	t.Phases = phases

	t.Phase = ""
	for i := range t.Phases {
		if t.Phases[i].Status == PhaseActive || t.Phases[i].Status == PhasePending {
			t.Phase = t.Phases[i].Name
			break
		}
	}
	if t.Phase == "" && len(t.Phases) > 0 {
		t.Phase = t.Phases[len(t.Phases)-1].Name
	}
}

// MarkAllTasksDone forces every task and phase to complete and pins the
// counters at 100%. Applied when a track's status is Complete but its plan
// file still shows unticked boxes; the status is the display truth.
func (t *Track) MarkAllTasksDone() {
	for i := range t.Phases {
		for j := range t.Phases[i].Tasks {
			t.Phases[i].Tasks[j].Done = true
		}
		t.Phases[i].Status = PhaseComplete
	}
	t.TasksDone = t.TasksTotal
}

// PlanPhase is a named, ordered group of tasks within a plan. Its status is
// a pure function of its tasks and the surrounding phases; see
// DerivePhaseStatuses.
type PlanPhase struct {
	Name   string
	Status PhaseStatus
	Tasks  []PlanTask
}

// TasksDone counts ticked tasks in the phase.
func (p *PlanPhase) TasksDone() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Done {
			n++
		}
	}
	return n
}

// ProgressPercent is the phase's own completion ratio; zero for empty phases.
func (p *PlanPhase) ProgressPercent() float64 {
	if len(p.Tasks) == 0 {
		return 0
	}
	return float64(p.TasksDone()) / float64(len(p.Tasks)) * 100
}

// PlanTask is a single checklist item. Immutable once parsed; plans are
// reconstructed wholesale on every parse.
type PlanTask struct {
	Text string
	Done bool
}

// Metadata is the transient result of parsing one metadata side-file. It is
// consumed by a single MergeMetadata call and never stored.
type Metadata struct {
	Status       Status
	Priority     Priority
	Type         TrackType
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Dependencies []string
	Tags         []string
	Branch       string
	Description  string
}

// DerivePhaseStatuses assigns each phase's status from its tasks, in a
// single forward pass over document order:
//   - a phase with no tasks is Pending and is never promoted to Active
//   - a phase with all tasks done is Complete
//   - the first not-fully-done phase with tasks becomes Active
//   - every later not-fully-done phase is Pending, even with partial progress
//
// At most one phase ends up Active.
func DerivePhaseStatuses(phases []PlanPhase) {
	foundActive := false
	for i := range phases {
		p := &phases[i]
		if len(p.Tasks) == 0 {
			p.Status = PhasePending
			continue
		}
		if p.TasksDone() == len(p.Tasks) {
			p.Status = PhaseComplete
			continue
		}
		if !foundActive {
			p.Status = PhaseActive
			foundActive = true
		} else {
			p.Status = PhasePending
		}
	}
}
