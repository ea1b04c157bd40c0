package model

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Status is a track's lifecycle state, merged from the index checkbox and
// any explicit status field in tracks.md, metadata.json, or meta.yaml.
type Status int

const (
	StatusNew Status = iota
	StatusInProgress
	StatusBlocked
	StatusComplete
)

// Label returns the display name used in the dashboard and query output.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "Active"
	case StatusBlocked:
		return "Blocked"
	case StatusComplete:
		return "Complete"
	default:
		return "New"
	}
}

func (s Status) String() string { return s.Label() }

// StatusOf parses a status string leniently. It covers every spelling
// observed across metadata generations ("not_started", "planning",
// "in-progress", "implementation", "on_hold", "done", ...) and never fails:
// anything unrecognized is StatusNew.
func StatusOf(s string) Status {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "complete", "completed", "done":
		return StatusComplete
	case "in_progress", "in-progress", "active", "implementation":
		return StatusInProgress
	case "blocked", "on_hold":
		return StatusBlocked
	default:
		// not_started, new, planning, planned, and everything else.
		return StatusNew
	}
}

// UnmarshalJSON accepts any string and coerces it through StatusOf.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = StatusOf(raw)
	return nil
}

// UnmarshalYAML accepts any scalar and coerces it through StatusOf.
func (s *Status) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*s = StatusOf(raw)
	return nil
}

// Priority orders tracks from Critical (most urgent) to Low.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

func (p Priority) Label() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityLow:
		return "LOW"
	default:
		return "MEDIUM"
	}
}

func (p Priority) String() string { return p.Label() }

// PriorityOf parses a priority string leniently; unknown input is Medium.
func PriorityOf(s string) Priority {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PriorityOf(raw)
	return nil
}

func (p *Priority) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = PriorityOf(raw)
	return nil
}

// TrackType categorizes the kind of work a track represents.
type TrackType int

const (
	TypeOther TrackType = iota
	TypeFeature
	TypeBug
	TypeMigration
	TypeRefactor
)

func (t TrackType) Label() string {
	switch t {
	case TypeFeature:
		return "FEATURE"
	case TypeBug:
		return "BUG"
	case TypeMigration:
		return "MIGRATION"
	case TypeRefactor:
		return "REFACTOR"
	default:
		return "TRACK"
	}
}

func (t TrackType) String() string { return t.Label() }

// TrackTypeOf parses a type string leniently; unknown input is TypeOther.
func TrackTypeOf(s string) TrackType {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "feature", "feat":
		return TypeFeature
	case "bug", "bugfix", "fix":
		return TypeBug
	case "migration", "migrate":
		return TypeMigration
	case "refactor", "refactoring":
		return TypeRefactor
	default:
		return TypeOther
	}
}

func (t *TrackType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TrackTypeOf(raw)
	return nil
}

// Checkbox is the leading marker state of a track's H2 heading in tracks.md.
type Checkbox int

const (
	CheckboxUnchecked  Checkbox = iota // [ ] or absent
	CheckboxInProgress                 // [~] or [-]
	CheckboxChecked                    // [x] or [X]
)

// ToStatus maps a checkbox to a Status. Used as a fallback when no explicit
// status field is present for the track.
func (c Checkbox) ToStatus() Status {
	switch c {
	case CheckboxChecked:
		return StatusComplete
	case CheckboxInProgress:
		return StatusInProgress
	default:
		return StatusNew
	}
}

// PhaseStatus is derived from task completion within a plan; it is never
// authored directly.
type PhaseStatus int

const (
	PhasePending PhaseStatus = iota
	PhaseActive
	PhaseComplete
	PhaseBlocked
)

func (p PhaseStatus) Label() string {
	switch p {
	case PhaseActive:
		return "Active"
	case PhaseComplete:
		return "Complete"
	case PhaseBlocked:
		return "Blocked"
	default:
		return "Pending"
	}
}

func (p PhaseStatus) String() string { return p.Label() }
