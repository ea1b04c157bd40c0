package tui

import (
	"strings"

	"github.com/papapumpkin/conductor/internal/model"
)

// FilterMode selects which tracks the board shows.
type FilterMode int

const (
	FilterAll FilterMode = iota
	FilterActive
	FilterBlocked
	FilterComplete
)

// Next cycles to the following filter mode, wrapping around.
func (f FilterMode) Next() FilterMode {
	return (f + 1) % 4
}

// Label returns the display name for the status bar.
func (f FilterMode) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterBlocked:
		return "Blocked"
	case FilterComplete:
		return "Done"
	default:
		return "All"
	}
}

// Matches reports whether a track passes this filter.
func (f FilterMode) Matches(t *model.Track) bool {
	switch f {
	case FilterActive:
		return t.Status == model.StatusInProgress || t.Status == model.StatusNew
	case FilterBlocked:
		return t.Status == model.StatusBlocked
	case FilterComplete:
		return t.Status == model.StatusComplete
	default:
		return true
	}
}

// FilterModeOf parses a filter name from config or prefs, defaulting to All.
func FilterModeOf(s string) FilterMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return FilterActive
	case "blocked":
		return FilterBlocked
	case "complete", "done":
		return FilterComplete
	default:
		return FilterAll
	}
}

// BoardSort selects the board row ordering.
type BoardSort int

const (
	SortRecent BoardSort = iota
	SortProgress
)

// Next cycles to the following sort mode.
func (s BoardSort) Next() BoardSort {
	return (s + 1) % 2
}

// Label returns the display name for the status bar.
func (s BoardSort) Label() string {
	if s == SortProgress {
		return "Progress"
	}
	return "Recent"
}

// BoardSortOf parses a sort name from prefs, defaulting to Recent.
func BoardSortOf(v string) BoardSort {
	if strings.EqualFold(strings.TrimSpace(v), "progress") {
		return SortProgress
	}
	return SortRecent
}
