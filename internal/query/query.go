// Package query is the read-only reporting layer over a merged track
// collection. Every function is a pure view: it never mutates tracks, and
// iteration is identity-sorted so output is deterministic run to run.
package query

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/papapumpkin/conductor/internal/model"
)

// TrackSummary is the list-level view of a track.
type TrackSummary struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	Type            string   `json:"type"`
	ProgressPercent float64  `json:"progress_percent"`
	TasksDone       int      `json:"tasks_completed"`
	TasksTotal      int      `json:"tasks_total"`
	Tags            []string `json:"tags,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
}

// PhaseView is one plan phase in a detail response.
type PhaseView struct {
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	TasksDone       int        `json:"tasks_completed"`
	TasksTotal      int        `json:"tasks_total"`
	ProgressPercent float64    `json:"progress_percent"`
	Tasks           []TaskView `json:"tasks"`
}

// TaskView is one checklist item in a detail response.
type TaskView struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// FilePathSet resolves a track's on-disk files; only paths that exist are
// populated.
type FilePathSet struct {
	TrackDir     string `json:"track_dir"`
	PlanMD       string `json:"plan_md,omitempty"`
	MetadataJSON string `json:"metadata_json,omitempty"`
	MetaYAML     string `json:"meta_yaml,omitempty"`
}

// TrackDetail is the full single-track view.
type TrackDetail struct {
	TrackSummary
	Phase        string      `json:"phase"`
	Dependencies []string    `json:"dependencies,omitempty"`
	Branch       string      `json:"branch,omitempty"`
	Description  string      `json:"description,omitempty"`
	Phases       []PhaseView `json:"plan_phases"`
	FilePaths    FilePathSet `json:"file_paths"`
}

// StatusCounts breaks the track population down by status.
type StatusCounts struct {
	New        int `json:"new"`
	InProgress int `json:"in_progress"`
	Blocked    int `json:"blocked"`
	Complete   int `json:"complete"`
}

// AggregateSummary is the whole-directory rollup.
type AggregateSummary struct {
	TotalTracks     int          `json:"total_tracks"`
	ByStatus        StatusCounts `json:"by_status"`
	OverallProgress float64      `json:"overall_progress"`
	TasksTotal      int          `json:"total_tasks"`
	TasksDone       int          `json:"total_tasks_completed"`
}

// DependencyInfo is one node of the dependency report: what a track depends
// on and what depends on it.
type DependencyInfo struct {
	TrackID   string   `json:"track_id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	DependsOn []string `json:"depends_on"`
	Blocks    []string `json:"blocks"`
}

// OutstandingTask is one undone task with its track and phase context.
type OutstandingTask struct {
	TrackID    string `json:"track_id"`
	TrackTitle string `json:"track_title"`
	Phase      string `json:"phase"`
	Task       string `json:"task"`
}

// SortMode selects the ordering of summary lists.
type SortMode string

const (
	SortUpdated  SortMode = "updated"  // most recently updated first
	SortProgress SortMode = "progress" // highest progress first
)

// sortedTracks returns the collection as a slice ordered by identity, the
// deterministic base ordering every view starts from.
func sortedTracks(tracks map[model.TrackID]*model.Track) []*model.Track {
	out := make([]*model.Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func summarize(t *model.Track) TrackSummary {
	return TrackSummary{
		ID:              string(t.ID),
		Title:           t.Title,
		Status:          t.Status.Label(),
		Priority:        t.Priority.Label(),
		Type:            t.Type.Label(),
		ProgressPercent: t.ProgressPercent(),
		TasksDone:       t.TasksDone,
		TasksTotal:      t.TasksTotal,
		Tags:            t.Tags,
		CreatedAt:       formatDate(t.CreatedAt),
		UpdatedAt:       formatDate(t.UpdatedAt),
	}
}

// Summaries lists tracks filtered by status ("all" or empty disables the
// filter) and sorted by the given mode.
func Summaries(tracks map[model.TrackID]*model.Track, status string, sortMode SortMode) []TrackSummary {
	all := sortedTracks(tracks)

	if f := strings.ToLower(strings.TrimSpace(status)); f != "" && f != "all" {
		target := model.StatusOf(f)
		kept := all[:0]
		for _, t := range all {
			if t.Status == target {
				kept = append(kept, t)
			}
		}
		all = kept
	}

	switch sortMode {
	case SortProgress:
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].ProgressPercent() > all[j].ProgressPercent()
		})
	default:
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].UpdatedAt.After(all[j].UpdatedAt)
		})
	}

	out := make([]TrackSummary, len(all))
	for i, t := range all {
		out[i] = summarize(t)
	}
	return out
}

// Detail resolves a track by exact ID, then by unique ID substring, and
// returns its full view. Ambiguous substrings and misses are errors.
func Detail(tracks map[model.TrackID]*model.Track, dir, id string) (*TrackDetail, error) {
	track, ok := tracks[model.TrackID(id)]
	if !ok {
		var matches []*model.Track
		for _, t := range sortedTracks(tracks) {
			if strings.Contains(string(t.ID), id) {
				matches = append(matches, t)
			}
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("query: no track found matching %q", id)
		case 1:
			track = matches[0]
		default:
			ids := make([]string, len(matches))
			for i, t := range matches {
				ids[i] = string(t.ID)
			}
			return nil, fmt.Errorf("query: multiple tracks match %q: %s", id, strings.Join(ids, ", "))
		}
	}

	detail := &TrackDetail{
		TrackSummary: summarize(track),
		Phase:        track.Phase,
		Branch:       track.Branch,
		Description:  track.Description,
		FilePaths:    FilePaths(dir, string(track.ID)),
	}
	for _, d := range track.Dependencies {
		detail.Dependencies = append(detail.Dependencies, string(d))
	}
	for i := range track.Phases {
		p := &track.Phases[i]
		view := PhaseView{
			Name:            p.Name,
			Status:          p.Status.Label(),
			TasksDone:       p.TasksDone(),
			TasksTotal:      len(p.Tasks),
			ProgressPercent: p.ProgressPercent(),
		}
		for _, task := range p.Tasks {
			view.Tasks = append(view.Tasks, TaskView{Text: task.Text, Done: task.Done})
		}
		detail.Phases = append(detail.Phases, view)
	}
	return detail, nil
}

// Summary computes the aggregate rollup across all tracks.
func Summary(tracks map[model.TrackID]*model.Track) AggregateSummary {
	var s AggregateSummary
	for _, t := range tracks {
		s.TotalTracks++
		switch t.Status {
		case model.StatusInProgress:
			s.ByStatus.InProgress++
		case model.StatusBlocked:
			s.ByStatus.Blocked++
		case model.StatusComplete:
			s.ByStatus.Complete++
		default:
			s.ByStatus.New++
		}
		s.TasksTotal += t.TasksTotal
		s.TasksDone += t.TasksDone
	}
	if s.TasksTotal > 0 {
		s.OverallProgress = float64(s.TasksDone) / float64(s.TasksTotal) * 100
	}
	return s
}

// Search matches tracks whose ID, title, or any tag contains the query,
// case-insensitively.
func Search(tracks map[model.TrackID]*model.Track, queryStr string) []TrackSummary {
	q := strings.ToLower(queryStr)
	var out []TrackSummary
	for _, t := range sortedTracks(tracks) {
		if strings.Contains(strings.ToLower(string(t.ID)), q) ||
			strings.Contains(strings.ToLower(t.Title), q) ||
			anyTagContains(t.Tags, q) {
			out = append(out, summarize(t))
		}
	}
	return out
}

// ByTag matches tracks carrying the tag exactly (case-insensitive).
func ByTag(tracks map[model.TrackID]*model.Track, tag string) []TrackSummary {
	target := strings.ToLower(tag)
	var out []TrackSummary
	for _, t := range sortedTracks(tracks) {
		for _, tt := range t.Tags {
			if strings.ToLower(tt) == target {
				out = append(out, summarize(t))
				break
			}
		}
	}
	return out
}

// ByPriority matches tracks at the coerced priority level.
func ByPriority(tracks map[model.TrackID]*model.Track, priority string) []TrackSummary {
	target := model.PriorityOf(priority)
	var out []TrackSummary
	for _, t := range sortedTracks(tracks) {
		if t.Priority == target {
			out = append(out, summarize(t))
		}
	}
	return out
}

// Dependencies reports the dependency graph: per track, what it depends on
// and what it blocks. A non-empty id restricts the report to that track.
func Dependencies(tracks map[model.TrackID]*model.Track, id string) ([]DependencyInfo, error) {
	blockedBy := make(map[string][]string)
	all := sortedTracks(tracks)
	for _, t := range all {
		for _, dep := range t.Dependencies {
			blockedBy[string(dep)] = append(blockedBy[string(dep)], string(t.ID))
		}
	}

	if id != "" {
		t, ok := tracks[model.TrackID(id)]
		if !ok {
			return nil, fmt.Errorf("query: no track found with ID %q", id)
		}
		all = []*model.Track{t}
	}

	out := make([]DependencyInfo, 0, len(all))
	for _, t := range all {
		info := DependencyInfo{
			TrackID: string(t.ID),
			Title:   t.Title,
			Status:  t.Status.Label(),
			Blocks:  blockedBy[string(t.ID)],
		}
		for _, d := range t.Dependencies {
			info.DependsOn = append(info.DependsOn, string(d))
		}
		out = append(out, info)
	}
	return out, nil
}

// OutstandingTasks lists every undone task across non-Complete tracks.
func OutstandingTasks(tracks map[model.TrackID]*model.Track) []OutstandingTask {
	var out []OutstandingTask
	for _, t := range sortedTracks(tracks) {
		if t.Status == model.StatusComplete {
			continue
		}
		for i := range t.Phases {
			for _, task := range t.Phases[i].Tasks {
				if !task.Done {
					out = append(out, OutstandingTask{
						TrackID:    string(t.ID),
						TrackTitle: t.Title,
						Phase:      t.Phases[i].Name,
						Task:       task.Text,
					})
				}
			}
		}
	}
	return out
}

// FilePaths resolves a track's directory and source files, populating only
// paths that exist on disk.
func FilePaths(dir, id string) FilePathSet {
	trackDir := filepath.Join(dir, "tracks", id)
	set := FilePathSet{TrackDir: trackDir}
	if p := filepath.Join(trackDir, model.PlanFileName); exists(p) {
		set.PlanMD = p
	}
	if p := filepath.Join(trackDir, model.MetadataFileName); exists(p) {
		set.MetadataJSON = p
	}
	if p := filepath.Join(trackDir, model.MetaYAMLFileName); exists(p) {
		set.MetaYAML = p
	}
	return set
}

func anyTagContains(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
