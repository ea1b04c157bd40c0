package tui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/conductor/internal/model"
)

// renderDetailScreen draws the maximized detail view for the selected track.
func (m Model) renderDetailScreen() string {
	track := m.selected()
	if track == nil {
		return styleRowNormal.Render("  no track selected")
	}

	var b strings.Builder
	b.WriteString(styleTitleBar.Width(m.width).Render(string(track.ID)))
	b.WriteString("\n")
	b.WriteString(stylePanel.Width(m.width - 2).Render(m.detail.View()))
	b.WriteString("\n")
	b.WriteString(styleStatusBar.Width(m.width).Render("esc back · ↑/↓ scroll · q quit"))
	return b.String()
}

// renderDetail builds the scrollable detail body for a track. The full track
// map is needed to resolve reverse dependencies.
func renderDetail(t *model.Track, all map[model.TrackID]*model.Track, width int) string {
	var b strings.Builder

	b.WriteString(styleDetailTitle.Render(t.Title))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styleDetailLabel.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("Status", statusStyle(t.Status).Render(t.Status.Label()))
	field("Priority", priorityStyle(t.Priority).Render(t.Priority.Label()))
	field("Type", t.Type.Label())
	field("Branch", t.Branch)
	field("Created", formatDetailDate(t))
	field("Updated", formatUpdated(t))
	if len(t.Tags) > 0 {
		field("Tags", strings.Join(t.Tags, ", "))
	}
	field("Progress", fmt.Sprintf("%s %.1f%% (%d/%d tasks)",
		progressBar(t.ProgressPercent(), 24), t.ProgressPercent(), t.TasksDone, t.TasksTotal))

	if len(t.Dependencies) > 0 {
		deps := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			deps[i] = string(d)
		}
		field("Depends on", strings.Join(deps, ", "))
	}
	if blockers := blockedBy(t.ID, all); len(blockers) > 0 {
		field("Blocks", strings.Join(blockers, ", "))
	}

	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(t.Description)
		b.WriteString("\n")
	}

	if len(t.Phases) > 0 {
		b.WriteString("\n")
		b.WriteString(styleDetailTitle.Render("Plan"))
		b.WriteString("\n")
		for _, phase := range t.Phases {
			icon := phaseStatusIcon(phase.Status)
			b.WriteString(fmt.Sprintf("%s %s (%d/%d)\n",
				icon, phase.Name, phase.TasksDone(), len(phase.Tasks)))
			for _, task := range phase.Tasks {
				box := "[ ]"
				if task.Done {
					box = "[x]"
				}
				b.WriteString("    " + box + " " + wrapText(task.Text, width-8, "        ") + "\n")
			}
		}
	}

	return b.String()
}

// blockedBy lists the IDs of tracks that declare id as a dependency.
func blockedBy(id model.TrackID, all map[model.TrackID]*model.Track) []string {
	var out []string
	for _, other := range all {
		for _, dep := range other.Dependencies {
			if dep == id {
				out = append(out, string(other.ID))
			}
		}
	}
	return out
}

func formatDetailDate(t *model.Track) string {
	if t.CreatedAt.IsZero() {
		return ""
	}
	return t.CreatedAt.Format("2006-01-02")
}

func formatUpdated(t *model.Track) string {
	if t.UpdatedAt.IsZero() {
		return ""
	}
	return t.UpdatedAt.Format("2006-01-02")
}

// wrapText soft-wraps long task text at word boundaries.
func wrapText(s string, width int, indent string) string {
	if width < 20 || len(s) <= width {
		return s
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if i > 0 {
			if line+1+len(w) > width {
				b.WriteString("\n" + indent)
				line = 0
			} else {
				b.WriteString(" ")
				line++
			}
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}
