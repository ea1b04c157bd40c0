package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/conductor/internal/model"
)

const (
	colID       = 22
	colStatus   = 9
	colPriority = 10
	colBar      = 16
	colTasks    = 7
)

// renderBoard renders the track list with one row per visible track.
func (m Model) renderBoard() string {
	if len(m.rows) == 0 {
		msg := "no tracks"
		if m.searchQuery != "" || m.filter != FilterAll {
			msg = "no tracks match"
		}
		return styleRowNormal.Render("  " + msg)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Scroll window around the cursor when the board overflows.
	visible := m.height - 8
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHeader() string {
	header := fmt.Sprintf("   %-*s %-*s %-*s %-*s %*s  %s",
		colID, "TRACK",
		colStatus, "STATUS",
		colPriority, "PRIORITY",
		colBar+5, "PROGRESS",
		colTasks, "TASKS",
		"PHASE")
	return styleDetailLabel.Render(header)
}

func (m Model) renderRow(t *model.Track, selected bool) string {
	indicator := "  "
	rowStyle := styleRowNormal
	if selected {
		indicator = selectionIndicator + " "
		rowStyle = styleRowSelected
	}

	percent := t.ProgressPercent()
	id := truncate(string(t.ID), colID)
	status := statusStyle(t.Status).Render(fmt.Sprintf("%-*s", colStatus, t.Status.Label()))
	priority := priorityStyle(t.Priority).Render(fmt.Sprintf("%-*s", colPriority, t.Priority.Label()))
	tasks := fmt.Sprintf("%d/%d", t.TasksDone, t.TasksTotal)
	phase := truncate(t.Phase, 24)

	return fmt.Sprintf("%s%s %s %s %s %4.0f%%  %*s  %s",
		lipgloss.NewStyle().Foreground(colorPrimary).Render(indicator),
		rowStyle.Render(fmt.Sprintf("%-*s", colID, id)),
		status,
		priority,
		progressBar(percent, colBar),
		percent,
		colTasks, tasks,
		rowStyle.Render(phase))
}

// truncate cuts s to max runes, appending an ellipsis when it was longer.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}
