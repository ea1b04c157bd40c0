package tui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/conductor/internal/model"
)

// renderTitleBar draws the top bar with the dashboard name and directory.
func (m Model) renderTitleBar() string {
	title := "CONDUCTOR"
	right := m.dir
	gap := m.width - len(title) - len(right) - 4
	if gap < 1 {
		gap = 1
		right = truncate(right, m.width-len(title)-5)
	}
	return styleTitleBar.Width(m.width).Render(title + strings.Repeat(" ", gap) + right)
}

// renderStatsBar draws aggregate counts and overall progress under the title.
func (m Model) renderStatsBar() string {
	var total, active, blocked, done int
	var tasksTotal, tasksDone int
	for _, t := range m.tracks {
		total++
		tasksTotal += t.TasksTotal
		tasksDone += t.TasksDone
		switch t.Status {
		case model.StatusComplete:
			done++
		case model.StatusBlocked:
			blocked++
		case model.StatusInProgress:
			active++
		}
	}

	var overall float64
	if tasksTotal > 0 {
		overall = float64(tasksDone) / float64(tasksTotal) * 100
	}

	stats := fmt.Sprintf("%d tracks · %d active · %d blocked · %d done · %s %.0f%%",
		total, active, blocked, done, progressBar(overall, 12), overall)
	return styleStatsBar.Render(stats)
}

// renderStatusBar draws the bottom bar: mode labels, search state, errors,
// and key hints.
func (m Model) renderStatusBar() string {
	if m.loadErr != "" {
		return styleErrorBar.Width(m.width).Render("error: " + truncate(m.loadErr, m.width-10))
	}

	if m.searching {
		return styleStatusBar.Width(m.width).Render(m.searchInput.View())
	}

	left := fmt.Sprintf("filter: %s · sort: %s", m.filter.Label(), m.sorter.Label())
	if m.searchQuery != "" {
		left += fmt.Sprintf(" · search: %q", m.searchQuery)
	}
	if !m.lastReload.IsZero() {
		left += " · loaded " + m.lastReload.Format("15:04:05")
	}

	hints := "? help · q quit"
	gap := m.width - len(left) - len(hints) - 4
	if gap < 1 {
		return styleStatusBar.Width(m.width).Render(left)
	}
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + hints)
}

// renderHelp draws the key binding reference overlay.
func (m Model) renderHelp() string {
	rows := []struct{ keys, desc string }{
		{"↑/k, ↓/j", "move selection"},
		{"g, G", "first / last track"},
		{"enter", "open track detail"},
		{"f", "cycle filter (All → Active → Blocked → Done)"},
		{"s", "cycle sort (Recent → Progress)"},
		{"/", "search by ID, title, or tag"},
		{"r", "reload from disk"},
		{"esc", "back / clear search"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styleDetailTitle.Render("Key Bindings"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n",
			styleDetailLabel.Render(fmt.Sprintf("%-12s", r.keys)), r.desc))
	}
	return styleOverlay.Render(b.String())
}
