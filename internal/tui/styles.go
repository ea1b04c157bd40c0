package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/conductor/internal/model"
)

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00BFFF") // Cyan, primary accent
	colorAccent      = lipgloss.Color("#FFD700") // Gold, attention
	colorSuccess     = lipgloss.Color("#00E676") // Green, complete
	colorDanger      = lipgloss.Color("#FF5252") // Red, blocked and errors
	colorMuted       = lipgloss.Color("#636363") // Gray, de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray, normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white, primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white, emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface, bars
	colorBlue        = lipgloss.Color("#5B8DEF") // Blue, in progress
)

// Selection indicator prepended to the active row.
const selectionIndicator = "▎"

var (
	styleTitleBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatsBar = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleErrorBar = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 1)

	styleRowSelected = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleRowNormal = lipgloss.NewStyle().
			Foreground(colorMutedLight)

	styleDetailTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailLabel = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)
)

// statusStyle returns the color style for a track status.
func statusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusComplete:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case model.StatusBlocked:
		return lipgloss.NewStyle().Foreground(colorDanger)
	default:
		return lipgloss.NewStyle().Foreground(colorMutedLight)
	}
}

// priorityStyle returns the color style for a priority level.
func priorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityCritical:
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(colorAccent)
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(colorMuted)
	default:
		return lipgloss.NewStyle().Foreground(colorMutedLight)
	}
}

// phaseStatusIcon maps a derived phase status to its board glyph.
func phaseStatusIcon(s model.PhaseStatus) string {
	switch s {
	case model.PhaseComplete:
		return "✓"
	case model.PhaseActive:
		return "◎"
	case model.PhaseBlocked:
		return "✗"
	default:
		return "·"
	}
}

// progressBar renders a fixed-width unicode progress bar.
func progressBar(percent float64, width int) string {
	if width < 2 {
		return ""
	}
	filled := int(percent/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := lipgloss.NewStyle().Foreground(colorBlue)
	if percent >= 100 {
		style = lipgloss.NewStyle().Foreground(colorSuccess)
	}
	return style.Render(bar)
}
