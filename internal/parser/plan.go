package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/papapumpkin/conductor/internal/model"
)

// ParsePlan reads a track's plan.md and returns its phases with derived
// statuses. A missing or unreadable file is an error the caller reports
// per-track; the track keeps whatever plan it already had.
func ParsePlan(path string) ([]model.PlanPhase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: reading plan: %w", err)
	}
	return ParsePlanContent(string(data)), nil
}

// ParsePlanContent walks plan markdown and groups checklist items under
// phase headings. An H2 or H3 heading whose text contains "phase"
// (case-insensitive) opens a new phase; other headings are section framing
// only. A checklist item anywhere attaches to the most recently opened
// phase, or to an implicit "Tasks" phase created lazily when no phase has
// been opened yet. Phase statuses are derived once after the walk.
func ParsePlanContent(content string) []model.PlanPhase {
	var phases []model.PlanPhase
	inFence := false

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if name, ok := phaseHeading(line); ok {
			phases = append(phases, model.PlanPhase{Name: name})
			continue
		}

		text, done, ok := checklistItem(trimmed)
		if !ok {
			continue
		}

		// Soft-wrapped task text: plain continuation lines belong to the
		// item's paragraph and collapse to a single space. Sub-bullets,
		// headings, breaks, and blank lines end the item.
		for i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next == "" || isContinuationBoundary(next) {
				break
			}
			text += " " + next
			i++
		}

		text = cleanTaskText(text)
		if text == "" {
			continue
		}
		if len(phases) == 0 {
			phases = append(phases, model.PlanPhase{Name: "Tasks"})
		}
		last := &phases[len(phases)-1]
		last.Tasks = append(last.Tasks, model.PlanTask{Text: text, Done: done})
	}

	model.DerivePhaseStatuses(phases)
	return phases
}

// phaseHeading reports whether the line is an H2/H3 heading that opens a
// phase.
func phaseHeading(line string) (string, bool) {
	var text string
	switch {
	case strings.HasPrefix(line, "### "):
		text = strings.TrimPrefix(line, "### ")
	case strings.HasPrefix(line, "## "):
		text = strings.TrimPrefix(line, "## ")
	default:
		return "", false
	}
	text = strings.TrimSpace(text)
	if !strings.Contains(strings.ToLower(text), "phase") {
		return "", false
	}
	return text, true
}

// checklistItem parses "- [x] text" / "* [ ] text" list items. Leading
// indentation has already been trimmed, so nested checklist items qualify
// too.
func checklistItem(trimmed string) (text string, done, ok bool) {
	rest, found := strings.CutPrefix(trimmed, "- ")
	if !found {
		rest, found = strings.CutPrefix(trimmed, "* ")
	}
	if !found {
		return "", false, false
	}
	rest = strings.TrimLeft(rest, " ")
	switch {
	case strings.HasPrefix(rest, "[x] ") || strings.HasPrefix(rest, "[X] "):
		return rest[4:], true, true
	case rest == "[x]" || rest == "[X]":
		return "", true, true
	case strings.HasPrefix(rest, "[ ] "):
		return rest[4:], false, true
	case rest == "[ ]":
		return "", false, true
	default:
		return "", false, false
	}
}

// isContinuationBoundary reports whether a trimmed line ends a task item's
// soft-wrapped text.
func isContinuationBoundary(trimmed string) bool {
	if strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "- ") ||
		strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "+ ") ||
		strings.HasPrefix(trimmed, "```") ||
		strings.HasPrefix(trimmed, ">") {
		return true
	}
	return isThematicBreak(trimmed)
}

// cleanTaskText strips a leading "Task:" label and trims whitespace. Inline
// code spans keep their backtick markers as authored.
func cleanTaskText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "Task:")
	return strings.TrimSpace(text)
}
