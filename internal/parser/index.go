// Package parser reads the three hand-authored file formats of a conductor
// directory (the tracks.md master index, per-track metadata side-files, and
// per-track plan.md files) and reconciles them into the model's Track
// collection. The inputs are semi-structured prose written by humans across
// several schema generations, so every parser here is tolerant: missing
// fields default, unknown vocabulary coerces, and only a missing index
// aborts a load.
package parser

import (
	"strings"

	"github.com/papapumpkin/conductor/internal/model"
)

// IndexEntry is one track entry from tracks.md, carrying whatever the index
// authored for it. Document order is preserved by the caller.
type IndexEntry struct {
	ID           model.TrackID
	Title        string
	Checkbox     model.Checkbox
	Status       model.Status
	Priority     model.Priority
	Tags         []string
	Branch       string
	Dependencies []string
}

// ParseIndex walks the markdown of tracks.md and returns its track entries
// in document order. An H2 heading containing "Track:" opens an entry;
// section-divider headings without the marker are skipped. The entry's body
// supplies the identity (first hyperlink) and bold-keyed fields until a
// thematic break or the next H2 closes it. Entries whose title resolves
// empty are dropped; duplicate identities are not deduplicated here.
func ParseIndex(content string) []IndexEntry {
	var entries []IndexEntry
	var cur *IndexEntry
	open := false // body of cur still accepts links/fields
	inFence := false

	flush := func() {
		if cur != nil {
			entries = append(entries, *cur)
		}
		cur = nil
		open = false
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if strings.HasPrefix(line, "## ") && !strings.HasPrefix(line, "### ") {
			flush()
			if e, ok := parseTrackHeading(strings.TrimPrefix(line, "## ")); ok {
				cur = &e
				open = true
			}
			continue
		}

		if cur == nil || !open {
			continue
		}

		if isThematicBreak(trimmed) {
			// The entry stays pending until the next H2, but its body is done.
			open = false
			continue
		}

		if cur.ID == "" {
			if dest, ok := firstLinkDest(line); ok {
				cur.ID = model.TrackID(trackIDFromLink(dest))
			}
		}

		if key, value, ok := boldField(line); ok {
			applyField(cur, key, value)
		}
	}
	flush()

	return entries
}

// parseTrackHeading parses a heading like "[x] Track: Dashboard Overhaul ✅
// COMPLETE". Headings without the "Track:" marker are section dividers and
// return ok=false, as do entries whose title resolves empty.
func parseTrackHeading(text string) (IndexEntry, bool) {
	text = strings.TrimSpace(text)

	marker := strings.Index(text, "Track:")
	if marker < 0 {
		return IndexEntry{}, false
	}

	checkbox := model.CheckboxUnchecked
	switch {
	case strings.HasPrefix(text, "[x]") || strings.HasPrefix(text, "[X]"):
		checkbox = model.CheckboxChecked
	case strings.HasPrefix(text, "[~]") || strings.HasPrefix(text, "[-]"):
		checkbox = model.CheckboxInProgress
	}

	title := text[marker+len("Track:"):]
	if i := strings.Index(title, "✅"); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return IndexEntry{}, false
	}

	return IndexEntry{
		Title:    title,
		Checkbox: checkbox,
		Priority: model.PriorityMedium,
	}, true
}

// firstLinkDest returns the destination of the first inline markdown link on
// the line, e.g. "(./conductor/tracks/foo/)" in "*Link: [text](./...)*".
func firstLinkDest(line string) (string, bool) {
	close := strings.Index(line, "](")
	if close < 0 {
		return "", false
	}
	rest := line[close+2:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// trackIDFromLink extracts the identity from a link destination: the path
// segment after the last "/tracks/" component, or the final path segment
// when no tracks component exists.
func trackIDFromLink(dest string) string {
	dest = strings.TrimRight(dest, "/")
	if pos := strings.LastIndex(dest, "/tracks/"); pos >= 0 {
		id := strings.TrimRight(dest[pos+len("/tracks/"):], "/")
		if id != "" {
			return id
		}
	}
	if i := strings.LastIndexByte(dest, '/'); i >= 0 {
		return dest[i+1:]
	}
	return dest
}

// boldField finds a "**Key**: value" run on the line. The colon may sit
// inside or after the closing markers.
func boldField(line string) (key, value string, ok bool) {
	start := strings.Index(line, "**")
	if start < 0 {
		return "", "", false
	}
	rest := line[start+2:]
	end := strings.Index(rest, "**")
	if end < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[:end]), ":"))
	value = strings.TrimSpace(rest[end+2:])
	value = strings.TrimSpace(strings.TrimPrefix(value, ":"))
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// applyField applies a bold-keyed field value to the entry, coercing enums
// and splitting list-valued fields on commas.
func applyField(e *IndexEntry, key, value string) {
	if value == "" {
		return
	}
	switch key {
	case "Priority":
		e.Priority = model.PriorityOf(value)
	case "Status":
		e.Status = model.StatusOf(value)
	case "Tags":
		e.Tags = splitList(value)
	case "Branch":
		if branch := strings.Trim(value, "`"); branch != "" {
			e.Branch = branch
		}
	case "Dependencies", "Depends on":
		e.Dependencies = splitList(value)
	}
}

// splitList splits a comma-separated field value, stripping surrounding
// backtick and parenthesis punctuation from each item.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		item = strings.Trim(item, "`")
		if i := strings.IndexByte(item, '('); i >= 0 {
			item = item[:i]
		}
		item = strings.TrimSpace(strings.Trim(item, "()"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func isThematicBreak(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}
