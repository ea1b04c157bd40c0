// Package tui renders the conductor dashboard: a live board of tracks with
// progress bars, a detail panel per track, and filter/sort/search controls.
// It follows the Elm architecture via bubbletea; all file I/O happens in
// commands or in the single Update goroutine.
package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/conductor/internal/history"
	"github.com/papapumpkin/conductor/internal/model"
	"github.com/papapumpkin/conductor/internal/parser"
)

// tracksLoadedMsg carries the result of a full directory load.
type tracksLoadedMsg struct {
	tracks    map[model.TrackID]*model.Track
	started   time.Time
	elapsed   time.Duration
	parseErrs int
	err       error
}

// filesChangedMsg carries one debounced batch from the watcher.
type filesChangedMsg struct {
	paths []string
}

// watchClosedMsg signals that the watcher channel closed.
type watchClosedMsg struct{}

// Model is the dashboard's complete UI state.
type Model struct {
	dir      string
	stateDir string
	keys     KeyMap

	width  int
	height int

	tracks map[model.TrackID]*model.Track
	rows   []*model.Track
	cursor int

	filter FilterMode
	sorter BoardSort

	searching   bool
	searchInput textinput.Model
	searchQuery string

	showDetail bool
	detail     viewport.Model
	showHelp   bool

	batches    <-chan []string
	cache      *model.FileCache
	lastReload time.Time
	loadErr    string
}

// NewModel builds the initial dashboard state. batches may be nil when
// watching is disabled.
func NewModel(dir, stateDir string, prefs Prefs, batches <-chan []string) Model {
	input := textinput.New()
	input.Placeholder = "search tracks"
	input.Prompt = "/ "
	input.CharLimit = 64

	return Model{
		dir:         dir,
		stateDir:    stateDir,
		keys:        DefaultKeyMap(),
		filter:      FilterModeOf(prefs.Filter),
		sorter:      BoardSortOf(prefs.Sort),
		searchInput: input,
		detail:      viewport.New(0, 0),
		batches:     batches,
		cache:       model.NewFileCache(),
	}
}

// Init kicks off the first load and, when watching, the first channel read.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadTracksCmd(m.dir)}
	if m.batches != nil {
		cmds = append(cmds, waitForChanges(m.batches))
	}
	return tea.Batch(cmds...)
}

// loadTracksCmd performs a full directory load off the UI loop.
func loadTracksCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		tracks, parseErrs, err := parser.LoadAll(dir)
		return tracksLoadedMsg{
			tracks:    tracks,
			started:   started,
			elapsed:   time.Since(started),
			parseErrs: parseErrs,
			err:       err,
		}
	}
}

// waitForChanges blocks on the watcher channel for the next batch.
func waitForChanges(ch <-chan []string) tea.Cmd {
	return func() tea.Msg {
		paths, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return filesChangedMsg{paths: paths}
	}
}

// Update routes messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 6
		return m, nil

	case tracksLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.tracks = msg.tracks
		m.lastReload = time.Now()
		m.rebuildRows()
		history.RecordBestEffort(m.stateDir, history.Snapshot(m.tracks, "full", msg.started, msg.elapsed, msg.parseErrs))
		return m, nil

	case filesChangedMsg:
		cmd := m.applyChanges(msg.paths)
		return m, tea.Batch(cmd, waitForChanges(m.batches))

	case watchClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyChanges classifies a batch of changed paths and reloads accordingly.
// Paths whose mtime did not move since the last observation are dropped
// first, so editors that fire redundant events cost nothing. Partial reloads
// are cheap enough to run inline; a full reload goes back through the load
// command.
func (m *Model) applyChanges(paths []string) tea.Cmd {
	changed := make([]string, 0, len(paths))
	for _, p := range paths {
		if m.cache.Changed(p) {
			changed = append(changed, p)
			m.cache.Observe(p)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	scope := model.ClassifyChanges(changed)
	if scope.Full {
		return loadTracksCmd(m.dir)
	}
	if len(scope.Tracks) == 0 {
		return nil
	}
	started := time.Now()
	parseErrs := parser.ReloadTracks(m.dir, m.tracks, scope.Tracks)
	m.lastReload = time.Now()
	m.rebuildRows()
	history.RecordBestEffort(m.stateDir, history.Snapshot(m.tracks, "partial", started, time.Since(started), parseErrs))
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search entry swallows every key except confirm/cancel.
	if m.searching {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.searching = false
			m.searchQuery = strings.TrimSpace(m.searchInput.Value())
			m.rebuildRows()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.searching = false
			m.searchInput.SetValue("")
			m.searchQuery = ""
			m.rebuildRows()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.searchQuery = strings.TrimSpace(m.searchInput.Value())
		m.rebuildRows()
		return m, cmd
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
			m.showHelp = false
		}
		return m, nil
	}

	if m.showDetail {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Enter):
			m.showDetail = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.First):
		m.cursor = 0

	case key.Matches(msg, m.keys.Last):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}

	case key.Matches(msg, m.keys.Enter):
		if track := m.selected(); track != nil {
			m.detail.SetContent(renderDetail(track, m.tracks, m.detail.Width))
			m.detail.GotoTop()
			m.showDetail = true
		}

	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.rebuildRows()
		m.savePrefs()

	case key.Matches(msg, m.keys.Sort):
		m.sorter = m.sorter.Next()
		m.rebuildRows()
		m.savePrefs()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Back):
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.searchInput.SetValue("")
			m.rebuildRows()
		}

	case key.Matches(msg, m.keys.Reload):
		return m, loadTracksCmd(m.dir)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.savePrefs()
	return m, tea.Quit
}

// savePrefs persists filter and sort, best effort.
func (m Model) savePrefs() {
	if m.stateDir == "" {
		return
	}
	_ = SavePrefs(m.stateDir, Prefs{
		Filter: strings.ToLower(m.filter.Label()),
		Sort:   strings.ToLower(m.sorter.Label()),
	})
}

// selected returns the track under the cursor, or nil when the board is
// empty.
func (m Model) selected() *model.Track {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

// rebuildRows recomputes the visible, ordered track rows from the current
// filter, search query, and sort mode, keeping the cursor in range.
func (m *Model) rebuildRows() {
	rows := make([]*model.Track, 0, len(m.tracks))
	q := strings.ToLower(m.searchQuery)
	for _, t := range m.tracks {
		if !m.filter.Matches(t) {
			continue
		}
		if q != "" && !matchesQuery(t, q) {
			continue
		}
		rows = append(rows, t)
	}

	switch m.sorter {
	case SortProgress:
		sort.Slice(rows, func(i, j int) bool {
			pi, pj := rows[i].ProgressPercent(), rows[j].ProgressPercent()
			if pi != pj {
				return pi > pj
			}
			return rows[i].ID < rows[j].ID
		})
	default:
		sort.Slice(rows, func(i, j int) bool {
			ti, tj := rows[i].UpdatedAt, rows[j].UpdatedAt
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return rows[i].ID < rows[j].ID
		})
	}

	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// matchesQuery reports whether the lowercased query hits the track's ID,
// title, or any tag.
func matchesQuery(t *model.Track, q string) bool {
	if strings.Contains(strings.ToLower(string(t.ID)), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// View renders the full dashboard frame.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDetail {
		return m.renderDetailScreen()
	}

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(m.renderStatsBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}
