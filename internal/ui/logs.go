package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cocteler/cocteler/internal/logtail"
)

// logLevels is the minimum-level cycle; "" shows everything.
var logLevels = []string{"", "debug", "info", "warn", "error"}

// logState holds all log-related state.
type logState struct {
	entries  []logtail.Entry
	lines    []string // plain text of the visible entries, for search
	follow   bool
	minLevel string
	readErr  string

	// Search
	searchActive   bool
	searchQuery    string
	searchRegex    *regexp.Regexp
	searchInput    textinput.Model
	searchMatches  []int // Line indices that match
	searchMatchIdx int   // Current match index
}

func newLogState() logState {
	ti := textinput.New()
	ti.Placeholder = "Search logs..."
	ti.CharLimit = 100
	return logState{follow: true, searchInput: ti}
}

func (s logState) levelLabel() string {
	if s.minLevel == "" {
		return "all"
	}
	return s.minLevel
}

// visible returns the entries at or above the minimum level.
func (s logState) visible() []logtail.Entry {
	if s.minLevel == "" {
		return s.entries
	}
	return logtail.AtLeast(s.entries, s.minLevel)
}

type logEntriesMsg struct {
	entries []logtail.Entry
	err     error
}

// readLogsCmd tails the application's own log file.
func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logEntriesMsg{}
		}
		entries, err := logtail.ReadEntries(path, LogTailLines)
		return logEntriesMsg{entries: entries, err: err}
	}
}

func (m *Model) handleLogEntries(msg logEntriesMsg) {
	if msg.err != nil {
		m.logState.readErr = msg.err.Error()
		return
	}
	m.logState.readErr = ""
	m.logState.entries = msg.entries
	m.updateLogViewport()
}

// updateLogViewport sizes the viewport and refreshes its content.
func (m *Model) updateLogViewport() {
	width := max(m.width-4, 10)
	// content height minus the box borders and the status line below
	height := max(m.contentHeight()-3, 1)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(width, height)
	}
	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	visible := m.logState.visible()
	lines := make([]string, 0, len(visible))
	for _, e := range visible {
		lines = append(lines, formatLogEntry(e))
	}
	m.logState.lines = lines
	m.findSearchMatches()
	m.logViewport.SetContent(m.renderLogContent())

	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

// formatLogEntry renders an entry as one plain line:
// 15:04:05 INFO  logger  message  key=value ...
func formatLogEntry(e logtail.Entry) string {
	if e.IsRaw() {
		return e.Raw
	}
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteString(" ")
	}
	b.WriteString(padRight(strings.ToUpper(e.Level), 5))
	if e.Logger != "" {
		b.WriteString(" ")
		b.WriteString(e.Logger)
	}
	b.WriteString("  ")
	b.WriteString(e.Message)
	for _, k := range e.FieldKeys() {
		fmt.Fprintf(&b, "  %s=%s", k, e.Fields[k])
	}
	return b.String()
}

// renderLogContent colors each line by level and highlights search matches.
func (m *Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.logViewport.Width

	if len(m.logState.lines) == 0 {
		msg := "No log entries yet"
		if m.logState.minLevel != "" {
			msg = "No entries at " + m.logState.minLevel + " or above"
		}
		return bg.FillLine(bg.Render(msg, styles.MutedText), width)
	}

	matches := make(map[int]bool, len(m.logState.searchMatches))
	for _, i := range m.logState.searchMatches {
		matches[i] = true
	}
	active := -1
	if len(m.logState.searchMatches) > 0 {
		active = m.logState.searchMatches[m.logState.searchMatchIdx]
	}

	visible := m.logState.visible()
	out := make([]string, len(m.logState.lines))
	for i, line := range m.logState.lines {
		text := truncate(line, width)
		switch {
		case i == active:
			out[i] = styles.Selected.Width(width).Render(text)
		case matches[i]:
			out[i] = bg.FillLine(bg.Render(text, styles.WarningText.Bold(true)), width)
		default:
			out[i] = bg.FillLine(bg.Render(text, m.levelStyle(visible[i].Level, styles)), width)
		}
	}
	return strings.Join(out, "\n")
}

func (m *Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToLower(level) {
	case "error", "dpanic", "panic", "fatal":
		return styles.DangerText
	case "warn":
		return styles.WarningText
	case "debug":
		return styles.FaintText
	case "":
		return styles.MutedText
	default:
		return styles.Text
	}
}

func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	height := m.contentHeight() - 1

	title := label(m.lang, "logs")
	if m.logState.minLevel != "" {
		title += " (" + m.logState.minLevel + "+)"
	}
	box := m.renderTitledBox(title, m.logViewport.View(), m.width, height, true)
	return box + "\n" + m.renderLogStatus(styles, bg)
}

// renderLogStatus renders the status line under the log box.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	if m.logState.searchActive {
		return bg.Render("/", styles.AccentText) + m.logState.searchInput.View()
	}

	if m.logState.searchRegex != nil && len(m.logState.searchMatches) > 0 {
		return bg.Render("/"+m.logState.searchQuery, styles.AccentText) +
			bg.Render(" - ", styles.FaintText) +
			bg.Render(fmt.Sprintf("%d/%d", m.logState.searchMatchIdx+1, len(m.logState.searchMatches)), styles.WarningText) +
			bg.Render(" - n/N to move, Esc to clear", styles.FaintText)
	}
	if m.logState.searchRegex != nil {
		return bg.Render("Pattern not found: "+m.logState.searchQuery, styles.DangerText)
	}

	autoTail := "off"
	if m.logState.follow {
		autoTail = "on"
	}
	parts := []string{
		bg.Render(fmt.Sprintf("%d lines  auto-tail %s", len(m.logState.lines), autoTail), styles.FaintText),
		bg.Render(truncate(orDash(m.logPath), max(m.width/2, 10)), styles.AccentText),
	}
	if m.logState.readErr != "" {
		parts = append(parts, bg.Render(m.logState.readErr, styles.DangerText))
	}
	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	return strings.Join(parts, sep)
}

func (m *Model) handleLogsKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
			return true, readLogsCmd(m.logPath)
		}
		return true, nil

	case key.Matches(msg, m.keys.CycleLevel):
		m.logState.minLevel = cycleString(logLevels, m.logState.minLevel, 1)
		m.clearLogSearch()
		m.updateLogViewport()
		return true, nil

	case key.Matches(msg, m.keys.FocusSearch):
		m.logState.searchActive = true
		m.logState.searchInput.SetValue("")
		return true, m.logState.searchInput.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.stepSearchMatch(1)
		return true, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.stepSearchMatch(-1)
		return true, nil

	case key.Matches(msg, m.keys.Escape):
		if m.logState.searchRegex != nil {
			m.clearLogSearch()
			m.updateLogViewport()
		}
		return true, nil

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logState.follow = false
		return true, nil

	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logState.follow = true
		return true, nil

	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logState.follow = false
		return true, nil

	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logState.follow = false
		return true, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.logViewport.HalfPageDown()
		m.logState.follow = false
		return true, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.logViewport.HalfPageUp()
		m.logState.follow = false
		return true, nil
	}
	return false, nil
}

// handleLogSearchInput handles keyboard input during log search.
func (m *Model) handleLogSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := m.logState.searchInput.Value()
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		if query == "" {
			return nil
		}

		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
		}
		m.logState.searchRegex = re
		m.logState.searchQuery = query
		m.logState.searchMatchIdx = 0
		m.updateLogViewport()
		m.scrollToSearchMatch()
		return nil

	case key.Matches(msg, m.keys.Escape):
		m.logState.searchActive = false
		m.logState.searchInput.Blur()
		m.logState.searchInput.SetValue("")
		return nil
	}

	var cmd tea.Cmd
	m.logState.searchInput, cmd = m.logState.searchInput.Update(msg)
	return cmd
}

func (m *Model) clearLogSearch() {
	m.logState.searchRegex = nil
	m.logState.searchQuery = ""
	m.logState.searchMatches = nil
	m.logState.searchMatchIdx = 0
}

// findSearchMatches records the lines matching the current search.
func (m *Model) findSearchMatches() {
	m.logState.searchMatches = nil
	if m.logState.searchRegex == nil {
		return
	}
	for i, line := range m.logState.lines {
		if m.logState.searchRegex.MatchString(line) {
			m.logState.searchMatches = append(m.logState.searchMatches, i)
		}
	}
	m.logState.searchMatchIdx = clampCursor(m.logState.searchMatchIdx, len(m.logState.searchMatches))
}

func (m *Model) stepSearchMatch(delta int) {
	n := len(m.logState.searchMatches)
	if n == 0 {
		return
	}
	m.logState.searchMatchIdx = ((m.logState.searchMatchIdx+delta)%n + n) % n
	m.logViewport.SetContent(m.renderLogContent())
	m.scrollToSearchMatch()
}

// scrollToSearchMatch centers the current match and stops following.
func (m *Model) scrollToSearchMatch() {
	if len(m.logState.searchMatches) == 0 {
		return
	}
	target := m.logState.searchMatches[m.logState.searchMatchIdx]
	m.logState.follow = false
	m.logViewport.SetYOffset(max(target-m.logViewport.Height/2, 0))
}
