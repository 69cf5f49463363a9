package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/catalog"
)

type searchState struct {
	input  textinput.Model
	cursor int
}

func newSearchState() searchState {
	ti := textinput.New()
	ti.Placeholder = "gin, citrus, mint..."
	ti.CharLimit = 60
	ti.Prompt = "/ "
	return searchState{input: ti}
}

func (m Model) searchResults() []catalog.Cocktail {
	return m.catalog().Search(m.search.input.Value())
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.FocusSearch):
		return true, m.search.input.Focus()
	case key.Matches(msg, m.keys.Escape):
		m.search.input.SetValue("")
		m.search.cursor = 0
		return true, m.search.input.Focus()
	}
	cursor, moved := m.moveCursor(msg, m.search.cursor, len(m.searchResults()))
	m.search.cursor = cursor
	return moved, nil
}

// handleSearchInput edits the query. Enter or down hands focus to the results.
func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "down", "esc":
		m.search.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.search.cursor = 0
	return cmd
}

func (m Model) renderSearch() string {
	bgColor := m.paneBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	header := m.search.input.View()
	results := m.searchResults()
	empty := ""
	if m.search.input.Value() == "" {
		header += "\n" + bg.Render(label(m.lang, "search_hint"), styles.FaintText)
	} else {
		header += "\n" + bg.Render(fmt.Sprintf("%d results", len(results)), styles.MutedText)
		empty = label(m.lang, "no_results")
	}

	return m.renderListWithDetail(label(m.lang, "search"), header,
		results, m.search.cursor, empty,
		func(c catalog.Cocktail) string { return c.Category })
}
