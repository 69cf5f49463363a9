package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/catalog"
)

type mixState struct {
	input      textinput.Model
	selected   []string
	suggestion int
	cursor     int
}

func newMixState() mixState {
	ti := textinput.New()
	ti.Placeholder = "rum, lime"
	ti.CharLimit = 80
	ti.Prompt = "+ "
	return mixState{input: ti}
}

func (m Model) mixResults() []catalog.Cocktail {
	return m.catalog().MatchIngredients(m.mix.selected)
}

// mixSuggestions are the quick picks not yet selected.
func (m Model) mixSuggestions() []string {
	out := make([]string, 0, len(catalog.PopularIngredients))
	for _, ing := range catalog.PopularIngredients {
		if !m.mix.has(ing) {
			out = append(out, ing)
		}
	}
	return out
}

func (s mixState) has(ingredient string) bool {
	return slices.ContainsFunc(s.selected, func(v string) bool {
		return strings.EqualFold(v, ingredient)
	})
}

// addIngredients adds each new ingredient once, keeping entry order.
func (m *Model) addIngredients(values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || m.mix.has(v) {
			continue
		}
		m.mix.selected = append(m.mix.selected, v)
	}
	m.mix.cursor = 0
	m.mix.suggestion = clampCursor(m.mix.suggestion, len(m.mixSuggestions()))
}

func (m *Model) handleMixKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	suggestions := m.mixSuggestions()
	switch {
	case key.Matches(msg, m.keys.FocusSearch):
		return true, m.mix.input.Focus()
	case key.Matches(msg, m.keys.Left):
		m.mix.suggestion = clampCursor(m.mix.suggestion-1, len(suggestions))
		return true, nil
	case key.Matches(msg, m.keys.Right):
		m.mix.suggestion = clampCursor(m.mix.suggestion+1, len(suggestions))
		return true, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.mix.suggestion < len(suggestions) {
			m.addIngredients(suggestions[m.mix.suggestion])
		}
		return true, nil
	case key.Matches(msg, m.keys.Clear):
		if n := len(m.mix.selected); n > 0 {
			m.mix.selected = m.mix.selected[:n-1]
			m.mix.cursor = 0
		}
		return true, nil
	case key.Matches(msg, m.keys.Escape):
		m.mix.selected = nil
		m.mix.cursor = 0
		return true, nil
	}
	cursor, moved := m.moveCursor(msg, m.mix.cursor, len(m.mixResults()))
	m.mix.cursor = cursor
	return moved, nil
}

// handleMixInput adds typed ingredients on enter. Commas separate several.
func (m *Model) handleMixInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.addIngredients(splitList(m.mix.input.Value(), ",;")...)
		m.mix.input.SetValue("")
		return nil
	case "esc", "down":
		m.mix.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.mix.input, cmd = m.mix.input.Update(msg)
	return cmd
}

func (m Model) renderMix() string {
	bgColor := m.paneBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	listWidth, _ := m.splitWidths()

	var header []string
	header = append(header, m.mix.input.View())

	if len(m.mix.selected) == 0 {
		header = append(header, bg.Render(label(m.lang, "mix_hint"), styles.FaintText))
	} else {
		chips := make([]string, 0, len(m.mix.selected))
		for _, ing := range m.mix.selected {
			chips = append(chips, bg.Render("["+ing+"]", styles.AccentText))
		}
		header = append(header, strings.Join(chips, bg.Space()))
	}

	suggestions := m.mixSuggestions()
	if len(suggestions) > 0 {
		var picks []string
		used := 0
		for i, s := range suggestions {
			used += len([]rune(s)) + 1
			if used > listWidth-6 {
				break
			}
			if i == m.mix.suggestion && !m.mix.input.Focused() {
				picks = append(picks, styles.Selected.Render(s))
			} else {
				picks = append(picks, bg.Render(s, styles.MutedText))
			}
		}
		header = append(header, strings.Join(picks, bg.Space()))
	}

	results := m.mixResults()
	empty := ""
	if len(m.mix.selected) > 0 {
		empty = label(m.lang, "no_results")
		header = append(header, bg.Render(fmt.Sprintf("%d matches", len(results)), styles.MutedText))
	}

	coverage := func(c catalog.Cocktail) string {
		return fmt.Sprintf("%d/%d", catalog.IngredientCoverage(c, m.mix.selected), len(c.Ingredients))
	}
	return m.renderListWithDetail(label(m.lang, "mix"), strings.Join(header, "\n"),
		results, m.mix.cursor, empty, coverage)
}
