package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/catalog"
)

type homeState struct {
	tab    catalog.Tab
	cursor int
}

// homeItems lists the active tab. Once onboarding is complete the
// recommended tab is ranked against the user's taste profile.
func (m Model) homeItems() []catalog.Cocktail {
	cat := m.catalog()
	if m.home.tab != catalog.TabRecommended || m.onboarding == nil || !m.onboarding.Completed() {
		return cat.Tab(m.home.tab)
	}
	featured, hasFeatured := cat.Featured()
	ranked := cat.Recommend(m.onboarding.Preferences().Profile(), 0)
	out := make([]catalog.Cocktail, 0, len(ranked))
	for _, s := range ranked {
		if hasFeatured && s.ID == featured.ID {
			continue
		}
		out = append(out, s.Cocktail)
	}
	return out
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.home.tab = cycleTab(m.home.tab, -1)
		m.home.cursor = 0
		return true
	case key.Matches(msg, m.keys.Right):
		m.home.tab = cycleTab(m.home.tab, 1)
		m.home.cursor = 0
		return true
	}
	cursor, moved := m.moveCursor(msg, m.home.cursor, len(m.homeItems()))
	m.home.cursor = cursor
	return moved
}

func cycleTab(t catalog.Tab, delta int) catalog.Tab {
	i := slices.Index(catalog.Tabs, t)
	n := len(catalog.Tabs)
	return catalog.Tabs[((i+delta)%n+n)%n]
}

// renderHome shows the featured cocktail above the tabbed list.
func (m Model) renderHome() string {
	bgColor := m.paneBg(true)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var header []string
	if featured, ok := m.catalog().Featured(); ok {
		header = append(header,
			bg.Render(label(m.lang, "featured")+":", styles.MutedText)+bg.Space()+
				bg.Render(featured.Name, styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(stars(featured.Rating), styles.WarningText))
		listWidth, _ := m.splitWidths()
		if lines := wrapText(featured.Description, listWidth-4); len(lines) > 0 {
			header = append(header, bg.Render(lines[0], styles.FaintText))
		}
		header = append(header, "")
	}

	tabs := make([]string, 0, len(catalog.Tabs))
	for _, t := range catalog.Tabs {
		name := t.String()
		if t == catalog.TabRecommended && m.onboarding != nil && m.onboarding.Completed() {
			if who := m.onboarding.Preferences().Name; who != "" {
				name = fmt.Sprintf("%s for %s", name, who)
			}
		}
		if t == m.home.tab {
			tabs = append(tabs, bg.Render("["+name+"]", styles.AccentText.Bold(true)))
		} else {
			tabs = append(tabs, bg.Render(" "+name+" ", styles.MutedText))
		}
	}
	header = append(header, strings.Join(tabs, bg.Space()))

	return m.renderListWithDetail(label(m.lang, "home"), strings.Join(header, "\n"),
		m.homeItems(), m.home.cursor, label(m.lang, "no_results"), nil)
}
