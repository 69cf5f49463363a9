package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, view tabs, counters and status flash.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("cocteler", styles.Logo)}

	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		name := label(m.lang, v.labelKey())
		if compact {
			name = truncate(name, 4)
		}
		text := fmt.Sprintf("%d %s", i+1, name)
		if v == m.currentView {
			tabs = append(tabs, bg.Render(text, styles.AccentText.Bold(true).Underline(true)))
		} else {
			tabs = append(tabs, bg.Render(text, styles.MutedText))
		}
	}
	parts = append(parts, strings.Join(tabs, bg.Spaces(2)))

	parts = append(parts,
		bg.Render("♥", styles.DangerText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Favorites)), styles.Text))

	if !compact {
		parts = append(parts,
			bg.Render(strings.ToUpper(m.lang), styles.InfoText))
	}

	if m.status.text != "" {
		style := styles.SuccessText
		if m.status.isErr {
			style = styles.DangerText
		}
		limit := 60
		if compact {
			limit = 30
		}
		parts = append(parts, bg.Render(truncate(m.status.text, limit), style))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxWidth(m.width).
		Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewHome:
		commands = []cmd{
			{"←/→", m.home.tab.String()},
			{"j/k", "Navigate"},
			{"f", "Favorite"},
			{"c", "Collect"},
		}
	case ViewSearch:
		commands = []cmd{
			{"/", "Query"},
			{"j/k", "Navigate"},
			{"f", "Favorite"},
			{"c", "Collect"},
		}
	case ViewMix:
		commands = []cmd{
			{"/", "Add"},
			{"bksp", "Drop"},
			{"←/→", "Suggest"},
			{"f", "Favorite"},
		}
	case ViewShelves:
		commands = []cmd{
			{"h/l", "Pane"},
			{"j/k", "Navigate"},
			{"f", "Favorite"},
			{"c", "Collect"},
		}
	case ViewFavorites:
		commands = []cmd{
			{"h/l", "Pane"},
			{"n", "New"},
			{"r", "Rename"},
			{"D", "Delete"},
			{"x", "Remove"},
			{"c", "Collect"},
		}
	case ViewCommunity:
		commands = []cmd{
			{"F", string(m.feed.filter)},
			{"+", "Like"},
			{"n", "Publish"},
			{"j/k", "Navigate"},
		}
	case ViewSettings:
		commands = []cmd{
			{"j/k", "Select"},
			{"←/→", "Change"},
			{"enter", "Apply"},
		}
	case ViewLogs:
		followLabel := "Pause"
		if !m.logState.follow {
			followLabel = "Follow"
		}
		commands = []cmd{
			{"Space", followLabel},
			{"v", "Level " + m.logState.levelLabel()},
			{"/", "Search"},
			{"n/N", "Next/Prev"},
		}
	}
	commands = append(commands, cmd{"tab", "Views"}, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewLogs && m.logState.searchQuery != "" {
		segments = append(segments,
			bg.Render("/"+truncate(m.logState.searchQuery, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(segments, sep))
}
