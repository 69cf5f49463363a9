package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cocteler/cocteler/internal/catalog"
)

const shelfPaneWidth = 28

type shelvesState struct {
	shelfCursor int
	itemCursor  int
	itemsFocus  bool
}

func (m Model) shelfItems() []catalog.Cocktail {
	shelves := m.catalog().Shelves()
	if m.shelves.shelfCursor >= len(shelves) {
		return nil
	}
	return shelves[m.shelves.shelfCursor].Items
}

func (m *Model) handleShelvesKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.SwitchPane), key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		m.shelves.itemsFocus = !m.shelves.itemsFocus
		return true
	case key.Matches(msg, m.keys.Confirm):
		m.shelves.itemsFocus = true
		return true
	}

	if m.shelves.itemsFocus {
		cursor, moved := m.moveCursor(msg, m.shelves.itemCursor, len(m.shelfItems()))
		m.shelves.itemCursor = cursor
		return moved
	}
	cursor, moved := m.moveCursor(msg, m.shelves.shelfCursor, len(m.catalog().Shelves()))
	if moved && cursor != m.shelves.shelfCursor {
		m.shelves.itemCursor = 0
	}
	m.shelves.shelfCursor = cursor
	return moved
}

func (m Model) renderShelves() string {
	height := m.contentHeight()
	shelves := m.catalog().Shelves()

	shelfWidth := min(shelfPaneWidth, m.width/3)
	rest := m.width - shelfWidth
	itemsWidth, detailWidth := rest, 0
	if m.width >= LayoutCompactWidth {
		itemsWidth = rest * 45 / 100
		detailWidth = rest - itemsWidth
	}

	shelfFocused := !m.shelves.itemsFocus
	bgColor := m.paneBg(shelfFocused)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := shelfWidth - 2

	start, end := visibleWindow(len(shelves), m.shelves.shelfCursor, height-2)
	var rows []string
	for i := start; i < end; i++ {
		s := shelves[i]
		text := padRight(truncate(s.Title, inner-5), inner-5) + fmt.Sprintf("%4d", len(s.Items))
		if i == m.shelves.shelfCursor {
			if shelfFocused {
				rows = append(rows, styles.Selected.Width(inner).Render(text))
			} else {
				rows = append(rows, bg.FillLine(bg.Render(text, styles.AccentText.Bold(true)), inner))
			}
			continue
		}
		rows = append(rows, bg.FillLine(bg.Render(text, styles.Text), inner))
	}
	shelfPane := m.renderTitledBox(label(m.lang, "shelves"), strings.Join(rows, "\n"), shelfWidth, height, shelfFocused)

	title := label(m.lang, "shelves")
	var body []string
	if m.shelves.shelfCursor < len(shelves) {
		shelf := shelves[m.shelves.shelfCursor]
		title = shelf.Title
		itemStyles := m.theme.Styles().WithBackground(m.paneBg(m.shelves.itemsFocus))
		body = append(body, itemStyles.MutedText.Render(truncate(shelf.Description, itemsWidth-4)), "")
	}
	body = append(body, m.renderCocktailRows(m.shelfItems(), m.shelves.itemCursor, itemsWidth-2, height-2-len(body), m.shelves.itemsFocus, nil))
	itemsPane := m.renderTitledBox(title, strings.Join(body, "\n"), itemsWidth, height, m.shelves.itemsFocus)

	if detailWidth == 0 {
		return joinPanes(shelfPane, itemsPane)
	}
	item, ok := m.selectedCocktail()
	return joinPanes(shelfPane, itemsPane, m.renderDetailPane(item, ok, detailWidth))
}
