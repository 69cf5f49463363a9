package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/state"
)

const groupPaneWidth = 30

// favoritesState tracks the group list (favorites first, then collections)
// and the cocktail list of the selected group.
type favoritesState struct {
	groupCursor int
	itemCursor  int
	itemsFocus  bool
}

// selectedCollection returns the collection under the group cursor. The
// favorites group is not a collection.
func (m Model) selectedCollection() (state.Collection, bool) {
	i := m.favorites.groupCursor - 1
	if i < 0 || i >= len(m.snapshot.Collections) {
		return state.Collection{}, false
	}
	return m.snapshot.Collections[i], true
}

// groupItems resolves the selected group's ids against the catalog. Ids with
// no catalog entry are skipped.
func (m Model) groupItems() []catalog.Cocktail {
	if c, ok := m.selectedCollection(); ok {
		return m.catalog().Resolve(c.Items)
	}
	return m.catalog().Resolve(m.snapshot.Favorites)
}

func (m *Model) handleFavoritesKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.SwitchPane), key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		m.favorites.itemsFocus = !m.favorites.itemsFocus
		return true

	case key.Matches(msg, m.keys.Confirm):
		m.favorites.itemsFocus = true
		return true

	case key.Matches(msg, m.keys.New):
		m.modal = newCollectionForm(m.store, nil)
		return true

	case key.Matches(msg, m.keys.Rename):
		if c, ok := m.selectedCollection(); ok {
			m.modal = newCollectionForm(m.store, &c)
		}
		return true

	case key.Matches(msg, m.keys.Delete):
		if c, ok := m.selectedCollection(); ok {
			m.modal = m.confirmDeleteCollection(c)
		}
		return true

	case key.Matches(msg, m.keys.Remove):
		m.removeSelectedItem()
		return true
	}

	if m.favorites.itemsFocus {
		cursor, moved := m.moveCursor(msg, m.favorites.itemCursor, len(m.groupItems()))
		m.favorites.itemCursor = cursor
		return moved
	}
	cursor, moved := m.moveCursor(msg, m.favorites.groupCursor, len(m.snapshot.Collections)+1)
	if moved && cursor != m.favorites.groupCursor {
		m.favorites.itemCursor = 0
	}
	m.favorites.groupCursor = cursor
	return moved
}

func (m *Model) confirmDeleteCollection(c state.Collection) Modal {
	store := m.store
	return &confirmModal{
		title:  "Delete Collection",
		prompt: fmt.Sprintf("Delete %q and its %d cocktails?", c.Name, len(c.Items)),
		onYes: func() tea.Cmd {
			if !store.DeleteCollection(c.ID) {
				return statusCmd("Collection no longer exists", true)
			}
			return statusCmd("Deleted collection "+c.Name, false)
		},
	}
}

// removeSelectedItem takes the selected cocktail out of the selected group.
// In the favorites group that means unfavoriting it.
func (m *Model) removeSelectedItem() {
	items := m.groupItems()
	if !m.favorites.itemsFocus || m.favorites.itemCursor >= len(items) {
		return
	}
	item := items[m.favorites.itemCursor]
	if c, ok := m.selectedCollection(); ok {
		m.store.RemoveFromCollection(c.ID, item.ID)
		m.setStatus(fmt.Sprintf("Removed %s from %s", item.Name, c.Name), false)
	} else if m.store.IsFavorite(item.ID) {
		m.store.ToggleFavorite(item.ID)
		m.setStatus(fmt.Sprintf("Removed %s from favorites", item.Name), false)
	}
	m.refresh()
}

func (m Model) renderFavorites() string {
	height := m.contentHeight()
	groupWidth := min(groupPaneWidth, m.width/3)
	rest := m.width - groupWidth
	itemsWidth, detailWidth := rest, 0
	if m.width >= LayoutCompactWidth {
		itemsWidth = rest * 45 / 100
		detailWidth = rest - itemsWidth
	}

	groupFocused := !m.favorites.itemsFocus
	bgColor := m.paneBg(groupFocused)
	styles := m.theme.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)
	inner := groupWidth - 2

	type group struct {
		marker string
		color  string
		name   string
		count  int
	}
	groups := []group{{"♥", m.theme.Danger, label(m.lang, "favorites"), len(m.snapshot.Favorites)}}
	for _, c := range m.snapshot.Collections {
		groups = append(groups, group{"●", c.Color, c.Name, len(c.Items)})
	}

	var rows []string
	start, end := visibleWindow(len(groups), m.favorites.groupCursor, height-2)
	for i := start; i < end; i++ {
		g := groups[i]
		name := padRight(truncate(g.name, inner-8), inner-8)
		count := fmt.Sprintf("%4d", g.count)
		if i == m.favorites.groupCursor && groupFocused {
			rows = append(rows, styles.Selected.Width(inner).Render(g.marker+" "+name+count))
			continue
		}
		marker := bg.Render(g.marker, lipgloss.NewStyle().Foreground(lipgloss.Color(g.color)))
		nameStyle := styles.Text
		if i == m.favorites.groupCursor {
			nameStyle = styles.AccentText.Bold(true)
		}
		rows = append(rows, bg.FillLine(marker+bg.Space()+bg.Render(name, nameStyle)+bg.Render(count, styles.MutedText), inner))
		if i == 0 && len(groups) > 1 {
			rows = append(rows, bg.FillLine(bg.Render(strings.Repeat("─", inner), styles.FaintText), inner))
		}
	}
	groupPane := m.renderTitledBox(label(m.lang, "collections"), strings.Join(rows, "\n"), groupWidth, height, groupFocused)

	items := m.groupItems()
	title := label(m.lang, "favorites")
	empty := label(m.lang, "no_favorites")
	var body []string
	itemStyles := m.theme.Styles().WithBackground(m.paneBg(m.favorites.itemsFocus))
	if c, ok := m.selectedCollection(); ok {
		title = c.Name
		empty = label(m.lang, "empty")
		if c.Description != "" {
			body = append(body, itemStyles.MutedText.Render(truncate(c.Description, itemsWidth-4)), "")
		}
	}
	if len(items) == 0 {
		body = append(body, itemStyles.MutedText.Render(empty))
	} else {
		body = append(body, m.renderCocktailRows(items, m.favorites.itemCursor, itemsWidth-2, height-2-len(body), m.favorites.itemsFocus, nil))
	}
	itemsPane := m.renderTitledBox(title, strings.Join(body, "\n"), itemsWidth, height, m.favorites.itemsFocus)

	if detailWidth == 0 {
		return joinPanes(groupPane, itemsPane)
	}
	var item catalog.Cocktail
	ok := m.favorites.itemCursor < len(items)
	if ok {
		item = items[m.favorites.itemCursor]
	}
	return joinPanes(groupPane, itemsPane, m.renderDetailPane(item, ok, detailWidth))
}
