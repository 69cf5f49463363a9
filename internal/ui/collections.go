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

const (
	fieldName = iota
	fieldDescription
	fieldColor
	fieldIcon
)

// collectionForm creates a collection, or edits one when editID is set.
type collectionForm struct {
	store  *state.Store
	editID string
	form   form
}

func newCollectionForm(store *state.Store, existing *state.Collection) *collectionForm {
	var c state.Collection
	if existing != nil {
		c = *existing
	}
	f := &collectionForm{
		store: store,
		form: newForm(
			newFormField("Name", "e.g. Tiki night", c.Name, state.MaxNameLength),
			newFormField("Description", "optional", c.Description, 200),
			newFormField("Color", "#RRGGBB, optional", c.Color, 7),
			newFormField("Icon", "optional", c.Icon, 20),
		),
	}
	if existing != nil {
		f.editID = existing.ID
	}
	return f
}

func (f *collectionForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Escape):
		return nil, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		return f.save()
	}
	return f, f.form.update(keyMsg, keys), false
}

func (f *collectionForm) save() (Modal, tea.Cmd, bool) {
	name := f.form.value(fieldName)
	desc := f.form.value(fieldDescription)
	color := f.form.value(fieldColor)
	icon := f.form.value(fieldIcon)

	if f.editID == "" {
		_, err := f.store.CreateCollection(state.CollectionInput{
			Name:        name,
			Description: desc,
			Color:       color,
			Icon:        icon,
		})
		if err != nil {
			f.form.err = err.Error()
			return f, nil, false
		}
		return nil, statusCmd(fmt.Sprintf("Created collection %s", name), false), true
	}

	patch := state.CollectionPatch{Name: &name, Description: &desc}
	if color != "" {
		patch.Color = &color
	}
	if icon != "" {
		patch.Icon = &icon
	}
	found, err := f.store.UpdateCollection(f.editID, patch)
	switch {
	case err != nil:
		f.form.err = err.Error()
		return f, nil, false
	case !found:
		return nil, statusCmd("Collection no longer exists", true), true
	}
	return nil, statusCmd(fmt.Sprintf("Saved collection %s", name), false), true
}

func (f *collectionForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := "New Collection"
	if f.editID != "" {
		title = "Edit Collection"
	}
	var b strings.Builder
	modalTitle(&b, styles, title, 40)
	f.form.render(&b, styles)
	return renderModal(theme, b.String(), 56, width, height)
}

// collectionPicker toggles one cocktail's membership across collections.
type collectionPicker struct {
	store  *state.Store
	item   catalog.Cocktail
	cursor int
}

func newCollectionPicker(store *state.Store, item catalog.Cocktail) *collectionPicker {
	return &collectionPicker{store: store, item: item}
}

func (p *collectionPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	collections := p.store.Collections()
	switch {
	case key.Matches(keyMsg, keys.Escape), key.Matches(keyMsg, keys.PickCollection):
		return nil, nil, true
	case key.Matches(keyMsg, keys.Up):
		p.cursor = clampCursor(p.cursor-1, len(collections))
	case key.Matches(keyMsg, keys.Down):
		p.cursor = clampCursor(p.cursor+1, len(collections))
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Confirm):
		if p.cursor >= len(collections) {
			return p, nil, false
		}
		c := collections[p.cursor]
		if c.Contains(p.item.ID) {
			p.store.RemoveFromCollection(c.ID, p.item.ID)
			return p, statusCmd(fmt.Sprintf("Removed %s from %s", p.item.Name, c.Name), false), false
		}
		p.store.AddToCollection(c.ID, p.item.ID)
		return p, statusCmd(fmt.Sprintf("Added %s to %s", p.item.Name, c.Name), false), false
	}
	return p, nil, false
}

func (p *collectionPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	modalTitle(&b, styles, "Collections for "+p.item.Name, 40)

	collections := p.store.Collections()
	if len(collections) == 0 {
		b.WriteString(styles.MutedText.Render("No collections. Create one from the favorites view."))
		b.WriteString("\n\n")
	}
	for i, c := range collections {
		mark := "[ ]"
		if c.Contains(p.item.ID) {
			mark = "[x]"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		line := fmt.Sprintf("%s %s %s", mark, swatch, truncate(c.Name, 32))
		if i == p.cursor {
			line = styles.Selected.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Space/Enter: Toggle  •  j/k: Move  •  Esc: Done"))
	return renderModal(theme, b.String(), 56, width, height)
}
